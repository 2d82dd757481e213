package main

import (
	"fmt"
	"log"

	"github.com/davecheney/scc/e8530"
)

// maxQueue bounds the characters waiting for a busy transmitter.
const maxQueue = 4096

// lineConfig is the character format both channels are programmed with.
type lineConfig struct {
	baud   uint32
	bits   int
	parity int // e8530.ParityNone, ParityOdd or ParityEven
	stop   int // 1 or 2
}

func newLineConfig(baud uint32, bits int, parity string, stop int) (lineConfig, error) {
	lc := lineConfig{baud: baud, bits: bits, stop: stop}
	if baud == 0 {
		return lc, fmt.Errorf("baud rate must not be zero")
	}
	if bits < 5 || bits > 8 {
		return lc, fmt.Errorf("%d bits per character: must be 5 to 8", bits)
	}
	if stop != 1 && stop != 2 {
		return lc, fmt.Errorf("%d stop bits: must be 1 or 2", stop)
	}
	switch parity {
	case "none":
		lc.parity = e8530.ParityNone
	case "odd":
		lc.parity = e8530.ParityOdd
	case "even":
		lc.parity = e8530.ParityEven
	default:
		return lc, fmt.Errorf("parity %q: must be none, odd or even", parity)
	}
	return lc, nil
}

// bits per character field of WR3 and WR5
var charBits = map[int]uint8{5: 0, 7: 1, 6: 2, 8: 3}

func (lc lineConfig) wr4() uint8 {
	v := uint8(0x40) // x16 clock
	if lc.stop == 2 {
		v |= 0x0c
	} else {
		v |= 0x04
	}
	switch lc.parity {
	case e8530.ParityOdd:
		v |= 0x01
	case e8530.ParityEven:
		v |= 0x03
	}
	return v
}

// bridge is the program running on the emulated CPU. It is entered on
// every interrupt and copies each character received on one channel to the
// transmitter of the other.
type bridge struct {
	scc  *e8530.SCC
	pclk uint32
	lc   lineConfig

	queue [2][]byte // characters waiting for each transmitter
	idle  [2]bool   // transmitter has nothing in WR8
	log   *log.Logger
}

// write writes v to register reg of channel ch through the register pointer.
func (b *bridge) write(ch int, reg, v uint8) {
	if reg != 0 {
		p := reg & 7
		if reg >= 8 {
			p |= 0x08 // point high
		}
		b.scc.WriteControl(ch, p)
	}
	b.scc.WriteControl(ch, v)
}

func (b *bridge) read(ch int, reg uint8) uint8 {
	if reg != 0 {
		p := reg & 7
		if reg >= 8 {
			p |= 0x08
		}
		b.scc.WriteControl(ch, p)
	}
	return b.scc.ReadControl(ch)
}

// start resets the chip and programs both channels.
func (b *bridge) start() {
	b.write(0, 9, 0xc0) // hardware reset
	b.queue = [2][]byte{}
	for ch := 0; ch < 2; ch++ {
		b.program(ch)
	}
	b.write(0, 2, 0x00)
	b.write(0, 9, 0x09) // MIE, status low in the vector
}

func (b *bridge) program(ch int) {
	tc := e8530.TimeConstant(b.pclk, 16, b.lc.baud)
	bits := charBits[b.lc.bits]

	b.write(ch, 4, b.lc.wr4())
	b.write(ch, 3, bits<<6)
	b.write(ch, 5, bits<<5|0x80) // DTR
	b.write(ch, 11, 0x50)        // receive and transmit clocks from the generator
	b.write(ch, 12, uint8(tc))
	b.write(ch, 13, uint8(tc>>8))
	b.write(ch, 14, 0x03) // generator on, from PCLK

	b.write(ch, 3, bits<<6|0x01)           // receiver on
	b.write(ch, 5, bits<<5|0x80|0x08|0x02) // transmitter on, RTS
	b.write(ch, 15, 0x28)                  // DCD and CTS
	b.write(ch, 0, 0x10)                   // reset ext/status, twice
	b.write(ch, 0, 0x10)
	b.write(ch, 1, 0x13) // ext/status, tx, rx on all characters

	b.idle[ch] = true
}

// service handles interrupts until none are pending.
func (b *bridge) service() {
	for b.read(0, 3) != 0 {
		i := interrupt{b.read(1, 2)}
		b.log.Print(i)

		ch := i.ch()
		switch i.kind() {
		case intTx:
			b.tx(ch)
		case intExt:
			b.ext(ch)
		case intRx:
			b.rx(ch)
		default:
			b.log.Printf("spurious %v", i)
		}

		b.scc.WriteControl(0, 0x38) // reset highest IUS
	}
}

func (b *bridge) rx(ch int) {
	if rr1 := b.read(ch, 1); rr1&0x70 != 0 {
		b.log.Printf("channel %c: receive error %02x", 'A'+ch, rr1)
		b.scc.WriteControl(ch, 0x30) // error reset
	}
	b.send(ch^1, b.scc.ReadData(ch))
}

func (b *bridge) tx(ch int) {
	if len(b.queue[ch]) == 0 {
		b.idle[ch] = true
		b.scc.WriteControl(ch, 0x28) // reset tx interrupt pending
		return
	}
	c := b.queue[ch][0]
	b.queue[ch] = b.queue[ch][1:]
	b.scc.WriteData(ch, c)
}

func (b *bridge) ext(ch int) {
	rr0 := b.read(ch, 0)
	b.log.Printf("channel %c: DCD %v, CTS %v", 'A'+ch, rr0&0x08 == 0, rr0&0x20 == 0)
	b.scc.WriteControl(ch, 0x10) // reset ext/status
}

// send transmits c on channel ch, or queues it until the transmitter is free.
func (b *bridge) send(ch int, c byte) {
	if b.idle[ch] {
		b.idle[ch] = false
		b.scc.WriteData(ch, c)
		return
	}
	if len(b.queue[ch]) >= maxQueue {
		b.log.Printf("channel %c: transmit queue full, dropped %02x", 'A'+ch, c)
		return
	}
	b.queue[ch] = append(b.queue[ch], c)
}
