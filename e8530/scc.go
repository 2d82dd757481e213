// Package e8530 emulates a Z8530 serial communications controller.
//
// The chip has two channels, A (0) and B (1), each with sixteen write
// registers and a set of read registers reached through a register pointer
// on the control port. A shared interrupt pending register (RR3) and a single
// IRQ output cover both channels.
//
// The emulation is synchronous. Nothing happens unless the owner calls one of
// the register accessors, a line signal setter, or Advance with the number of
// clock units that have elapsed. All calls must come from the same goroutine.
package e8530

import (
	"io/ioutil"
	"log"
)

// RR0 bits.
const (
	rr0RxAvail    = 0x01
	rr0TxEmpty    = 0x04
	rr0DCD        = 0x08
	rr0SyncHunt   = 0x10
	rr0CTS        = 0x20
	rr0TxUnderrun = 0x40
)

// RR1 bits.
const (
	rr1AllSent    = 0x01
	rr1Overrun    = 0x20
	rr1EndOfFrame = 0x80
)

// Config holds the wiring of a chip. Every field is optional.
type Config struct {
	PCLK uint32    // master clock, used when WR14 selects PCLK
	RTxC [2]uint32 // RTxC pin clock per channel

	IRQ   IRQSink
	Lines [2]Line

	// Log receives register level diagnostics. nil discards them.
	Log *log.Logger

	// ReportOverrun makes a byte dropped by ReceiveByte set the Rx overrun
	// bit in RR1 and raise a special receive condition. By default such
	// bytes are dropped silently.
	ReportOverrun bool
}

// SCC is a Z8530 serial communications controller.
type SCC struct {
	index uint8 // register pointer
	pclk  uint32

	chn [2]channel

	irq  bool
	sink IRQSink

	log           *log.Logger
	reportOverrun bool
}

// New returns a chip wired as described by cfg. Call Reset before use.
func New(cfg Config) *SCC {
	scc := &SCC{
		pclk:          cfg.PCLK,
		sink:          cfg.IRQ,
		log:           cfg.Log,
		reportOverrun: cfg.ReportOverrun,
	}
	if scc.log == nil {
		scc.log = log.New(ioutil.Discard, "", 0)
	}
	for i := range scc.chn {
		c := &scc.chn[i]
		c.scc = scc
		c.id = i
		c.line = cfg.Lines[i]
		c.rtxc = cfg.RTxC[i]
		c.init()
	}
	return scc
}

// Reset performs a hardware reset. Clock rates, multichar settings and the
// wiring given to New are kept.
func (scc *SCC) Reset() {
	scc.index = 0
	for i := range scc.chn {
		scc.chn[i].wr = [16]uint8{}
		scc.chn[i].rr = [16]uint8{}
	}
	for i := range scc.chn {
		scc.chn[i].reset()
	}
	scc.setIRQ(false)
}

// SetClock sets the PCLK rate and the RTxC rates of channels A and B.
func (scc *SCC) SetClock(pclk, rtxcA, rtxcB uint32) {
	scc.pclk = pclk
	scc.chn[0].rtxc = rtxcA
	scc.chn[1].rtxc = rtxcB
	scc.chn[0].setParams()
	scc.chn[1].setParams()
}

// SetMultichar sets how many characters channel ch may receive and transmit
// per character time. Values below 1 are treated as 1.
func (scc *SCC) SetMultichar(ch int, readMax, writeMax int) {
	c := &scc.chn[ch&1]
	if readMax < 1 {
		readMax = 1
	}
	if writeMax < 1 {
		writeMax = 1
	}
	c.readCnt, c.readMax = 0, readMax
	c.writeCnt, c.writeMax = 0, writeMax
}

// IRQ returns the current level of the interrupt request output.
func (scc *SCC) IRQ() bool { return scc.irq }

// Params returns the communication parameters of channel ch.
func (scc *SCC) Params(ch int) Params { return scc.chn[ch&1].params }

// ReadControl reads the register selected by the register pointer.
func (scc *SCC) ReadControl(ch int) uint8 {
	v := scc.readReg(&scc.chn[ch&1], scc.index)
	scc.index = 0
	return v
}

// WriteControl writes the register selected by the register pointer.
// Writing WR0 loads the pointer, any other write resets it to 0.
func (scc *SCC) WriteControl(ch int, v uint8) {
	reg := scc.index
	scc.writeReg(&scc.chn[ch&1], reg, v)
	if reg != 0 {
		scc.index = 0
	}
}

// ReadData reads the receive data register of channel ch. The register
// pointer is not used.
func (scc *SCC) ReadData(ch int) uint8 {
	return scc.readReg(&scc.chn[ch&1], 8)
}

// WriteData writes the transmit data register of channel ch.
func (scc *SCC) WriteData(ch int, v uint8) {
	scc.writeReg(&scc.chn[ch&1], 8, v)
}

// SetDCD sets the DCD input of channel ch. The pin is active low, so an
// active carrier reads back as a clear RR0 bit.
func (scc *SCC) SetDCD(ch int, active bool) {
	c := &scc.chn[ch&1]
	v := c.rr[0]
	if active {
		v &^= rr0DCD
	} else {
		v |= rr0DCD
	}
	c.setRR0(v)
}

// SetCTS sets the CTS input of channel ch. Like DCD it is active low.
func (scc *SCC) SetCTS(ch int, active bool) {
	c := &scc.chn[ch&1]
	v := c.rr[0]
	if active {
		v &^= rr0CTS
	} else {
		v |= rr0CTS
	}
	c.setRR0(v)
}

// ReceiveByte queues a byte arriving on channel ch. The byte is dropped if
// the receive queue is full.
func (scc *SCC) ReceiveByte(ch int, b byte) {
	c := &scc.chn[ch&1]
	c.path().receive(c, b)
}

// SendByte collects the next transmitted byte of channel ch, or 0 if there
// is none.
func (scc *SCC) SendByte(ch int) byte {
	c := &scc.chn[ch&1]
	return c.path().send(c)
}

// InputBufferFull reports whether ReceiveByte would drop a byte.
func (scc *SCC) InputBufferFull(ch int) bool {
	c := &scc.chn[ch&1]
	return c.path().inputFull(c)
}

// OutputBufferEmpty reports whether there is nothing for SendByte to collect.
func (scc *SCC) OutputBufferEmpty(ch int) bool {
	c := &scc.chn[ch&1]
	return c.path().outputEmpty(c)
}

func (scc *SCC) setIRQ(level bool) {
	if scc.irq == level {
		return
	}
	scc.irq = level
	if scc.sink != nil {
		scc.sink.SetIRQ(level)
	}
}

// CharacterTime returns the length of a character on channel ch in clock
// units. Data moves once per character time.
func (scc *SCC) CharacterTime(ch int) uint32 { return scc.chn[ch&1].charClkDiv }
