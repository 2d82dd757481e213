package e8530

// channel is one half of the chip.
type channel struct {
	scc *SCC // owner, not a copy of its state
	id  int

	wr [16]uint8
	rr [16]uint8

	rx, tx ring

	// rr[8] and wr[8] act as the receive and transmit latches.
	rxdEmpty bool
	txdEmpty bool

	charClkDiv uint32
	charClkCnt uint32
	ticks      uint64

	readCnt, readMax   int
	writeCnt, writeMax int

	rtxc uint32

	// RR0 snapshot taken when an external/status interrupt is raised.
	latchMask uint8
	latchVal  uint8

	intOnNextRx bool

	params Params

	line Line

	// SDLC
	frames          [][]byte
	frameInProgress bool
}

func (c *channel) init() {
	c.rxdEmpty = true
	c.txdEmpty = true
	c.intOnNextRx = false
	c.charClkCnt = 0
	c.charClkDiv = 16384
	c.readCnt, c.readMax = 0, 1
	c.writeCnt, c.writeMax = 0, 1
}

func (c *channel) name() byte { return 'A' + byte(c.id) }

func (c *channel) logf(format string, v ...interface{}) {
	c.scc.log.Printf("scc %c: "+format, append([]interface{}{c.name()}, v...)...)
}

// reset puts the channel into its post reset state. Registers shared with
// the other channel (WR2, WR9, RR2, RR3) are left alone.
func (c *channel) reset() {
	for i := range c.wr {
		if i != 2 && i != 9 {
			c.wr[i] = 0
		}
	}
	for i := range c.rr {
		if i != 2 && i != 3 {
			c.rr[i] = 0
		}
	}

	c.rr[0] |= rr0TxEmpty
	c.rr[1] |= rr1AllSent

	c.latchMask = 0
	c.latchVal = 0
	c.intOnNextRx = false

	c.params = Params{}
	c.charClkDiv = 16384

	c.rx.reset()
	c.tx.reset()
	c.rxdEmpty = true
	c.txdEmpty = true

	c.frames = nil
	c.frameInProgress = false

	c.setRTS(false)
}

func (c *channel) setRTS(active bool) {
	if c.line != nil {
		c.line.SetRTS(active)
	}
}

// setRR0 stores a new RR0 value and raises an external/status interrupt if
// a bit enabled in WR15 changed.
func (c *channel) setRR0(v uint8) {
	old := c.rr[0]
	c.rr[0] = v
	if (old^v)&c.wr[15]&0xfa != 0 {
		c.scc.raise(c, condES)
	}
}

// setTxUnderrun sets the Tx underrun/EOM bit. Only a 0 to 1 transition is
// reported as an external/status change.
func (c *channel) setTxUnderrun() {
	if c.rr[0]&rr0TxUnderrun == 0 {
		c.setRR0(c.rr[0] | rr0TxUnderrun)
	}
}

func (c *channel) loopback() bool { return c.wr[14]&0x10 != 0 }

// latchRx moves b into the receive data register.
func (c *channel) latchRx(b byte, cond uint8) {
	c.readCnt--
	c.rr[8] = b
	if c.line != nil {
		c.line.InputAvailable(true)
	}
	c.rr[0] |= rr0RxAvail
	c.rxdEmpty = false
	c.scc.raise(c, cond)
}

// txDone marks the transmit data register as empty again.
func (c *channel) txDone() {
	c.rr[0] |= rr0TxEmpty
	c.txdEmpty = true
	c.scc.raise(c, condTX)
}
