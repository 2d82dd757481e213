package e8530

// dataPath moves characters between a channel's queues, its data registers
// and the transport. The framing mode selected in WR4 picks the
// implementation.
type dataPath interface {
	checkReceive(c *channel)
	checkTransmit(c *channel)

	receive(c *channel, b byte)
	send(c *channel) byte
	inputFull(c *channel) bool
	outputEmpty(c *channel) bool
}

var (
	asyncMode dataPath = asyncPath{}
	sdlcMode  dataPath = sdlcPath{}
)

// sdlc reports whether WR4 selects SDLC mode (sync modes, 01111110 flag).
func (c *channel) sdlc() bool { return c.wr[4]&0x3c == 0x20 }

func (c *channel) path() dataPath {
	if c.sdlc() {
		return sdlcMode
	}
	return asyncMode
}

// asyncPath is the byte oriented data path.
type asyncPath struct{}

// checkReceive moves a character from the receive queue into RR8.
func (asyncPath) checkReceive(c *channel) {
	if c.rx.empty() || c.readCnt == 0 {
		return
	}
	if c.wr[3]&0x01 == 0 {
		// receiver disabled
		return
	}
	if !c.rxdEmpty {
		// the character stays queued until RR8 is read
		return
	}

	b, _ := c.rx.get()
	c.latchRx(b, condRX)
}

// checkTransmit moves the character in WR8 to the transmit queue, or to the
// receive queue in local loopback.
func (asyncPath) checkTransmit(c *channel) {
	if c.writeCnt == 0 {
		return
	}

	q := &c.tx
	if c.loopback() {
		q = &c.rx
	}
	if q.full() {
		return
	}

	if c.txdEmpty {
		c.setTxUnderrun()
		return
	}

	c.writeCnt--

	b := c.wr[8]
	q.put(b)

	if !c.loopback() && c.line != nil {
		c.line.OutputByte(b)
	}

	c.txDone()
}

func (asyncPath) receive(c *channel, b byte) {
	if c.rx.put(b) {
		return
	}

	c.logf("receive queue full, dropped %02x", b)

	if c.scc.reportOverrun {
		c.rr[1] |= rr1Overrun
		c.scc.raise(c, condSC)
	}
}

func (asyncPath) send(c *channel) byte {
	b, _ := c.tx.get()
	return b
}

func (asyncPath) inputFull(c *channel) bool   { return c.rx.full() }
func (asyncPath) outputEmpty(c *channel) bool { return c.tx.empty() }
