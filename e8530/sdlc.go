package e8530

// sdlcPath is the frame oriented data path used in SDLC mode. Frames are
// handed over whole, so the byte level transport entry points are disabled.
type sdlcPath struct{}

func (sdlcPath) checkReceive(c *channel) {
	if c.rx.empty() {
		c.loadFrame()
	}

	if c.rx.empty() || c.readCnt == 0 {
		return
	}
	if c.wr[3]&0x01 == 0 || !c.rxdEmpty {
		return
	}

	b, _ := c.rx.get()

	cond := uint8(condRX)
	if c.rx.empty() {
		// last byte of the frame
		c.rr[1] |= rr1EndOfFrame
		cond |= condSC
	} else {
		c.rr[0] &^= rr0SyncHunt
		c.rr[1] &^= rr1EndOfFrame
	}

	c.latchRx(b, cond)
}

func (sdlcPath) checkTransmit(c *channel) {
	if c.writeCnt == 0 || c.tx.full() {
		return
	}

	if c.txdEmpty {
		c.setTxUnderrun()
		return
	}

	c.writeCnt--

	c.tx.put(c.wr[8])
	c.frameInProgress = true

	c.txDone()
}

func (sdlcPath) receive(c *channel, b byte) {}
func (sdlcPath) send(c *channel) byte      { return 0 }
func (sdlcPath) inputFull(*channel) bool   { return true }
func (sdlcPath) outputEmpty(*channel) bool { return true }

// ReceiveFrame queues an SDLC frame for channel ch. It reports false if the
// frame cannot fit in the receive queue together with its two CRC bytes.
func (scc *SCC) ReceiveFrame(ch int, frame []byte) bool {
	c := &scc.chn[ch&1]
	if len(frame) == 0 || len(frame) > bufSize-3 {
		c.logf("frame of %d bytes rejected", len(frame))
		return false
	}
	c.frames = append(c.frames, append([]byte(nil), frame...))
	return true
}

// loadFrame moves the next queued frame into the receive queue. Nothing is
// loaded while the transmitter is enabled, the host is then listening for
// collisions on its own transmission.
func (c *channel) loadFrame() {
	if len(c.frames) == 0 || c.wr[5]&0x08 != 0 {
		return
	}

	f := c.frames[0]
	c.frames = c.frames[1:]

	c.rx.reset()
	for _, b := range f {
		c.rx.put(b)
	}
	// CRC
	c.rx.put(0)
	c.rx.put(0)

	c.rxdEmpty = true

	c.logf("loaded frame of %d bytes", len(f))
}

// closeFrame ends the frame being transmitted and hands it to the line.
func (c *channel) closeFrame() {
	if !c.frameInProgress {
		return
	}

	frame := make([]byte, 0, c.tx.len())
	for !c.tx.empty() {
		b, _ := c.tx.get()
		frame = append(frame, b)
	}
	c.tx.reset()
	c.frameInProgress = false

	c.logf("transmit frame of %d bytes", len(frame))

	if fs, ok := c.line.(FrameSink); ok {
		fs.OutputFrame(frame)
	}
}
