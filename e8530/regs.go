package e8530

// readImage maps a read register number to the register actually returned.
// RR4-7, RR9, RR11 and RR14 are images of other registers.
var readImage = [16]uint8{0, 1, 2, 3, 0, 1, 2, 3, 8, 13, 10, 15, 12, 13, 10, 15}

func (scc *SCC) readReg(c *channel, reg uint8) uint8 {
	var v uint8

	switch readImage[reg&15] {
	case 0:
		v = c.readRR0()
	case 2:
		v = scc.readRR2(c)
	case 3:
		// RR3 only exists in channel A
		if c.id == 0 {
			v = c.rr[3]
		}
	case 8:
		v = scc.readRR8(c)
	default:
		v = c.rr[readImage[reg&15]]
	}

	c.logf("get RR%d -> %02x", reg, v)

	return v
}

// readRR0 returns RR0 with the bits latched by the last external/status
// interrupt held at their latched value.
func (c *channel) readRR0() uint8 {
	v := c.rr[0] &^ c.latchMask
	v |= c.latchVal & c.latchMask
	return v
}

func (scc *SCC) readRR8(c *channel) uint8 {
	v := c.rr[8]

	c.rr[0] &^= rr0RxAvail
	c.rxdEmpty = true

	scc.clear(c, condRX)

	c.path().checkReceive(c)

	return v
}

func (scc *SCC) writeReg(c *channel, reg uint8, v uint8) {
	if d := disasm(reg, v); d != "" {
		c.logf("set WR%d <- %02x (%s)", reg, v, d)
	} else {
		c.logf("set WR%d <- %02x", reg, v)
	}

	switch reg & 15 {
	case 0:
		scc.setWR0(c, v)
	case 1:
		c.wr[1] = v
		scc.raise(c, 0)
	case 2:
		for i := range scc.chn {
			scc.chn[i].wr[2] = v
			scc.chn[i].rr[2] = v
		}
	case 3:
		scc.setWR3(c, v)
	case 4:
		c.wr[4] = v
		if !c.sdlc() {
			c.rr[1] &^= rr1EndOfFrame
		}
		c.setParams()
	case 5:
		scc.setWR5(c, v)
	case 8:
		scc.setWR8(c, v)
	case 9:
		scc.setWR9(v)
	case 12, 13:
		c.wr[reg] = v
		c.rr[reg] = v
		c.setParams()
	case 14:
		c.wr[14] = v
		if v&0xe0 != 0 {
			c.logf("dpll cmd: %d", v>>5)
		}
		c.setParams()
	case 15:
		c.wr[15] = v
		c.rr[15] = v
	default:
		c.wr[reg&15] = v
	}
}

// WR0 commands, bits 3-5.
const (
	cmdNull = iota
	cmdPointHigh
	cmdResetExtStatus
	cmdSendAbort
	cmdIntNextRx
	cmdResetTxPending
	cmdErrorReset
	cmdResetIUS
)

func (scc *SCC) setWR0(c *channel, v uint8) {
	c.wr[0] = v

	scc.index = v & 7

	switch (v >> 3) & 7 {
	case cmdNull:
	case cmdPointHigh:
		scc.index += 8
	case cmdResetExtStatus:
		scc.clear(c, condES)
	case cmdSendAbort:
		c.logf("send abort")
		c.setTxUnderrun()
	case cmdIntNextRx:
		c.intOnNextRx = true
	case cmdResetTxPending:
		scc.clear(c, condTX)
	case cmdErrorReset:
		c.rr[1] &^= 0xf0
	case cmdResetIUS:
	}

	if v>>6 == 3 {
		// reset Tx underrun/EOM latch
		c.rr[0] &^= rr0TxUnderrun
		c.closeFrame()
	}
}

func (scc *SCC) setWR3(c *channel, v uint8) {
	if (c.wr[3]^v)&0x01 != 0 {
		if v&0x01 != 0 {
			c.logf("receiver enable")
			c.intOnNextRx = true
			c.rxdEmpty = true
			c.rr[0] &^= rr0RxAvail
		} else {
			c.logf("receiver disable")
			c.rr[0] &^= rr0RxAvail
			scc.clear(c, condRX)
		}
	}

	if v&0x10 != 0 {
		// enter hunt mode
		c.rr[0] |= rr0SyncHunt
	}

	c.wr[3] = v
}

func (scc *SCC) setWR5(c *channel, v uint8) {
	old := c.wr[5]
	c.wr[5] = v

	if (old^v)&0x02 != 0 {
		c.setRTS(v&0x02 != 0)
	}

	if (old^v)&0x08 != 0 && v&0x08 == 0 {
		// transmitter disabled
		c.closeFrame()
	}

	c.setParams()
}

func (scc *SCC) setWR8(c *channel, v uint8) {
	c.wr[8] = v

	c.rr[0] &^= rr0TxEmpty
	c.txdEmpty = false

	scc.clear(c, condTX)

	c.path().checkTransmit(c)
}

func (scc *SCC) setWR9(v uint8) {
	switch v >> 6 {
	case 1:
		scc.resetChannel(&scc.chn[1])
	case 2:
		scc.resetChannel(&scc.chn[0])
	case 3:
		scc.chn[0].logf("hardware reset")
		scc.Reset()
		return
	}

	for i := range scc.chn {
		scc.chn[i].wr[9] = v
	}

	// MIE may have changed
	scc.updateIRQ()
}

func (scc *SCC) resetChannel(c *channel) {
	c.logf("channel reset")
	c.reset()
	scc.clear(c, condES|condTX|condRX)
}
