package e8530

var (
	clockMode   = [4]uint32{1, 16, 32, 64}
	bitsPerChar = [4]int{5, 7, 6, 8}
	parityMode  = [4]int{ParityNone, ParityOdd, ParityNone, ParityEven}
	stopBits2   = [4]int{0, 2, 3, 4}
)

// idleDivisor is the character time used while the baud rate generator is off.
const idleDivisor = 16384

// Advance moves both channels forward by n clock units.
func (scc *SCC) Advance(n uint32) {
	scc.chn[0].clock(n)
	scc.chn[1].clock(n)
}

// clock counts down the character clock. When it expires the channel may
// move one character (or readMax/writeMax in multichar mode) in each
// direction.
func (c *channel) clock(n uint32) {
	if n < c.charClkCnt {
		c.charClkCnt -= n
		return
	}
	n -= c.charClkCnt

	if n > c.charClkDiv {
		n %= c.charClkDiv
	}

	c.charClkCnt = c.charClkDiv - n
	c.ticks++

	c.readCnt = c.readMax
	c.writeCnt = c.writeMax

	p := c.path()
	p.checkReceive(c)
	p.checkTransmit(c)
}

// setParams decodes the character format and baud rate, recomputes the
// character clock divisor and tells the line if anything changed.
func (c *channel) setParams() {
	p := Params{
		BitsPerChar: bitsPerChar[(c.wr[5]>>5)&3],
		Parity:      parityMode[c.wr[4]&3],
		StopBits2:   stopBits2[(c.wr[4]>>2)&3],
	}

	mul := clockMode[(c.wr[4]>>6)&3]
	if p.StopBits2 == 0 {
		// sync mode
		mul = 1
	}

	if c.wr[14]&0x01 != 0 {
		// baud rate generator enabled
		clk := c.rtxc
		if c.wr[14]&0x02 != 0 {
			clk = c.scc.pclk
		}

		tc := uint32(c.wr[13])<<8 | uint32(c.wr[12])
		div := 2 * mul * (tc + 2)

		c.charClkDiv = (uint32(2*p.BitsPerChar+p.StopBits2+2) * div) / 2
		if p.Parity != ParityNone {
			c.charClkDiv += div
		}

		p.BPS = clk / div
	} else {
		c.charClkDiv = idleDivisor
	}

	if p == c.params {
		return
	}
	c.params = p

	c.logf("%v", p)

	if c.line != nil {
		c.line.SetParams(p)
	}
}

// TimeConstant returns the WR12/WR13 time constant that makes the baud rate
// generator produce bps from clk with clock multiplier mul (1, 16, 32 or
// 64). The result is rounded so the real rate is as close as possible.
func TimeConstant(clk uint32, mul uint32, bps uint32) uint16 {
	if bps == 0 || mul == 0 {
		return 0
	}
	div := 2 * mul * bps
	tc := (clk + div/2) / div
	if tc < 2 {
		return 0
	}
	if tc-2 > 0xffff {
		return 0xffff
	}
	return uint16(tc - 2)
}

// BaudRate returns the rate produced by time constant tc, the inverse of
// TimeConstant.
func BaudRate(clk uint32, mul uint32, tc uint16) uint32 {
	return clk / (2 * mul * (uint32(tc) + 2))
}
