package e8530

// Interrupt conditions.
const (
	condES = 1 << iota // external/status
	condTX             // transmit buffer empty
	condRX             // receive character available
	condSC             // special receive condition
)

// RR3 interrupt pending bits for channel B. Channel A uses the same bits
// shifted left by 3.
const (
	ipExt = 0x01
	ipTx  = 0x02
	ipRx  = 0x04
)

// ip returns the RR3 bit for pending bit b on channel c.
func (c *channel) ip(b uint8) uint8 {
	if c.id == 0 {
		return b << 3
	}
	return b
}

// raise sets the interrupt pending bits for the enabled conditions in cond
// and recomputes the IRQ output. raise(c, 0) only recomputes IRQ.
func (scc *SCC) raise(c *channel, cond uint8) {
	a := &scc.chn[0]

	if cond&condES != 0 && c.wr[1]&0x01 != 0 {
		a.rr[3] |= c.ip(ipExt)
		c.latchMask = c.wr[15]
		c.latchVal = c.rr[0]
	}

	if cond&condTX != 0 && c.wr[1]&0x02 != 0 {
		a.rr[3] |= c.ip(ipTx)
	}

	if cond&(condRX|condSC) != 0 {
		data := !c.rxdEmpty
		special := cond&condSC != 0

		var irq bool
		switch (c.wr[1] >> 3) & 3 {
		case 0: // disabled
		case 1: // first character or special condition
			irq = (data && c.intOnNextRx) || special
		case 2: // all characters or special condition
			irq = data || special
		case 3: // special condition only
			irq = special
		}
		if data {
			c.intOnNextRx = false
		}
		if irq {
			a.rr[3] |= c.ip(ipRx)
		}
	}

	scc.updateIRQ()
}

// clear resets the interrupt pending bits for cond and recomputes IRQ.
func (scc *SCC) clear(c *channel, cond uint8) {
	a := &scc.chn[0]

	if cond&condES != 0 {
		a.rr[3] &^= c.ip(ipExt)
		c.latchMask = 0
	}
	if cond&condTX != 0 {
		a.rr[3] &^= c.ip(ipTx)
	}
	if cond&(condRX|condSC) != 0 {
		a.rr[3] &^= c.ip(ipRx)
	}

	scc.updateIRQ()
}

func (scc *SCC) updateIRQ() {
	a := &scc.chn[0]
	if a.wr[9]&0x08 == 0 {
		// MIE
		scc.setIRQ(false)
		return
	}
	scc.setIRQ(a.rr[3] != 0)
}

// vectorStatus is the status encoding for the highest priority pending
// interrupt, in RR3 order from highest to lowest. The low three bits are
// used with WR9 status low, bits 3-5 with status high.
var vectorStatus = [...]struct {
	ip uint8
	st uint8
}{
	{0x20, 0x06 | 0x03<<3}, // A rx
	{0x10, 0x04 | 0x01<<3}, // A tx
	{0x08, 0x05 | 0x05<<3}, // A ext
	{0x04, 0x02 | 0x02<<3}, // B rx
	{0x02, 0x00 | 0x00<<3}, // B tx
	{0x01, 0x01 | 0x04<<3}, // B ext
}

// readRR2 returns the interrupt vector. Read through channel B it includes
// the status of the highest priority pending interrupt.
func (scc *SCC) readRR2(c *channel) uint8 {
	a := &scc.chn[0]
	v := a.rr[2]
	if c.id == 0 {
		return v
	}

	st := uint8(0x03 | 0x06<<3) // nothing pending
	for _, vs := range vectorStatus {
		if a.rr[3]&vs.ip != 0 {
			st = vs.st
			break
		}
	}

	if a.wr[9]&0x10 != 0 {
		// status high
		return (v & 0x70) | ((st & 0x38) << 1)
	}
	return (v & 0xf1) | ((st & 0x07) << 1)
}
