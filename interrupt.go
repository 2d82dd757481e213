package main

import "fmt"

// Interrupt kinds, as encoded in the low bits of the status in the vector.
const (
	intTx      = 0
	intExt     = 1
	intRx      = 2
	intSpecial = 3
)

var intNames = [4]string{"tx", "ext", "rx", "special"}

// interrupt is a vector read from RR2 through channel B with WR9 status
// low selected.
type interrupt struct {
	vec uint8
}

// ch returns the channel that raised the interrupt.
func (i interrupt) ch() int {
	if i.vec&0x08 != 0 {
		return 0
	}
	return 1
}

func (i interrupt) kind() int { return int(i.vec>>1) & 3 }

func (i interrupt) String() string {
	return fmt.Sprintf("interrupt: %03o, channel %c %s", i.vec, 'A'+i.ch(), intNames[i.kind()])
}

// irqLine is the CPU side of the chip's interrupt request output.
type irqLine struct {
	level bool
	count int // rising edges
}

func (i *irqLine) SetIRQ(level bool) {
	if level && !i.level {
		i.count++
	}
	i.level = level
}
