package main

import (
	"time"
)

// lineclock paces the chip from the host clock. Every tick is worth step
// units of the chip's master clock.
type lineclock struct {
	t     *time.Ticker
	ticks <-chan time.Time
	step  uint32
}

func newLineclock(pclk, hz uint32) *lineclock {
	if hz == 0 {
		hz = 1
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	return &lineclock{
		t:     t,
		ticks: t.C,
		step:  pclk / hz,
	}
}

// tick reports how many clock units have elapsed since the last call,
// without blocking.
func (kw *lineclock) tick() uint32 {
	var n uint32
	for {
		select {
		case <-kw.ticks:
			n += kw.step
		default:
			return n
		}
	}
}

func (kw *lineclock) stop() { kw.t.Stop() }
