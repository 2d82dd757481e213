package main

import (
	"testing"

	"github.com/davecheney/scc/e8530"
	"github.com/matryer/is"
)

func TestLineConfig(t *testing.T) {
	is := is.New(t)

	lc, err := newLineConfig(9600, 8, "none", 1)
	is.NoErr(err)
	is.Equal(lc.wr4(), uint8(0x44))

	lc, err = newLineConfig(300, 7, "even", 2)
	is.NoErr(err)
	is.Equal(lc.parity, e8530.ParityEven)
	is.Equal(lc.wr4(), uint8(0x4f))

	lc, err = newLineConfig(1200, 5, "odd", 1)
	is.NoErr(err)
	is.Equal(lc.wr4(), uint8(0x45))

	for _, tc := range []struct {
		baud   uint32
		bits   int
		parity string
		stop   int
	}{
		{0, 8, "none", 1},
		{9600, 9, "none", 1},
		{9600, 8, "mark", 1},
		{9600, 8, "none", 3},
	} {
		_, err := newLineConfig(tc.baud, tc.bits, tc.parity, tc.stop)
		is.True(err != nil)
	}
}

func TestProgram(t *testing.T) {
	is := is.New(t)

	for _, tc := range []struct {
		lc   lineConfig
		want string
	}{
		{lineConfig{baud: 9600, bits: 8, parity: e8530.ParityNone, stop: 1}, "9600 8N1"},
		{lineConfig{baud: 2400, bits: 7, parity: e8530.ParityEven, stop: 2}, "2400 7E2"},
		{lineConfig{baud: 19200, bits: 6, parity: e8530.ParityOdd, stop: 1}, "19200 6O1"},
	} {
		scc := e8530.New(e8530.Config{PCLK: testPCLK})
		scc.Reset()
		prog := bridge{scc: scc, pclk: testPCLK, lc: tc.lc}
		prog.program(1)
		is.Equal(scc.Params(1).String(), tc.want)
		is.True(prog.idle[1])
	}
}

func TestInterrupt(t *testing.T) {
	is := is.New(t)

	for _, tc := range []struct {
		vec  uint8
		ch   int
		kind int
		s    string
	}{
		{0x0c, 0, intRx, "interrupt: 014, channel A rx"},
		{0x08, 0, intTx, "interrupt: 010, channel A tx"},
		{0x0a, 0, intExt, "interrupt: 012, channel A ext"},
		{0x04, 1, intRx, "interrupt: 004, channel B rx"},
		{0x00, 1, intTx, "interrupt: 000, channel B tx"},
		{0x02, 1, intExt, "interrupt: 002, channel B ext"},
	} {
		i := interrupt{tc.vec}
		is.Equal(i.ch(), tc.ch)
		is.Equal(i.kind(), tc.kind)
		is.Equal(i.String(), tc.s)
	}
}

func TestIRQLine(t *testing.T) {
	is := is.New(t)
	var irq irqLine

	irq.SetIRQ(true)
	irq.SetIRQ(true)
	irq.SetIRQ(false)
	irq.SetIRQ(true)
	is.True(irq.level)
	is.Equal(irq.count, 2)
}
