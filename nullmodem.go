package main

import (
	"log"

	"github.com/davecheney/scc/e8530"
)

// nullModem is a loopback plug. TX is wired to RX, and RTS to CTS and DCD.
type nullModem struct {
	e8530.NopLine

	in  chan byte
	rts bool
	log *log.Logger
}

func newNullModem(l *log.Logger) *nullModem {
	return &nullModem{
		in:  make(chan byte, 1024),
		log: l,
	}
}

func (nm *nullModem) SetRTS(active bool) { nm.rts = active }

func (nm *nullModem) input() <-chan byte { return nm.in }

func (nm *nullModem) write(b byte) error {
	select {
	case nm.in <- b:
	default:
		nm.log.Printf("null modem: dropped %02x", b)
	}
	return nil
}

func (nm *nullModem) modem() (dcd, cts bool) { return nm.rts, nm.rts }

func (nm *nullModem) close() error { return nil }
