package main

import (
	"fmt"
	"io"
	"log"

	"github.com/davecheney/scc/e8530"
	"github.com/jacobsa/go-serial/serial"
)

// standardRates are the rates a host port is opened at. The chip's rate is
// rounded to the nearest one.
var standardRates = []uint32{
	50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800,
	9600, 19200, 38400, 57600, 115200, 230400,
}

func nearestRate(bps uint32) uint32 {
	best := standardRates[0]
	for _, r := range standardRates {
		if diff(r, bps) < diff(best, bps) {
			best = r
		}
	}
	return best
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// serialOptions describes a host port configured like a channel with p.
func serialOptions(name string, p e8530.Params) serial.OpenOptions {
	opts := serial.OpenOptions{
		PortName:        name,
		BaudRate:        uint(nearestRate(p.BPS)),
		DataBits:        uint(p.BitsPerChar),
		StopBits:        1,
		MinimumReadSize: 1,
	}
	if p.StopBits2 == 4 {
		opts.StopBits = 2
	}
	switch p.Parity {
	case e8530.ParityOdd:
		opts.ParityMode = serial.PARITY_ODD
	case e8530.ParityEven:
		opts.ParityMode = serial.PARITY_EVEN
	default:
		opts.ParityMode = serial.PARITY_NONE
	}
	return opts
}

// serialPort is a host serial device attached to a channel. The device is
// (re)opened whenever the channel's parameters change, and stays closed
// while the baud rate generator is off.
type serialPort struct {
	e8530.NopLine

	name string
	open func(serial.OpenOptions) (io.ReadWriteCloser, error)

	rwc  io.ReadWriteCloser
	stop chan struct{} // closed when rwc is replaced

	in   chan byte
	errc chan<- error
	log  *log.Logger
}

func newSerialPort(name string, errc chan<- error, l *log.Logger) *serialPort {
	return &serialPort{
		name: name,
		open: serial.Open,
		in:   make(chan byte, 1024),
		errc: errc,
		log:  l,
	}
}

func (s *serialPort) SetParams(p e8530.Params) {
	s.shut()
	if p.BPS == 0 || p.StopBits2 == 0 {
		// generator off or a synchronous mode
		return
	}

	opts := serialOptions(s.name, p)
	rwc, err := s.open(opts)
	if err != nil {
		s.fail(fmt.Errorf("open %s: %w", s.name, err))
		return
	}
	s.log.Printf("%s: %v, host rate %d", s.name, p, opts.BaudRate)

	s.rwc = rwc
	s.stop = make(chan struct{})
	go s.read(rwc, s.stop)
}

func (s *serialPort) read(r io.Reader, stop <-chan struct{}) {
	var buf [64]byte
	for {
		n, err := r.Read(buf[:])
		for _, b := range buf[:n] {
			select {
			case s.in <- b:
			case <-stop:
				return
			}
		}
		if err != nil {
			select {
			case <-stop:
			default:
				s.fail(fmt.Errorf("read %s: %w", s.name, err))
			}
			return
		}
	}
}

func (s *serialPort) fail(err error) {
	select {
	case s.errc <- err:
	default:
	}
}

func (s *serialPort) shut() {
	if s.rwc == nil {
		return
	}
	close(s.stop)
	if err := s.rwc.Close(); err != nil {
		s.log.Printf("%s: %v", s.name, err)
	}
	s.rwc = nil
}

func (s *serialPort) input() <-chan byte { return s.in }

// write sends b to the device. Bytes written while the device is closed
// are lost, as they would be on a disconnected line.
func (s *serialPort) write(b byte) error {
	if s.rwc == nil {
		return nil
	}
	if _, err := s.rwc.Write([]byte{b}); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}

// modem reports a connected line. Modem status lines are not available
// through the host device.
func (s *serialPort) modem() (dcd, cts bool) { return true, true }

func (s *serialPort) close() error {
	s.shut()
	return nil
}
