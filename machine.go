package main

import (
	"io/ioutil"
	"log"

	"github.com/davecheney/scc/e8530"
)

// port is the host side of a channel.
type port interface {
	e8530.Line

	// input delivers received bytes. It is closed when the session
	// should end.
	input() <-chan byte
	write(b byte) error
	modem() (dcd, cts bool)
	close() error
}

// machine is the emulated system: the chip, the program servicing its
// interrupts, and the host devices on its channels. All chip access
// happens on the goroutine calling run.
type machine struct {
	scc   *e8530.SCC
	irq   irqLine
	prog  *bridge
	ports [2]port

	// modem signals last given to the chip
	dcd, cts [2]bool

	errc chan error
}

func newMachine(cfg e8530.Config, lc lineConfig, ports [2]port, errc chan error) *machine {
	if cfg.Log == nil {
		cfg.Log = log.New(ioutil.Discard, "", 0)
	}
	m := &machine{
		ports: ports,
		errc:  errc,
	}
	cfg.IRQ = &m.irq
	cfg.Lines = [2]e8530.Line{ports[0], ports[1]}
	m.scc = e8530.New(cfg)
	m.prog = &bridge{
		scc:  m.scc,
		pclk: cfg.PCLK,
		lc:   lc,
		log:  cfg.Log,
	}
	return m
}

// reset pulls the chip's reset line and restarts the program.
func (m *machine) reset() error {
	m.scc.Reset()
	// a reset chip reads both inputs as active
	m.dcd = [2]bool{true, true}
	m.cts = [2]bool{true, true}
	m.prog.start()
	return m.sync()
}

// advance runs the chip for n clock units.
func (m *machine) advance(n uint32) error {
	m.scc.Advance(n)
	return m.sync()
}

// receive hands a byte from the host to channel ch.
func (m *machine) receive(ch int, b byte) error {
	m.scc.ReceiveByte(ch, b)
	return m.sync()
}

// sync applies modem signals from the ports, runs the program if the chip
// is interrupting, and writes transmitted bytes to the ports.
func (m *machine) sync() error {
	for ch, p := range m.ports {
		dcd, cts := p.modem()
		if dcd != m.dcd[ch] {
			m.dcd[ch] = dcd
			m.scc.SetDCD(ch, dcd)
		}
		if cts != m.cts[ch] {
			m.cts[ch] = cts
			m.scc.SetCTS(ch, cts)
		}
	}

	if m.irq.level {
		m.prog.service()
	}

	for ch, p := range m.ports {
		for !m.scc.OutputBufferEmpty(ch) {
			if err := p.write(m.scc.SendByte(ch)); err != nil {
				return err
			}
		}
	}
	return nil
}

// run feeds the chip from the clock and the ports until the console is
// closed or a port fails.
func (m *machine) run(clock *lineclock) error {
	defer m.close()

	if err := m.reset(); err != nil {
		return err
	}

	for {
		// a port is not read while its channel cannot take more
		var in [2]<-chan byte
		for ch, p := range m.ports {
			if !m.scc.InputBufferFull(ch) {
				in[ch] = p.input()
			}
		}

		var err error
		select {
		case <-clock.ticks:
			err = m.advance(clock.step + clock.tick())
		case b, ok := <-in[0]:
			if !ok {
				return nil
			}
			err = m.receive(0, b)
		case b, ok := <-in[1]:
			if !ok {
				return nil
			}
			err = m.receive(1, b)
		case err = <-m.errc:
		}
		if err != nil {
			return err
		}
	}
}

func (m *machine) close() {
	for _, p := range m.ports {
		if err := p.close(); err != nil {
			log.Print(err)
		}
	}
}
