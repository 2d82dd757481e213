package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/davecheney/scc/e8530"
	"github.com/matryer/is"
)

const testPCLK = 3686400

type testPort struct {
	e8530.NopLine

	in       chan byte
	out      []byte
	dcd, cts bool
	params   []e8530.Params
	closed   bool
}

func newTestPort() *testPort { return &testPort{dcd: true, cts: true} }

func (p *testPort) SetParams(pp e8530.Params) { p.params = append(p.params, pp) }
func (p *testPort) input() <-chan byte        { return p.in }
func (p *testPort) modem() (dcd, cts bool)    { return p.dcd, p.cts }

func (p *testPort) write(b byte) error {
	p.out = append(p.out, b)
	return nil
}

func (p *testPort) close() error {
	p.closed = true
	return nil
}

func testLineConfig() lineConfig {
	return lineConfig{baud: 9600, bits: 8, parity: e8530.ParityNone, stop: 1}
}

func newTestMachine(t *testing.T, b port, logw *bytes.Buffer) (*machine, *testPort) {
	t.Helper()
	a := newTestPort()
	cfg := e8530.Config{PCLK: testPCLK}
	if logw != nil {
		cfg.Log = log.New(logw, "", 0)
	}
	m := newMachine(cfg, testLineConfig(), [2]port{a, b}, make(chan error, 1))
	if err := m.reset(); err != nil {
		t.Fatal(err)
	}
	return m, a
}

// step runs the chip for one character time.
func step(m *machine) error {
	return m.advance(m.scc.CharacterTime(0))
}

func TestMachineReset(t *testing.T) {
	is := is.New(t)
	b := newTestPort()
	m, a := newTestMachine(t, b, nil)

	is.True(!m.irq.level)
	for ch, p := range []*testPort{a, b} {
		is.Equal(m.scc.Params(ch).String(), "9600 8N1")
		is.Equal(p.params[len(p.params)-1], m.scc.Params(ch))
	}
}

func TestMachineForward(t *testing.T) {
	is := is.New(t)
	b := newTestPort()
	m, a := newTestMachine(t, b, nil)

	is.NoErr(m.receive(0, 'h'))
	is.Equal(len(b.out), 0) // not before the next character time
	is.NoErr(step(m))
	is.Equal(string(b.out), "h")
	is.True(!m.irq.level)

	is.NoErr(m.receive(1, 'o'))
	is.NoErr(m.receive(1, 'k'))
	for i := 0; i < 2; i++ {
		is.NoErr(step(m))
	}
	is.Equal(string(a.out), "ok")
	is.Equal(string(b.out), "h")
}

func TestMachineQueue(t *testing.T) {
	is := is.New(t)
	b := newTestPort()
	m, _ := newTestMachine(t, b, nil)

	// nothing has been clocked yet, so the first byte waits in WR8
	m.prog.send(1, 'a')
	m.prog.send(1, 'b')
	is.Equal(m.prog.queue[1], []byte{'b'})

	is.NoErr(step(m))
	is.Equal(string(b.out), "a")
	is.True(!m.prog.idle[1])

	is.NoErr(step(m))
	is.Equal(string(b.out), "ab")
	is.True(m.prog.idle[1])
	is.Equal(len(m.prog.queue[1]), 0)
}

func TestMachineNullModem(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	nm := newNullModem(log.New(ioutil.Discard, "", 0))
	m, a := newTestMachine(t, nm, &buf)
	is.True(nm.rts)

	is.NoErr(m.receive(0, 'x'))
	is.NoErr(step(m))

	// B transmitted x into the plug, which hands it back
	c := <-nm.in
	is.Equal(c, byte('x'))
	is.NoErr(m.receive(1, c))
	is.NoErr(step(m))
	is.Equal(string(a.out), "x")

	// dropping RTS drops CTS and DCD
	n := m.irq.count
	m.prog.write(1, 5, 0xe8)
	is.True(!nm.rts)
	is.NoErr(m.sync())
	is.Equal(m.irq.count, n+1)
	is.True(!m.irq.level)
	is.Equal(m.prog.read(1, 0)&0x28, uint8(0x28))
	is.True(strings.Contains(buf.String(), "channel B: DCD false, CTS false"))
}

func TestMachineRun(t *testing.T) {
	is := is.New(t)
	a, b := newTestPort(), newTestPort()
	m := newMachine(e8530.Config{PCLK: testPCLK}, testLineConfig(), [2]port{a, b}, make(chan error, 1))

	a.in = make(chan byte, 1)
	a.in <- 'q'
	close(a.in)

	is.NoErr(m.run(&lineclock{}))
	is.True(a.closed)
	is.True(b.closed)
	is.True(!m.scc.InputBufferFull(0))
}

func TestMachineRunError(t *testing.T) {
	is := is.New(t)
	a, b := newTestPort(), newTestPort()
	errc := make(chan error, 1)
	m := newMachine(e8530.Config{PCLK: testPCLK}, testLineConfig(), [2]port{a, b}, errc)

	boom := errors.New("boom")
	errc <- boom
	is.Equal(m.run(&lineclock{}), boom)
	is.True(b.closed)
}
