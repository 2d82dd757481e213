package main

import (
	"io"

	"github.com/davecheney/scc/e8530"
)

// exitKey ends the session when typed on the console.
const exitKey = 0x1d // ^]

// console is the host terminal attached to channel A.
type console struct {
	e8530.NopLine

	in  chan byte
	out io.Writer
	cr  bool // last byte written was a carriage return
}

// newConsole starts reading r. The input channel is closed when r is
// exhausted or the exit key is typed.
func newConsole(r io.Reader, w io.Writer) *console {
	kl := &console{
		in:  make(chan byte, 64),
		out: w,
	}
	go kl.read(r)
	return kl
}

func (kl *console) read(r io.Reader) {
	defer close(kl.in)
	var buf [64]byte
	for {
		n, err := r.Read(buf[:])
		for _, c := range buf[:n] {
			if c == exitKey {
				return
			}
			kl.in <- c
		}
		if err != nil {
			return
		}
	}
}

func (kl *console) input() <-chan byte { return kl.in }

// write prints c. A carriage return starts a new line, and a line feed
// right after one is dropped.
func (kl *console) write(c byte) error {
	cr := kl.cr
	kl.cr = c == 13
	switch {
	case c == 13:
		c = '\n'
	case c == 10 && cr:
		return nil
	}
	_, err := kl.out.Write([]byte{c})
	return err
}

// modem reports a permanently connected terminal.
func (kl *console) modem() (dcd, cts bool) { return true, true }

func (kl *console) close() error { return nil }
