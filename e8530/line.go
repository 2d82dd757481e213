package e8530

import "fmt"

// IRQSink receives the level of the chip's interrupt request output. It is
// only called when the level changes.
type IRQSink interface {
	SetIRQ(level bool)
}

// Line is whatever sits on the far side of a channel: a terminal, a host
// serial port, a null modem. A Line must not call back into the chip from
// inside one of these methods.
type Line interface {
	// InputAvailable is called when a received character has been moved
	// into the receive data register.
	InputAvailable(ok bool)

	// OutputByte is called when a character has been queued for
	// transmission. The byte stays queued until collected with SendByte.
	OutputByte(b byte)

	// SetRTS follows the RTS bit of WR5.
	SetRTS(active bool)

	// SetParams is called when the baud rate or the character format changes.
	SetParams(p Params)
}

// FrameSink may be implemented by a Line to receive SDLC frames.
type FrameSink interface {
	OutputFrame(frame []byte)
}

// NopLine implements Line and ignores everything. Embed it to implement only
// some of the Line methods.
type NopLine struct{}

func (NopLine) InputAvailable(bool) {}
func (NopLine) OutputByte(byte)     {}
func (NopLine) SetRTS(bool)         {}
func (NopLine) SetParams(Params)    {}

// Parity values reported in Params.
const (
	ParityNone = 0
	ParityOdd  = 1
	ParityEven = 2
)

// Params are the communication parameters decoded from WR4, WR5, WR12-14.
type Params struct {
	BPS         uint32 // 0 if the baud rate generator is off
	Parity      int
	BitsPerChar int
	StopBits2   int // twice the number of stop bits, 0 in synchronous modes
}

func (p Params) String() string {
	par := [3]byte{'N', 'O', 'E'}
	stop := [5]string{"0", "", "1", "1.5", "2"}
	return fmt.Sprintf("%d %d%c%s", p.BPS, p.BitsPerChar, par[p.Parity], stop[p.StopBits2])
}
