package e8530

import (
	"testing"

	"github.com/matryer/is"
)

func sdlcMode1(scc *SCC) {
	wr(scc, 1, 4, 0x20)
	wr(scc, 1, 3, 0x01)
}

func TestSDLCReceiveFrame(t *testing.T) {
	is := is.New(t)
	scc, _, _ := newTestSCC(Config{})
	sdlcMode1(scc)
	wr(scc, 1, 1, 0x10)

	// byte level transport is off in SDLC mode
	scc.ReceiveByte(1, 'x')
	is.True(scc.InputBufferFull(1))
	is.True(scc.OutputBufferEmpty(1))
	is.Equal(scc.SendByte(1), byte(0))

	is.True(scc.ReceiveFrame(1, []byte{1, 2, 3}))

	var got []byte
	for i := 0; i < 5; i++ {
		tick(scc, 1)
		is.Equal(rd(scc, 1, 0)&rr0RxAvail, uint8(rr0RxAvail))
		if i < 4 {
			is.Equal(rd(scc, 1, 1)&rr1EndOfFrame, uint8(0))
		}
		got = append(got, scc.ReadData(1))
	}
	is.Equal(got, []byte{1, 2, 3, 0, 0}) // frame and CRC
	is.Equal(rd(scc, 1, 1)&rr1EndOfFrame, uint8(rr1EndOfFrame))

	tick(scc, 1)
	is.Equal(rd(scc, 1, 0)&rr0RxAvail, uint8(0))

	wr(scc, 1, 0, cmdErrorReset<<3)
	is.Equal(rd(scc, 1, 1)&rr1EndOfFrame, uint8(0))
}

func TestSDLCEndOfFrameInterrupt(t *testing.T) {
	is := is.New(t)
	scc, irq, _ := newTestSCC(Config{})
	sdlcMode1(scc)
	wr(scc, 1, 1, 0x18) // special condition only
	wr(scc, 0, 9, 0x08)

	scc.ReceiveFrame(1, []byte{9})
	for i := 0; i < 2; i++ {
		tick(scc, 1)
		is.True(!irq.level)
		scc.ReadData(1)
	}
	tick(scc, 1)
	is.True(irq.level)
	is.Equal(rd(scc, 0, 3), uint8(0x04))

	// leaving SDLC mode drops the end of frame bit
	wr(scc, 1, 4, 0x44)
	is.Equal(rd(scc, 1, 1)&rr1EndOfFrame, uint8(0))
}

func TestSDLCTransmitFrame(t *testing.T) {
	is := is.New(t)
	scc, _, lines := newTestSCC(Config{})
	sdlcMode1(scc)

	wr(scc, 1, 5, 0x08)
	scc.WriteData(1, 0xa5)
	tick(scc, 1)
	scc.WriteData(1, 0x5a)
	tick(scc, 1)
	is.Equal(len(lines[1].frames), 0)
	is.Equal(len(lines[1].out), 0)

	// disabling the transmitter ends the frame
	wr(scc, 1, 5, 0x00)
	is.Equal(lines[1].frames, [][]byte{{0xa5, 0x5a}})
	is.True(scc.chn[1].tx.empty())

	// so does resetting the Tx underrun/EOM latch
	wr(scc, 1, 5, 0x08)
	scc.WriteData(1, 0x7e)
	tick(scc, 1)
	wr(scc, 1, 0, 0xc0)
	is.Equal(len(lines[1].frames), 2)
	is.Equal(lines[1].frames[1], []byte{0x7e})

	// nothing in progress, nothing sent
	wr(scc, 1, 5, 0x00)
	is.Equal(len(lines[1].frames), 2)
}

func TestSDLCNoReceiveWhileTransmitting(t *testing.T) {
	is := is.New(t)
	scc, _, _ := newTestSCC(Config{})
	sdlcMode1(scc)

	wr(scc, 1, 5, 0x08)
	scc.ReceiveFrame(1, []byte{1})
	tick(scc, 1)
	is.Equal(rd(scc, 1, 0)&rr0RxAvail, uint8(0))

	wr(scc, 1, 5, 0x00)
	tick(scc, 1)
	is.Equal(scc.ReadData(1), uint8(1))
}

func TestSDLCSendAbort(t *testing.T) {
	is := is.New(t)
	scc, _, _ := newTestSCC(Config{})
	sdlcMode1(scc)

	wr(scc, 1, 0, cmdSendAbort<<3)
	is.Equal(rd(scc, 1, 0)&rr0TxUnderrun, uint8(rr0TxUnderrun))
}

func TestSDLCFrameTooLong(t *testing.T) {
	is := is.New(t)
	scc, _, _ := newTestSCC(Config{})

	is.True(!scc.ReceiveFrame(1, make([]byte, bufSize-2)))
	is.True(!scc.ReceiveFrame(1, nil))
	is.True(scc.ReceiveFrame(1, make([]byte, bufSize-3)))
}
