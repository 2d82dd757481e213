// scc runs an emulated Z8530 serial controller with a small interrupt
// driven program that bridges the console on channel A to a serial line on
// channel B.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecheney/scc/e8530"
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("scc: ")
}

func main() {
	var cli struct {
		Run  runCmd  `cmd:"" default:"1" help:"bridge the console to a serial line through an emulated Z8530"`
		Baud baudCmd `cmd:"" help:"show the time constant and character time for a baud rate"`
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(log.New(os.Stderr, "", 0))
	ctx.FatalIfErrorf(err)
}

type runCmd struct {
	PCLK      uint32 `name:"pclk" default:"3686400" help:"master clock in Hz"`
	RTxC      uint32 `name:"rtxc" default:"3686400" help:"RTxC clock of both channels in Hz"`
	Baud      uint32 `name:"baud" default:"9600" help:"line speed"`
	Bits      int    `name:"bits" default:"8" help:"bits per character, 5 to 8"`
	Parity    string `name:"parity" default:"none" help:"none, odd or even"`
	Stop      int    `name:"stop" default:"1" help:"stop bits, 1 or 2"`
	Hz        uint32 `name:"hz" default:"1000" help:"line clock frequency"`
	Port      string `name:"port" type:"existingfile" help:"host serial device for channel B, a null modem plug if not given"`
	Multichar int    `name:"multichar" default:"1" help:"characters moved per character time"`
	Overrun   bool   `name:"overrun" help:"report receive overruns"`
	Verbose   bool   `name:"verbose" short:"v" help:"log register access and interrupts"`
}

func (r *runCmd) Run(l *log.Logger) error {
	lc, err := newLineConfig(r.Baud, r.Bits, r.Parity, r.Stop)
	if err != nil {
		return err
	}

	cfg := e8530.Config{
		PCLK:          r.PCLK,
		RTxC:          [2]uint32{r.RTxC, r.RTxC},
		ReportOverrun: r.Overrun,
	}
	if r.Verbose {
		cfg.Log = l
	}

	errc := make(chan error, 1)
	var b port = newNullModem(l)
	if r.Port != "" {
		b = newSerialPort(r.Port, errc, l)
	}

	restore, err := makeRaw(os.Stdin.Fd())
	if err != nil {
		log.Printf("console is not a terminal: %v", err)
	} else {
		defer restore()
	}

	m := newMachine(cfg, lc, [2]port{newConsole(os.Stdin, os.Stdout), b}, errc)
	m.scc.SetMultichar(0, r.Multichar, r.Multichar)
	m.scc.SetMultichar(1, r.Multichar, r.Multichar)

	clock := newLineclock(r.PCLK, r.Hz)
	defer clock.stop()

	fmt.Fprintf(os.Stderr, "scc: %d %d%c%d, type ^] to exit\r\n", lc.baud, lc.bits, "NOE"[lc.parity], lc.stop)
	if err := m.run(clock); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type baudCmd struct {
	Rate   uint32 `arg:"" help:"baud rate"`
	PCLK   uint32 `name:"pclk" default:"3686400" help:"master clock in Hz"`
	Bits   int    `name:"bits" default:"8" help:"bits per character, 5 to 8"`
	Parity string `name:"parity" default:"none" help:"none, odd or even"`
	Stop   int    `name:"stop" default:"1" help:"stop bits, 1 or 2"`
}

// Run programs a chip the way the bridge does and reports what it got.
func (c *baudCmd) Run(l *log.Logger) error {
	lc, err := newLineConfig(c.Rate, c.Bits, c.Parity, c.Stop)
	if err != nil {
		return err
	}

	scc := e8530.New(e8530.Config{PCLK: c.PCLK})
	scc.Reset()
	prog := bridge{scc: scc, pclk: c.PCLK, lc: lc, log: l}
	prog.program(0)

	tc := e8530.TimeConstant(c.PCLK, 16, c.Rate)
	p := scc.Params(0)
	errPct := (float64(p.BPS) - float64(c.Rate)) / float64(c.Rate) * 100

	fmt.Printf("time constant %d (%#04x)\n", tc, tc)
	fmt.Printf("rate          %v (%+.2f%%)\n", p, errPct)
	fmt.Printf("character     %d clocks\n", scc.CharacterTime(0))
	return nil
}
