package e8530

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestDisasm(t *testing.T) {
	is := is.New(t)

	is.Equal(disasm(0, 0x10), "reset ext/status")
	is.Equal(disasm(0, 0xc0), "reset tx underrun/EOM")
	is.Equal(disasm(1, 0x13), "ext int, tx int, rx int all")
	is.Equal(disasm(4, 0x44), "1 stop, x16")
	is.Equal(disasm(4, 0x20), "sync, SDLC")
	is.Equal(disasm(9, 0xc0), "hardware reset")
	is.Equal(disasm(12, 0x18), "")
}

func TestLog(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	scc, _, _ := newTestSCC(Config{Log: log.New(&buf, "", 0)})

	wr(scc, 1, 5, 0x0a)
	is.True(strings.Contains(buf.String(), "scc B: set WR5 <- 0a (RTS, tx enable)\n"))
}
