package e8530

import "strings"

// field describes one field value of a write register.
type field struct {
	reg  uint8
	mask uint8
	val  uint8
	msg  string
}

var disasmtable = [...]field{
	{0, 0x38, 0x08, "point high"},
	{0, 0x38, 0x10, "reset ext/status"},
	{0, 0x38, 0x18, "send abort"},
	{0, 0x38, 0x20, "int on next rx"},
	{0, 0x38, 0x28, "reset tx int pending"},
	{0, 0x38, 0x30, "error reset"},
	{0, 0x38, 0x38, "reset highest IUS"},
	{0, 0xc0, 0x40, "reset rx CRC"},
	{0, 0xc0, 0x80, "reset tx CRC"},
	{0, 0xc0, 0xc0, "reset tx underrun/EOM"},

	{1, 0x01, 0x01, "ext int"},
	{1, 0x02, 0x02, "tx int"},
	{1, 0x18, 0x08, "rx int first"},
	{1, 0x18, 0x10, "rx int all"},
	{1, 0x18, 0x18, "rx int special"},

	{3, 0x01, 0x01, "rx enable"},
	{3, 0x10, 0x10, "enter hunt"},

	{4, 0x0c, 0x00, "sync"},
	{4, 0x0c, 0x04, "1 stop"},
	{4, 0x0c, 0x08, "1.5 stop"},
	{4, 0x0c, 0x0c, "2 stop"},
	{4, 0x3c, 0x20, "SDLC"},
	{4, 0x03, 0x01, "odd parity"},
	{4, 0x03, 0x03, "even parity"},
	{4, 0xc0, 0x40, "x16"},
	{4, 0xc0, 0x80, "x32"},
	{4, 0xc0, 0xc0, "x64"},

	{5, 0x02, 0x02, "RTS"},
	{5, 0x08, 0x08, "tx enable"},
	{5, 0x10, 0x10, "break"},
	{5, 0x80, 0x80, "DTR"},

	{9, 0xc0, 0x40, "reset B"},
	{9, 0xc0, 0x80, "reset A"},
	{9, 0xc0, 0xc0, "hardware reset"},
	{9, 0x08, 0x08, "MIE"},
	{9, 0x10, 0x10, "status high"},
	{9, 0x01, 0x01, "VIS"},

	{14, 0x01, 0x01, "BRG enable"},
	{14, 0x02, 0x02, "BRG PCLK"},
	{14, 0x10, 0x10, "local loopback"},
}

// disasm describes the write of v to WR reg, or returns "" if no field of
// interest is set.
func disasm(reg, v uint8) string {
	var l []string
	for _, d := range disasmtable {
		if d.reg == reg && v&d.mask == d.val {
			l = append(l, d.msg)
		}
	}
	return strings.Join(l, ", ")
}
