// io.go - the optional emulated serial console at port 0x03F8.
//
// Grounded on original_source/src/emulator/io.rs (io_in8/io_out8: port
// 0x3f8 is the only observable address, in blocks on a line read and
// returns its first byte, out writes one character) and on
// terminal_host.go's use of golang.org/x/term for raw-mode single-
// keystroke terminal input. SPEC_FULL.md's Console Port module keeps the
// spec-literal blocking-line-read contract as the exact behavior when
// stdin is not a terminal (pipes, redirected files, the test harness) and
// upgrades to raw single-keystroke reads when stdin is an interactive
// TTY, since a boot-sector REPL reading one key at a time is the whole
// point of owning a real terminal.

package main

import (
	"bufio"
	"os"

	"golang.org/x/term"
)

const consolePort = 0x03F8

// console owns the optional raw-mode terminal state for port 0x03F8. Its
// zero value is valid and behaves as the non-interactive fallback.
type console struct {
	fd       int
	isTTY    bool
	oldState *term.State
	reader   *bufio.Reader
}

// newConsole inspects stdin once at startup and puts it in raw mode if it
// is an interactive terminal.
func newConsole() *console {
	fd := int(os.Stdin.Fd())
	co := &console{fd: fd, reader: bufio.NewReader(os.Stdin)}
	if term.IsTerminal(fd) {
		if old, err := term.MakeRaw(fd); err == nil {
			co.isTTY = true
			co.oldState = old
		}
	}
	return co
}

// Close restores the terminal to its original mode, if it was changed.
func (co *console) Close() {
	if co.isTTY && co.oldState != nil {
		_ = term.Restore(co.fd, co.oldState)
	}
}

// In reads one byte from the given port. Only consolePort is observable;
// every other port reads as zero, per spec.md §6.
func (co *console) In(port uint16) byte {
	if port != consolePort {
		return 0
	}
	if co.isTTY {
		b, err := co.reader.ReadByte()
		if err != nil {
			return 0
		}
		return b
	}
	line, err := co.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		return 0
	}
	return line[0]
}

// Out writes one character to the given port. Only consolePort has any
// effect.
func (co *console) Out(port uint16, v byte) {
	if port != consolePort {
		return
	}
	os.Stdout.Write([]byte{v})
}

// 0xE4 IN AL, imm8
func opINAL(c *CPU) {
	port := uint16(c.code8(1))
	if c.io != nil {
		c.SetAL(c.io.In(port))
	}
	c.eip += 2
}

// 0xE6 OUT imm8, AL
func opOUTAL(c *CPU) {
	port := uint16(c.code8(1))
	if c.io != nil {
		c.io.Out(port, c.AL())
	}
	c.eip += 2
}
