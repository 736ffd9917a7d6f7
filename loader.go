// loader.go - reads a raw binary image into the boot-sector load address.
//
// Grounded on original_source/src/main.rs and mod.rs's Emulator::new,
// which open the file, read at most 0x201 bytes via read_exact into
// memory[0x7c00..], and exit(1) with a one-line diagnostic on any I/O
// error. main.rs's own file handling (rather than cpu_x86_runner.go's
// LoadProgramData, which targets the teacher's much larger hardware-bus
// abstraction) is the closer fit here: this core has no bus, just a flat
// memory array.

package main

import "os"

// maxImageSize is the largest image this loader will accept, per spec.md
// §2's 0x201-byte boot-sector limit.
const maxImageSize = 0x201

// loadImage reads the file at path into memory starting at
// DefaultLoadAddr, capped at maxImageSize bytes. Any I/O failure is a
// faultImageOpen per spec.md §7.
func (c *CPU) loadImage(path string) {
	f, err := os.Open(path)
	if err != nil {
		fatalf(faultImageOpen, "cannot open image %q: %v", path, err)
	}
	defer f.Close()

	buf := make([]byte, maxImageSize)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		fatalf(faultImageOpen, "cannot read image %q: %v", path, err)
	}
	copy(c.memory[DefaultLoadAddr:], buf[:n])
}
