// cpu.go - px86 CPU state: register file, flags, linear memory, stack.
//
// Modeled on IntuitionEngine's cpu_x86.go, trimmed to the 32-bit subset
// this core implements and restructured around a flat register array per
// the canonical x86 ordering (EAX, ECX, EDX, EBX, ESP, EBP, ESI, EDI).

package main

// Register indices, canonical x86 ordering.
const (
	RegEAX = iota
	RegECX
	RegEDX
	RegEBX
	RegESP
	RegEBP
	RegESI
	RegEDI
	numRegisters
)

var regNames = [numRegisters]string{"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI"}

// Flag bit positions. Only these four are ever read or written; the rest
// of the word is preserved but meaningless to this core.
const (
	flagCF = 1 << 0
	flagZF = 1 << 6
	flagSF = 1 << 7
	flagOF = 1 << 11
)

// MemorySize is the size of the emulated linear address space.
const MemorySize = 1024 * 1024

// DefaultLoadAddr is the classic boot-sector load offset the image is
// read into and where execution begins.
const DefaultLoadAddr = 0x7C00

// CPU holds all mutable emulator state: registers, flags, EIP and memory.
// A single instance owns everything; there is no concurrent access.
type CPU struct {
	regs   [numRegisters]uint32
	flags  uint32
	eip    uint32
	memory [MemorySize]byte
	io     *console
}

// NewCPU returns a CPU with ESP set to the given entry stack pointer and
// EIP set to the given entry point. All other registers and the flags
// word start at zero.
func NewCPU(entry, stackPointer uint32) *CPU {
	c := &CPU{}
	c.regs[RegESP] = stackPointer
	c.eip = entry
	return c
}

// EIP returns the current instruction pointer.
func (c *CPU) EIP() uint32 { return c.eip }

// SetEIP sets the instruction pointer.
func (c *CPU) SetEIP(v uint32) { c.eip = v }

// GetReg32 returns general register idx (masked to the valid range).
func (c *CPU) GetReg32(idx byte) uint32 { return c.regs[idx&7] }

// SetReg32 sets general register idx.
func (c *CPU) SetReg32(idx byte, v uint32) { c.regs[idx&7] = v }

// AL returns the low byte of EAX.
func (c *CPU) AL() byte { return byte(c.regs[RegEAX]) }

// SetAL sets the low byte of EAX, leaving the upper 24 bits untouched.
func (c *CPU) SetAL(v byte) { c.regs[RegEAX] = c.regs[RegEAX]&0xFFFFFF00 | uint32(v) }

// SetConsole attaches the port 0x03F8 console backing IN/OUT.
func (c *CPU) SetConsole(co *console) { c.io = co }

// -----------------------------------------------------------------------
// Raw memory access
// -----------------------------------------------------------------------

// ReadU8 reads one byte at addr.
func (c *CPU) ReadU8(addr uint32) byte { return c.memory[addr] }

// WriteU8 writes one byte at addr.
func (c *CPU) WriteU8(addr uint32, v byte) { c.memory[addr] = v }

// ReadU32 reads a little-endian 32-bit word at addr.
func (c *CPU) ReadU32(addr uint32) uint32 {
	return uint32(c.memory[addr]) |
		uint32(c.memory[addr+1])<<8 |
		uint32(c.memory[addr+2])<<16 |
		uint32(c.memory[addr+3])<<24
}

// WriteU32 writes v little-endian at addr.
func (c *CPU) WriteU32(addr uint32, v uint32) {
	c.memory[addr] = byte(v)
	c.memory[addr+1] = byte(v >> 8)
	c.memory[addr+2] = byte(v >> 16)
	c.memory[addr+3] = byte(v >> 24)
}

// -----------------------------------------------------------------------
// Stack
// -----------------------------------------------------------------------

// Push32 decrements ESP by 4 and stores v at the new ESP.
func (c *CPU) Push32(v uint32) {
	c.regs[RegESP] -= 4
	c.WriteU32(c.regs[RegESP], v)
}

// Pop32 reads the word at ESP, advances ESP by 4, and returns it.
func (c *CPU) Pop32() uint32 {
	v := c.ReadU32(c.regs[RegESP])
	c.regs[RegESP] += 4
	return v
}

// -----------------------------------------------------------------------
// Flags
// -----------------------------------------------------------------------

func (c *CPU) getFlag(mask uint32) bool { return c.flags&mask != 0 }

func (c *CPU) setFlag(mask uint32, set bool) {
	if set {
		c.flags |= mask
	} else {
		c.flags &^= mask
	}
}

// CF returns the carry flag.
func (c *CPU) CF() bool { return c.getFlag(flagCF) }

// ZF returns the zero flag.
func (c *CPU) ZF() bool { return c.getFlag(flagZF) }

// SF returns the sign flag.
func (c *CPU) SF() bool { return c.getFlag(flagSF) }

// OF returns the overflow flag.
func (c *CPU) OF() bool { return c.getFlag(flagOF) }

// Flags returns the raw flags word.
func (c *CPU) Flags() uint32 { return c.flags }

// updateEFlagsSub is the single routine allowed to mutate CF/ZF/SF/OF. It
// implements the subtraction flag contract from spec.md §4.1: result64
// must already be (u64)v1 - (u64)v2, computed by the caller so that bit 32
// carries the borrow.
func (c *CPU) updateEFlagsSub(v1, v2 uint32, result64 uint64) {
	r32 := uint32(result64)
	s1 := v1>>31 != 0
	s2 := v2>>31 != 0
	sr := r32>>31 != 0

	c.setFlag(flagCF, result64>>32 != 0)
	c.setFlag(flagZF, r32 == 0)
	c.setFlag(flagSF, sr)
	c.setFlag(flagOF, s1 != s2 && s1 != sr)
}
