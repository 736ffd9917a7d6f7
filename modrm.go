// modrm.go - ModR/M decoding and the r32/r/m32 operand surface.
//
// Grounded on cpu_x86.go's fetchModRM/getModRMMod/getModRMRM/
// calcEffectiveAddress32/readRM32/writeRM32, narrowed to the addressing
// modes spec.md names (32-bit only, no SIB-based scale/index, no 16-bit
// addressing). Per DESIGN NOTES in spec.md §9, the decoded displacement
// is stored as a single sign-extended 32-bit value regardless of width.

package main

// modRM is the transient descriptor produced by parseModRM. mod/reg/rm
// hold the raw 3 fields; reg doubles as a register index or a group
// opcode extension depending on the instruction dispatching it.
type modRM struct {
	mod  byte
	reg  byte
	rm   byte
	disp int32
}

// parseModRM reads the ModR/M byte (and SIB placeholder, and displacement)
// starting at the current EIP and advances EIP past all of it. It must be
// called immediately after the opcode byte has been consumed; a group's
// sub-opcode is not a separate byte but the reg field decoded here.
func (c *CPU) parseModRM() modRM {
	b := c.code8(0)
	m := modRM{
		mod: (b >> 6) & 3,
		reg: (b >> 3) & 7,
		rm:  b & 7,
	}
	c.eip++

	if m.mod != 3 && m.rm == 4 {
		// SIB byte follows; this core never interprets scale/index/base,
		// so addressing modes that would require it are rejected in
		// calcMemoryAddress below. Still consume the byte to keep the
		// instruction stream aligned for anything that reaches this path
		// without requiring a memory address (there is none today, but
		// the fetch must match the encoding regardless).
		c.eip++
	}

	switch {
	case (m.mod == 0 && m.rm == 5) || m.mod == 2:
		m.disp = c.signCode32(0)
		c.eip += 4
	case m.mod == 1:
		m.disp = int32(c.signCode8(0))
		c.eip++
	}

	return m
}

// calcMemoryAddress computes the effective address for a ModR/M operand
// that is not a bare register (mod != 3). Per spec.md §4.3.
func (c *CPU) calcMemoryAddress(m modRM) uint32 {
	switch m.mod {
	case 0:
		switch m.rm {
		case 4:
			fatalf(faultAddressingMode, "not implemented: ModR/M mod=0, rm=4 (SIB)")
		case 5:
			return uint32(m.disp)
		default:
			return c.GetReg32(m.rm)
		}
	case 1:
		if m.rm == 4 {
			fatalf(faultAddressingMode, "not implemented: ModR/M mod=1, rm=4 (SIB)")
		}
		return c.GetReg32(m.rm) + uint32(m.disp)
	case 2:
		if m.rm == 4 {
			fatalf(faultAddressingMode, "not implemented: ModR/M mod=2, rm=4 (SIB)")
		}
		return c.GetReg32(m.rm) + uint32(m.disp)
	default:
		fatalf(faultAddressingMode, "calcMemoryAddress called with mod=3 (register operand)")
	}
	panic("unreachable")
}

// getR32 reads the register selected by ModR/M.reg.
func (c *CPU) getR32(m modRM) uint32 { return c.GetReg32(m.reg) }

// setR32 writes the register selected by ModR/M.reg.
func (c *CPU) setR32(m modRM, v uint32) { c.SetReg32(m.reg, v) }

// getRM32 reads the r/m32 operand: a register if mod==3, else memory.
func (c *CPU) getRM32(m modRM) uint32 {
	if m.mod == 3 {
		return c.GetReg32(m.rm)
	}
	return c.ReadU32(c.calcMemoryAddress(m))
}

// setRM32 writes the r/m32 operand: a register if mod==3, else memory.
func (c *CPU) setRM32(m modRM, v uint32) {
	if m.mod == 3 {
		c.SetReg32(m.rm, v)
		return
	}
	c.WriteU32(c.calcMemoryAddress(m), v)
}
