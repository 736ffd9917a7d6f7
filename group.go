// group.go - opcode-extension groups, where ModR/M.reg selects a
// sub-operation rather than a register.
//
// Grounded on cpu_x86_grp.go's opGrp1_Ev_Ib (8-way switch on
// c.getModRMReg()) and opGrp5_Ev, narrowed to the /n values spec.md §4.5
// names; any other /n is a faultSubOpcode per spec.md §4.6, mirroring the
// original source's code_83/code_ff match arms that panic on unhandled
// opcodes.

package main

// 0x83 group: ADD/SUB/CMP r/m32, imm8 (sign-extended), selected by
// ModR/M.reg.
//   /0 ADD - no flag update
//   /5 SUB - updates flags via updateEFlagsSub, writes back
//   /7 CMP - updates flags via updateEFlagsSub, no write-back
func opGroup83(c *CPU) {
	c.eip++
	m := c.parseModRM()
	imm := uint32(int32(c.signCode8(0)))
	c.eip++

	switch m.reg {
	case 0: // ADD
		c.setRM32(m, c.getRM32(m)+imm)
	case 5: // SUB
		v1 := c.getRM32(m)
		result := uint64(v1) - uint64(imm)
		c.updateEFlagsSub(v1, imm, result)
		c.setRM32(m, uint32(result))
	case 7: // CMP
		v1 := c.getRM32(m)
		c.updateEFlagsSub(v1, imm, uint64(v1)-uint64(imm))
	default:
		fatalf(faultSubOpcode, "not implemented: 0x83 /%d", m.reg)
	}
}

// 0xFF group: INC r/m32, selected by ModR/M.reg.
//   /0 INC - no flag update, per spec.md §4.5 (real x86 updates all
//            arithmetic flags except CF; this core updates none).
func opGroupFF(c *CPU) {
	c.eip++
	m := c.parseModRM()

	switch m.reg {
	case 0: // INC
		c.setRM32(m, c.getRM32(m)+1)
	default:
		fatalf(faultSubOpcode, "not implemented: 0xFF /%d", m.reg)
	}
}
