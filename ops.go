// ops.go - instruction handlers for the base (non-group, non-Jcc) opcodes.
//
// Grounded on cpu_x86_ops.go's opMOV_*/opADD_*/opPUSH_*/opPOP_*/opCALL_rel/
// opRET/opLEAVE family, narrowed to the 32-bit-only operand widths and the
// exact flag-update behavior spec.md §4.5 assigns each opcode (most of
// these update no flags at all, diverging from the teacher's real-x86
// accurate versions, which is spec.md's Open Question decision, not an
// oversight).

package main

import "fmt"

// traceInstruction prints the per-step trace line spec.md §6 mandates,
// matching the original source's "EIP = {:0X}, Code = {:02X}" format.
func traceInstruction(eip uint32, code byte) {
	fmt.Printf("EIP = %X, Code = %02X\n", eip, code)
}

// --- MOV --------------------------------------------------------------

// 0x89 MOV r/m32, r32
func opMOVEvGv(c *CPU) {
	c.eip++
	m := c.parseModRM()
	c.setRM32(m, c.getR32(m))
}

// 0x8B MOV r32, r/m32
func opMOVGvEv(c *CPU) {
	c.eip++
	m := c.parseModRM()
	c.setR32(m, c.getRM32(m))
}

// 0xC7 MOV r/m32, imm32. The ModR/M byte (and its displacement, if any)
// must be consumed before the immediate is read: the displacement bytes
// precede the immediate in the encoding.
func opMOVEvIv(c *CPU) {
	c.eip++
	m := c.parseModRM()
	imm := c.code32(0)
	c.eip += 4
	c.setRM32(m, imm)
}

// 0xB8-0xBF MOV r32, imm32
func opMOVRegImm32(c *CPU, reg byte) {
	imm := c.code32(1)
	c.SetReg32(reg, imm)
	c.eip += 5
}

// --- ADD / CMP ----------------------------------------------------------

// 0x01 ADD r/m32, r32. No flag update, per spec.md §4.5.
func opADDEvGv(c *CPU) {
	c.eip++
	m := c.parseModRM()
	c.setRM32(m, c.getRM32(m)+c.getR32(m))
}

// 0x3B CMP r32, r/m32. Updates flags via updateEFlagsSub; no write-back.
func opCMPGvEv(c *CPU) {
	c.eip++
	m := c.parseModRM()
	v1 := c.getR32(m)
	v2 := c.getRM32(m)
	c.updateEFlagsSub(v1, v2, uint64(v1)-uint64(v2))
}

// --- PUSH / POP ---------------------------------------------------------

// 0x50-0x57 PUSH r32
func opPUSHReg(c *CPU, reg byte) {
	c.Push32(c.GetReg32(reg))
	c.eip++
}

// 0x58-0x5F POP r32
func opPOPReg(c *CPU, reg byte) {
	c.SetReg32(reg, c.Pop32())
	c.eip++
}

// 0x68 PUSH imm32
func opPUSHImm32(c *CPU) {
	imm := c.code32(1)
	c.Push32(imm)
	c.eip += 5
}

// 0x6A PUSH imm8, zero-extended. Real x86 sign-extends this operand; this
// core deliberately does not, matching spec.md §4.5/§9's Open Question
// decision to preserve the original source's behavior rather than correct
// it.
func opPUSHImm8(c *CPU) {
	imm := c.code8(1)
	c.Push32(uint32(imm))
	c.eip += 2
}

// --- Control flow ---------------------------------------------------------

// 0xC3 RET
func opRET(c *CPU) {
	c.eip = c.Pop32()
}

// 0xC9 LEAVE
func opLEAVE(c *CPU) {
	ebp := c.GetReg32(RegEBP)
	c.SetReg32(RegESP, ebp)
	c.SetReg32(RegEBP, c.Pop32())
	c.eip++
}

// 0xE8 CALL rel32. Pushes the address of the instruction following this
// one (EIP+5) as the return address.
func opCALLRel32(c *CPU) {
	rel := c.signCode32(1)
	c.Push32(c.eip + 5)
	c.eip = uint32(int32(c.eip) + 5 + rel)
}

// 0xE9 JMP rel32 (near)
func opJMPRel32(c *CPU) {
	rel := c.signCode32(1)
	c.eip = uint32(int32(c.eip) + 5 + rel)
}

// 0xEB JMP rel8 (short)
func opJMPRel8(c *CPU) {
	rel := c.signCode8(1)
	c.eip = uint32(int32(c.eip) + 2 + int32(rel))
}
