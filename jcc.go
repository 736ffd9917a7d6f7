// jcc.go - the conditional short-jump subset spec.md §4.5 names.
//
// Grounded on cpu_x86_ops.go's jccRel8(cond bool) generic helper plus its
// one-line opJxx_rel8 wrappers, but registering only the ten opcodes
// spec.md lists (0x70-0x75, 0x78, 0x79, 0x7C, 0x7E) rather than the full
// 0x70-0x7F range the teacher implements.

package main

// jccRel8 advances EIP past the 2-byte instruction, taking the branch
// (relative to the instruction after this one) when cond is true.
func jccRel8(c *CPU, cond bool) {
	rel := c.signCode8(1)
	if cond {
		c.eip = uint32(int32(c.eip) + 2 + int32(rel))
		return
	}
	c.eip += 2
}

func registerJccOps() {
	ops[0x70] = func(c *CPU) { jccRel8(c, c.OF()) }                  // JO
	ops[0x71] = func(c *CPU) { jccRel8(c, !c.OF()) }                 // JNO
	ops[0x72] = func(c *CPU) { jccRel8(c, c.CF()) }                  // JC/JB
	ops[0x73] = func(c *CPU) { jccRel8(c, !c.CF()) }                 // JNC/JAE
	ops[0x74] = func(c *CPU) { jccRel8(c, c.ZF()) }                  // JZ/JE
	ops[0x75] = func(c *CPU) { jccRel8(c, !c.ZF()) }                 // JNZ/JNE
	ops[0x78] = func(c *CPU) { jccRel8(c, c.SF()) }                  // JS
	ops[0x79] = func(c *CPU) { jccRel8(c, !c.SF()) }                 // JNS
	ops[0x7C] = func(c *CPU) { jccRel8(c, c.SF() != c.OF()) }        // JL
	ops[0x7E] = func(c *CPU) { jccRel8(c, c.ZF() || c.SF() != c.OF()) } // JLE
}
