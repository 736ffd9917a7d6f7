// dispatch.go - fetch/decode/dispatch loop and the base opcode table.
//
// Grounded on cpu_x86.go's Step()/initBaseOps() (array-of-func-pointers
// dispatch, not a switch, matching that file's "O(1) lookup instead of
// switch overhead" convention) but limited to the opcode set spec.md §4.4
// names plus the 0xE4/0xE6 Console Port pair. Anything else is a
// faultOpcode per spec.md §4.6.

package main

// opHandler executes one instruction. It is responsible for leaving EIP
// advanced past the full encoded instruction, per spec.md §4.4's
// "Operand-length handling" table.
type opHandler func(c *CPU)

// ops is the base opcode dispatch table, built once in init().
var ops [256]opHandler

func init() {
	// MOV r/m32, r32
	ops[0x89] = opMOVEvGv
	// MOV r32, r/m32
	ops[0x8B] = opMOVGvEv
	// ADD r/m32, r32
	ops[0x01] = opADDEvGv
	// CMP r32, r/m32
	ops[0x3B] = opCMPGvEv
	// MOV r/m32, imm32
	ops[0xC7] = opMOVEvIv
	// RET
	ops[0xC3] = opRET
	// LEAVE
	ops[0xC9] = opLEAVE
	// CALL rel32
	ops[0xE8] = opCALLRel32
	// JMP rel32 (near)
	ops[0xE9] = opJMPRel32
	// JMP rel8 (short)
	ops[0xEB] = opJMPRel8
	// 0x83 group: ADD/SUB/CMP r/m32, imm8
	ops[0x83] = opGroup83
	// 0xFF group: INC r/m32
	ops[0xFF] = opGroupFF
	// PUSH imm32 / imm8
	ops[0x68] = opPUSHImm32
	ops[0x6A] = opPUSHImm8
	// IN AL, imm8 / OUT imm8, AL (Console Port extension)
	ops[0xE4] = opINAL
	ops[0xE6] = opOUTAL

	for i := byte(0); i < 8; i++ {
		idx := i
		ops[0x50+i] = func(c *CPU) { opPUSHReg(c, idx) }
		ops[0x58+i] = func(c *CPU) { opPOPReg(c, idx) }
		ops[0xB8+i] = func(c *CPU) { opMOVRegImm32(c, idx) }
	}

	registerJccOps()
}

// Step executes exactly one instruction at the current EIP. It does not
// check EIP against MemorySize; Run does that before each call. A
// program's own return-to-zero termination is signaled by EIP becoming 0
// after the handler runs; the caller (Run) checks for that too.
func (c *CPU) Step(trace bool) {
	opcode := c.code8(0)
	if trace {
		traceInstruction(c.eip, opcode)
	}
	handler := ops[opcode]
	if handler == nil {
		fatalf(faultOpcode, "not implemented: opcode 0x%02X at EIP=0x%08X", opcode, c.eip)
	}
	handler(c)
}

// Run drives the dispatch loop until EIP leaves the addressable range or
// the program returns from its entry frame (EIP == 0), per spec.md §4.4
// and the Termination-by-EIP==0 design note in spec.md §9.
func (c *CPU) Run(trace bool) {
	for c.eip < MemorySize {
		c.Step(trace)
		if c.eip == 0 {
			break
		}
	}
}
