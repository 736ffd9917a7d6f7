// dispatch_test.go - end-to-end instruction-level scenarios, matching the
// concrete cases spec.md §8 enumerates.

package main

import "testing"

func loadAt(c *CPU, addr uint32, bytes ...byte) {
	for i, b := range bytes {
		c.WriteU8(addr+uint32(i), b)
	}
}

func TestMOVRegImm32AdvancesEIPByFive(t *testing.T) {
	c := NewCPU(0x7C00, 0x7C00)
	loadAt(c, 0x7C00, 0xB8, 0x2A, 0x00, 0x00, 0x00) // MOV EAX, 0x2A
	c.Step(false)
	if got := c.GetReg32(RegEAX); got != 0x2A {
		t.Errorf("EAX = 0x%X, want 0x2A", got)
	}
	if got := c.EIP(); got != 0x7C05 {
		t.Errorf("EIP = 0x%X, want 0x7C05", got)
	}
}

func TestShortJumpForward(t *testing.T) {
	c := NewCPU(0x7C00, 0x7C00)
	loadAt(c, 0x7C00, 0xEB, 0x05) // JMP short +5
	c.Step(false)
	if got := c.EIP(); got != 0x7C07 {
		t.Errorf("EIP = 0x%X, want 0x7C07", got)
	}
}

func TestShortJumpToSelf(t *testing.T) {
	c := NewCPU(0x7C00, 0x7C00)
	// MOV EAX, 0x2A ; JMP short -2 (jump to self at 0x7C05)
	loadAt(c, 0x7C00, 0xB8, 0x2A, 0x00, 0x00, 0x00, 0xEB, 0xFE)
	c.Step(false)
	if got := c.GetReg32(RegEAX); got != 0x2A {
		t.Errorf("EAX = 0x%X, want 0x2A", got)
	}
	if got := c.EIP(); got != 0x7C05 {
		t.Errorf("EIP = 0x%X, want 0x7C05", got)
	}
	c.Step(false) // JMP short -2: 0x7C05 + 2 - 2
	if got := c.EIP(); got != 0x7C05 {
		t.Errorf("EIP after jump to self = 0x%X, want 0x7C05", got)
	}
}

func TestCMPSetsFlagsNoWriteback(t *testing.T) {
	c := NewCPU(0, 0)
	c.SetReg32(RegEAX, 5)
	c.SetReg32(RegEBX, 5)
	// CMP r32, r/m32: reg field holds EAX, rm field holds EBX.
	loadAt(c, 0, 0x3B, 0xC3) // mod=11 reg=000(EAX) rm=011(EBX)
	c.Step(false)
	if !c.ZF() {
		t.Error("ZF should be set after comparing equal values")
	}
	if got := c.GetReg32(RegEAX); got != 5 {
		t.Errorf("EAX = %d, want unchanged 5 (CMP must not write back)", got)
	}
}

func TestGroup83SubUnderflowSetsCarry(t *testing.T) {
	c := NewCPU(0, 0)
	c.SetReg32(RegEAX, 0)
	// 0x83 /5 EAX, imm8: mod=11 reg=101(SUB) rm=000(EAX) -> 0xE8, imm8=1
	loadAt(c, 0, 0x83, 0xE8, 0x01)
	c.Step(false)
	if got := c.GetReg32(RegEAX); got != 0xFFFFFFFF {
		t.Errorf("EAX = 0x%X, want 0xFFFFFFFF", got)
	}
	if !c.CF() {
		t.Error("CF should be set after 0 - 1 underflows")
	}
	if !c.SF() {
		t.Error("SF should be set (result is negative)")
	}
}

func TestCallRetRoundTrip(t *testing.T) {
	c := NewCPU(0x7C00, 0x7C00)
	// CALL rel32 = +5, relative to the address after this 5-byte
	// instruction (0x7C05), so it targets 0x7C0A; at the target, RET
	// immediately.
	loadAt(c, 0x7C00, 0xE8, 0x05, 0x00, 0x00, 0x00)
	loadAt(c, 0x7C0A, 0xC3)
	c.Step(false) // CALL
	if got := c.EIP(); got != 0x7C0A {
		t.Fatalf("EIP after CALL = 0x%X, want 0x7C0A", got)
	}
	c.Step(false) // RET
	if got := c.EIP(); got != 0x7C05 {
		t.Errorf("EIP after RET = 0x%X, want 0x7C05 (return address)", got)
	}
}

func TestConditionalJumpBothWays(t *testing.T) {
	// JNZ taken.
	c := NewCPU(0, 0)
	c.setFlag(flagZF, false)
	loadAt(c, 0, 0x75, 0x10) // JNZ +16
	c.Step(false)
	if got := c.EIP(); got != 0x12 {
		t.Errorf("taken JNZ: EIP = 0x%X, want 0x12", got)
	}

	// JNZ not taken.
	c2 := NewCPU(0, 0)
	c2.setFlag(flagZF, true)
	loadAt(c2, 0, 0x75, 0x10)
	c2.Step(false)
	if got := c2.EIP(); got != 2 {
		t.Errorf("not-taken JNZ: EIP = 0x%X, want 2", got)
	}
}

func TestPushPopRegRoundTrip(t *testing.T) {
	c := NewCPU(0, 0x1000)
	c.SetReg32(RegECX, 0x99)
	loadAt(c, 0, 0x51)       // PUSH ECX
	c.Step(false)
	loadAt(c, 1, 0x58)       // POP EAX
	c.Step(false)
	if got := c.GetReg32(RegEAX); got != 0x99 {
		t.Errorf("EAX = 0x%X, want 0x99", got)
	}
	if got := c.GetReg32(RegESP); got != 0x1000 {
		t.Errorf("ESP = 0x%X, want 0x1000 (balanced push/pop)", got)
	}
}

func TestPushImm8ZeroExtends(t *testing.T) {
	c := NewCPU(0, 0x1000)
	loadAt(c, 0, 0x6A, 0x80) // PUSH -128 as imm8
	c.Step(false)
	v := c.Pop32()
	if v != 0x80 {
		t.Errorf("pushed value = 0x%X, want 0x80 (zero-extended, not sign-extended)", v)
	}
}

func TestLeaveRestoresFrame(t *testing.T) {
	c := NewCPU(0, 0x2000)
	c.Push32(0x5678)              // caller's saved EBP, pushed by the prologue
	c.SetReg32(RegEBP, c.GetReg32(RegESP)) // EBP now frames this call
	c.SetReg32(RegESP, c.GetReg32(RegESP)-0x10) // simulate locals below EBP
	loadAt(c, 0, 0xC9)            // LEAVE
	c.Step(false)
	if got := c.GetReg32(RegEBP); got != 0x5678 {
		t.Errorf("EBP = 0x%X, want 0x5678", got)
	}
	if got := c.GetReg32(RegESP); got != 0x2000 {
		t.Errorf("ESP = 0x%X, want 0x2000 (frame fully unwound)", got)
	}
}

func TestUnimplementedOpcodeFaults(t *testing.T) {
	c := NewCPU(0, 0)
	loadAt(c, 0, 0xF4) // HLT, not in this core's opcode set
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unimplemented opcode")
		}
		f, ok := r.(*cpuFault)
		if !ok || f.kind != faultOpcode {
			t.Fatalf("expected faultOpcode, got %v", r)
		}
	}()
	c.Step(false)
}

func TestRunStopsAtEIPZero(t *testing.T) {
	c := NewCPU(0, 0x1000)
	// PUSH 0 then RET -> pops 0 into EIP, Run must stop there.
	loadAt(c, 0, 0x6A, 0x00, 0xC3)
	c.Run(false)
	if got := c.EIP(); got != 0 {
		t.Errorf("EIP = 0x%X, want 0 (end of program)", got)
	}
}
