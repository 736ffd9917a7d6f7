// errors.go - fail-fast diagnostics for the decode/dispatch loop.
//
// spec.md §4.6/§7: unknown opcodes and unimplemented sub-cases terminate
// the process immediately with a one-line diagnostic and a non-zero exit
// code. Grounded on cpu_x86.go's pattern of halting the CPU on an
// undefined opcode, generalized into a typed panic so a single recover
// site in main.go can turn it into the right exit code (mirrors the
// original source's eprintln!+process::exit(1), which this core also
// reports at a single choke point rather than scattering os.Exit calls
// through the decoder).

package main

import "fmt"

// faultKind classifies why the emulator is terminating abnormally.
type faultKind int

const (
	faultUsage faultKind = iota
	faultImageOpen
	faultOpcode
	faultAddressingMode
	faultSubOpcode
)

// cpuFault is panicked by the decode/dispatch/ModR/M layers on any
// condition spec.md declares fatal. It is never recovered from inside the
// CPU itself — only main.go catches it, to keep the core's control flow
// free of error-return plumbing for conditions that are, by spec,
// unrecoverable.
type cpuFault struct {
	kind faultKind
	msg  string
}

func (f *cpuFault) Error() string { return f.msg }

// exitCode maps a fault kind to the process exit code main.go returns.
func (f *cpuFault) exitCode() int {
	switch f.kind {
	case faultUsage:
		return 1
	case faultImageOpen:
		return 2
	case faultOpcode, faultAddressingMode, faultSubOpcode:
		return 3
	default:
		return 1
	}
}

// fatalf panics with a cpuFault built from the given kind and message.
func fatalf(kind faultKind, format string, args ...any) {
	panic(&cpuFault{kind: kind, msg: fmt.Sprintf(format, args...)})
}
