// main.go - CLI entry point.
//
// Grounded on original_source/src/main.rs's fn main(): open the image,
// build the emulator at the boot-sector entry point, run it, dump
// registers. Argument parsing itself has no precedent in either the
// teacher (main.go's commented-out os.Args check) or the original source
// (a bare len(args)!=2 check), so this uses the standard library's flag
// package per SPEC_FULL.md's Configuration section - the smallest amount
// of parsing machinery that can add the -q flag spec.md §6 names.

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	quiet := flag.Bool("q", false, "suppress per-instruction tracing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: px86emu [-q] <image>")
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0), *quiet))
}

// run loads and executes the given image, returning the process exit
// code. A cpuFault panicked anywhere in the CPU is the only recovery
// point in the whole program, per spec.md §7's fail-fast error model.
func run(imagePath string, quiet bool) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*cpuFault)
			if !ok {
				panic(r)
			}
			fmt.Fprintln(os.Stderr, fault.Error())
			code = fault.exitCode()
		}
	}()

	cpu := NewCPU(DefaultLoadAddr, DefaultLoadAddr)
	cpu.loadImage(imagePath)

	co := newConsole()
	defer co.Close()
	cpu.SetConsole(co)

	cpu.Run(!quiet)

	fmt.Println("end of program.")
	dumpRegisters(cpu)
	return 0
}

// dumpRegisters prints the final register file, matching the original
// source's dump_registers format.
func dumpRegisters(c *CPU) {
	for i := 0; i < numRegisters; i++ {
		fmt.Printf("%s = %08x\n", regNames[i], c.GetReg32(byte(i)))
	}
	fmt.Printf("EIP = %08x\n", c.EIP())
}
