// fetch.go - byte/dword fetch helpers relative to EIP.
//
// Grounded on cpu_x86.go's fetch8/fetch16/fetch32, but these do not
// advance EIP: spec.md's decoder advances EIP explicitly per instruction
// length rather than on every fetch, so code8/code32 stay pure reads.

package main

// code8 returns the unsigned byte at EIP+i.
func (c *CPU) code8(i uint32) byte {
	return c.ReadU8(c.eip + i)
}

// signCode8 reinterprets the byte at EIP+i as signed.
func (c *CPU) signCode8(i uint32) int8 {
	return int8(c.code8(i))
}

// code32 composes the little-endian dword at EIP+i.
func (c *CPU) code32(i uint32) uint32 {
	return c.ReadU32(c.eip + i)
}

// signCode32 reinterprets the dword at EIP+i as signed.
func (c *CPU) signCode32(i uint32) int32 {
	return int32(c.code32(i))
}
