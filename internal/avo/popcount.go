//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates a hardware-POPCNT kernel over a 32-byte chunk: four
// 64-bit lanes, each reduced with a single POPCNTQ, summed into one
// result. It is the direct asm counterpart of popcountChunkWide in
// bits.go, which the Go compiler already lowers to the same instruction
// per lane on amd64 — this generator exists so a future caller that wants
// to skip the per-lane Go loop (e.g. to fold the four POPCNTQs and the
// additions into one straight-line block without the loop overhead) has a
// ready-made kernel to slot in alongside the equivalent scalar Go path.
func genPopcount256Kernel() {
	TEXT("popcount256Asm", NOSPLIT, "func(chunk *byte) uint64")
	Doc("popcount256Asm returns the number of 1-bits in a 32-byte chunk.")

	chunkParam := Load(Param("chunk"), GP64())
	chunkPtr := chunkParam.(reg.GPVirtual)

	total := GP64()
	XORQ(total, total)

	lane := GP64()
	count := GP64()
	for i := 0; i < 4; i++ {
		MOVQ(op.Mem{Base: chunkPtr, Disp: i * 8}, lane)
		POPCNTQ(lane, count)
		ADDQ(count, total)
	}

	Store(total, ReturnIndex(0))
	RET()
}
