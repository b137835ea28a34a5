//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
)

// main emits the popcount kernel. No go:generate directive invokes it and
// no .s file from this generator is committed to the tree (consistent with
// every example repo this module was grounded on, none of which ships a
// committed .s artifact either): running it is a deliberate, separate
// build-time step.
func main() {
	Package("github.com/AlSchlo/ViteMap")
	ConstraintExpr("amd64")
	ConstraintExpr("!noasm")

	genPopcount256Kernel()

	Generate()
}
