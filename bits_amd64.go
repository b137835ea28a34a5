//go:build amd64 && !noasm

package vitemap

import "golang.org/x/sys/cpu"

// init probes the running CPU once and installs whichever popcount
// implementation it can actually execute fastest. Both candidates are
// pure Go (see bits.go); the feature probe only decides which one runs,
// it never changes the result.
func init() {
	if cpu.X86.HasPOPCNT {
		popcountChunk = popcountChunkWide
		return
	}
	popcountChunk = popcountChunkTable
}
