//go:build !amd64 || noasm

package vitemap

// init installs the portable scalar fallback on platforms (or builds) where
// we cannot assume a hardware popcount instruction exists. It must produce
// output byte-identical to popcountChunkWide.
func init() {
	popcountChunk = popcountChunkTable
}
