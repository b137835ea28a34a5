package vitemap

import (
	"encoding/binary"
	"math/bits"
	"sync"
)

var bo = binary.LittleEndian

// popcountChunk counts the 1-bits in a 32-byte chunk. The variable is
// installed by init() in bits_amd64.go/bits_generic.go based on what the
// running CPU (or build) can support; both candidate implementations must
// produce byte-identical results (scalar-fallback conformance).
var popcountChunk = popcountChunkWide

// popcountChunkWide sums math/bits.OnesCount64 over four 64-bit lanes. On
// amd64 this lowers to the hardware POPCNT instruction through the
// compiler, which is "the widest available vectored popcount instruction"
// a pure-Go call site can reach without hand-written assembly.
func popcountChunkWide(chunk *[ChunkBytes]byte) int {
	var n int
	for lane := 0; lane < 4; lane++ {
		n += bits.OnesCount64(bo.Uint64(chunk[lane*8 : lane*8+8]))
	}
	return n
}

// bytePopcountLUT is an 8-bit population-count table, the portable
// building block for popcountChunkTable.
var bytePopcountLUT = func() (t [256]uint8) {
	for v := range 256 {
		t[v] = uint8(bits.OnesCount8(uint8(v)))
	}
	return
}()

// popcountChunkTable is the scalar fallback: byte-at-a-time lookup,
// requiring no hardware popcount instruction at all. It must produce the
// same result as popcountChunkWide for every input.
func popcountChunkTable(chunk *[ChunkBytes]byte) int {
	var n int
	for _, b := range chunk {
		n += int(bytePopcountLUT[b])
	}
	return n
}

// invertChunk writes the bitwise complement of src into dst. dst and src
// may be the same chunk.
func invertChunk(dst, src *[ChunkBytes]byte) {
	for lane := 0; lane < 4; lane++ {
		v := bo.Uint64(src[lane*8:lane*8+8]) ^ ^uint64(0)
		bo.PutUint64(dst[lane*8:lane*8+8], v)
	}
}

// compactPositions writes, in ascending order, the byte positions (0..255)
// at which chunk has a 1-bit, and returns the count written.
//
// The chunk is split into four 64-bit lanes;
// each lane's set-bit positions are produced by a wide (32-byte) store at
// the current output cursor, after which the cursor advances by only the
// lane's popcount. Because this primitive is only ever invoked on a chunk
// (or its inverse) whose total popcount is < 32 — the precondition the
// classifier enforces before choosing sparse/dense encoding — no single
// lane can contribute 32 or more valid bytes, so a 32-byte wide store
// always has room for every valid byte plus any trailing garbage from a
// partially-filled lane. The garbage is overwritten by the next lane's
// store; the very last store of the very last chunk relies on the
// trailing 32-byte slack the buffer manager reserves (outputCapacity).
func compactPositions(dst []byte, chunk *[ChunkBytes]byte) int {
	cursor := 0
	for lane := 0; lane < 4; lane++ {
		word := bo.Uint64(chunk[lane*8 : lane*8+8])
		var store [ChunkBytes]byte
		n := 0
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			store[n] = byte(lane*64 + tz)
			n++
			word &= word - 1
		}
		copy(dst[cursor:cursor+ChunkBytes], store[:])
		cursor += n
	}
	return cursor
}

// bitLUT[v] is a 256-bit value with only bit v set, used by
// scatterPositions to reconstruct a chunk from a list of positions via
// wide OR-accumulation. 256 entries * 32 bytes = 8 KiB.
var bitLUT [256][ChunkBytes]byte

var initBitLUT = sync.OnceFunc(func() {
	for v := range 256 {
		bitLUT[v][v/8] = 1 << (v % 8)
	}
})

// scatterPositions reconstructs a 32-byte chunk with exactly the bits at
// the given positions set, all others clear. Positions need not be sorted
// and may repeat (the OR-accumulation is idempotent either way), though a
// conforming encoder only ever emits ascending, distinct positions.
func scatterPositions(dst *[ChunkBytes]byte, positions []byte) {
	initBitLUT()
	clear(dst[:])
	for _, p := range positions {
		entry := &bitLUT[p]
		for lane := 0; lane < 4; lane++ {
			v := bo.Uint64(dst[lane*8:lane*8+8]) | bo.Uint64(entry[lane*8:lane*8+8])
			bo.PutUint64(dst[lane*8:lane*8+8], v)
		}
	}
}
