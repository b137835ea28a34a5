package vitemap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressBytes is a small test helper around the Context API: compress
// data (which must fit in maxSize) and return the compressed frame.
func compressBytes(t *testing.T, data []byte, maxSize int) []byte {
	t.Helper()
	ctx, err := NewContext(maxSize)
	require.NoError(t, err)
	defer ctx.Close()

	copy(ctx.Input(), data)
	n, err := ctx.Compress(len(data))
	require.NoError(t, err)

	out := make([]byte, n)
	copy(out, ctx.Output())
	return out
}

func decompressBytes(t *testing.T, compressed []byte) []byte {
	t.Helper()
	_, bufferSize, err := PeekDecodedSize(compressed)
	require.NoError(t, err)
	out := make([]byte, bufferSize)
	require.NoError(t, Decompress(compressed, out))
	return out
}

func TestRoundTripAllZeros32(t *testing.T) { // S1
	data := make([]byte, 32)
	compressed := compressBytes(t, data, len(data))
	assert.Equal(t, []byte{0x20, 0x00, 0x00, 0x00, 0x00}, compressed)

	decoded := decompressBytes(t, compressed)
	assert.Equal(t, data, decoded)
}

func TestRoundTripAllOnes32(t *testing.T) { // S2
	data := bytes.Repeat([]byte{0xFF}, 32)
	compressed := compressBytes(t, data, len(data))
	assert.Equal(t, []byte{0x20, 0x00, 0x00, 0x00, 0x40}, compressed)

	decoded := decompressBytes(t, compressed)
	assert.Equal(t, data, decoded)
}

func TestRoundTripSingleSetBit(t *testing.T) { // S3
	data := make([]byte, 32)
	data[15] = 0x10 // bit position 15*8+4 = 124
	compressed := compressBytes(t, data, len(data))
	assert.Equal(t, []byte{0x20, 0x00, 0x00, 0x00, 0x01, 0x7C}, compressed)

	decoded := decompressBytes(t, compressed)
	assert.Equal(t, data, decoded)
}

func TestRoundTripRawDensityChunk(t *testing.T) { // S4
	data := bytes.Repeat([]byte{0xAA}, 32)
	compressed := compressBytes(t, data, len(data))

	// Header = category 10 in bits[7:6] (0x80) | length 32 in bits[5:0]
	// (0x20) = 0xA0 (length's low 6 bits hold the literal value 32, which
	// requires bit 5 set). 0x9F would decode to length 31 under the same
	// bit layout and so cannot be what a conforming encoder emits for a
	// 32-byte raw payload.
	want := append([]byte{0x20, 0x00, 0x00, 0x00, 0xA0}, data...)
	assert.Equal(t, want, compressed)
	assert.Len(t, compressed, 37)

	decoded := decompressBytes(t, compressed)
	assert.Equal(t, data, decoded)
}

func TestRoundTripMultiChunk(t *testing.T) { // S5
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i * 7)
	}
	compressed := compressBytes(t, data, len(data))
	assert.Equal(t, []byte{0x64, 0x00, 0x00, 0x00}, compressed[:4])

	decoded := decompressBytes(t, compressed)
	require.Len(t, decoded, 128)
	assert.Equal(t, data, decoded[:100])
	assert.Equal(t, make([]byte, 28), decoded[100:])
}

func TestRoundTripDenseInvertedChunk(t *testing.T) { // S6
	data := bytes.Repeat([]byte{0xFF}, 32)
	data[0] = 0x7F  // clear bit 7
	data[31] = 0xFE // clear bit 0 of byte 31 -> position 248

	compressed := compressBytes(t, data, len(data))
	// header + payload: category 01, length 2, positions {7, 248}
	want := []byte{0x20, 0x00, 0x00, 0x00, 0x42, 0x07, 0xF8}
	assert.Equal(t, want, compressed)

	decoded := decompressBytes(t, compressed)
	assert.Equal(t, data, decoded)
}

func TestPeekDecodedSizeIdempotent(t *testing.T) {
	data := make([]byte, 17)
	compressed := compressBytes(t, data, len(data))

	d1, b1, err1 := PeekDecodedSize(compressed)
	require.NoError(t, err1)
	d2, b2, err2 := PeekDecodedSize(compressed)
	require.NoError(t, err2)

	assert.Equal(t, d1, d2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, 17, d1)
	assert.Equal(t, 32, b1)
}

func TestCategoryCommutativity(t *testing.T) { // property 6
	chunk := bytes.Repeat([]byte{0xFF}, 32)
	for _, pos := range []int{0, 40, 90, 150, 200, 255} {
		chunk[pos/8] &^= 1 << (pos % 8)
	}
	require.Equal(t, 250, popcountChunkTable((*[ChunkBytes]byte)(chunk)))

	sparseCompressed := compressBytes(t, invertBytes(chunk), 32)
	denseCompressed := compressBytes(t, chunk, 32)

	sparseDecoded := decompressBytes(t, sparseCompressed)
	denseDecoded := decompressBytes(t, denseCompressed)

	assert.Equal(t, invertBytes(denseDecoded), sparseDecoded)
}

func invertBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = ^v
	}
	return out
}

func TestCompressInputTooLarge(t *testing.T) {
	ctx, err := NewContext(32)
	require.NoError(t, err)
	defer ctx.Close()

	_, err = ctx.Compress(64)
	require.ErrorIs(t, err, ErrInputTooLarge)

	// context remains usable afterward
	copy(ctx.Input(), bytes.Repeat([]byte{0xFF}, 32))
	n, err := ctx.Compress(32)
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestDecompressOutputTooSmall(t *testing.T) {
	data := make([]byte, 40)
	compressed := compressBytes(t, data, len(data))

	small := make([]byte, 32)
	err := Decompress(compressed, small)
	require.ErrorIs(t, err, ErrOutputTooSmall)
}

func TestDecompressReservedCategoryIsCorrupt(t *testing.T) {
	compressed := []byte{0x20, 0x00, 0x00, 0x00, 0xC0} // category 11, length 0
	out := make([]byte, 32)
	err := Decompress(compressed, out)
	require.ErrorIs(t, err, ErrCorruptStream)

	var csErr *CorruptStreamError
	require.ErrorAs(t, err, &csErr)
	assert.Equal(t, 0, csErr.ChunkIndex)
}

func TestDecompressTruncatedPayloadIsCorrupt(t *testing.T) {
	// header claims 5 sparse positions but only 2 bytes follow
	compressed := []byte{0x20, 0x00, 0x00, 0x00, 0x05, 0x01, 0x02}
	out := make([]byte, 32)
	err := Decompress(compressed, out)
	require.ErrorIs(t, err, ErrCorruptStream)
}

func TestNewContextNegativeSize(t *testing.T) {
	_, err := NewContext(-1)
	require.ErrorIs(t, err, ErrAllocationFailed)
}

func TestCompressNegativeSizePanics(t *testing.T) {
	ctx, err := NewContext(32)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Panics(t, func() {
		_, _ = ctx.Compress(-1)
	})
}

func TestFuzzRoundTripRandomLengths(t *testing.T) {
	rng := newRand(42)
	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(4096)
		data := make([]byte, n)
		rng.Read(data)

		compressed := compressBytes(t, data, n)
		decoded := decompressBytes(t, compressed)

		require.GreaterOrEqual(t, len(decoded), n)
		assert.Equal(t, data, decoded[:n])
		for _, b := range decoded[n:] {
			assert.Zero(t, b)
		}

		// compressed size == sum of header bytes + payload lengths + 4
		expected := 4
		cursor := 4
		for cursor < len(compressed) {
			_, length := decodeChunkHeader(compressed[cursor])
			expected += 1 + length
			cursor += 1 + length
		}
		assert.Equal(t, expected, len(compressed))
	}
}

func TestEveryChunkRecordWithinSizeBound(t *testing.T) { // property 3
	rng := newRand(99)
	data := make([]byte, 32*50)
	rng.Read(data)
	compressed := compressBytes(t, data, len(data))

	cursor := 4
	for cursor < len(compressed) {
		start := cursor
		_, length := decodeChunkHeader(compressed[cursor])
		cursor += 1 + length
		assert.LessOrEqual(t, cursor-start, 33)
	}
}
