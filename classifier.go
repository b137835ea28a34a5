package vitemap

// encodeChunk classifies a single 32-byte chunk by population density and
// writes its header byte followed by its payload into dst, returning the
// number of bytes written. dst must have at least
// maxChunkRecordBytes+ChunkBytes bytes of room past the cursor (the
// caller, Context.Compress, guarantees this
// by always passing a suffix of the context's output buffer, which carries
// the buffer-wide trailing slack described in const.go/outputCapacity).
//
// scratch is a caller-owned 32-byte buffer used to hold the chunk's
// complement when the dense encoding is selected; it must
// not alias chunk.
func encodeChunk(dst []byte, chunk *[ChunkBytes]byte, scratch *[ChunkBytes]byte) int {
	c := popcountChunk(chunk)

	switch {
	case c < sparseDenseThreshold:
		dst[0] = chunkHeader(catSparse, c)
		n := compactPositions(dst[1:], chunk)
		return 1 + n

	case ChunkBits-c < sparseDenseThreshold:
		length := ChunkBits - c
		dst[0] = chunkHeader(catDense, length)
		invertChunk(scratch, chunk)
		n := compactPositions(dst[1:], scratch)
		return 1 + n

	default:
		dst[0] = chunkHeader(catRaw, ChunkBytes)
		copy(dst[1:1+ChunkBytes], chunk[:])
		return 1 + ChunkBytes
	}
}
