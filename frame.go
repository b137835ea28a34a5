package vitemap

// writeFramePrefix writes the 4-byte little-endian original size into the
// start of dst, which must have at least frameHeaderBytes of room.
func writeFramePrefix(dst []byte, originalSize int) {
	bo.PutUint32(dst[:frameHeaderBytes], uint32(originalSize))
}

// readFramePrefix parses the 4-byte little-endian original size from the
// start of a compressed frame.
func readFramePrefix(frame []byte) (originalSize int, err error) {
	if len(frame) < frameHeaderBytes {
		return 0, corruptStream(-1, 0, "frame too short for size prefix: need %d bytes, have %d", frameHeaderBytes, len(frame))
	}
	return int(bo.Uint32(frame[:frameHeaderBytes])), nil
}

// PeekDecodedSize reads a compressed frame's size prefix and returns the
// original (unpadded) size and the minimum capacity a Decompress
// destination buffer must have: ceil(dataSize/ChunkBytes) * ChunkBytes.
// It does not otherwise validate or decode the frame, and never mutates
// compressed. Calling it repeatedly on the same buffer returns the same
// pair every time.
func PeekDecodedSize(compressed []byte) (dataSize, bufferSize int, err error) {
	dataSize, err = readFramePrefix(compressed)
	if err != nil {
		return 0, 0, err
	}
	return dataSize, paddedSize(dataSize), nil
}
