package vitemap

// decodeChunk decodes one chunk record from the head of record, writing the
// reconstructed 256-bit chunk into dst and returning the number of bytes
// consumed from record (1 header byte + the payload length the header
// declares). It never reads past what the header declares.
func decodeChunk(dst *[ChunkBytes]byte, record []byte, chunkIndex, offset int) (consumed int, err error) {
	if len(record) < 1 {
		return 0, corruptStream(chunkIndex, offset, "missing header byte")
	}
	category, length := decodeChunkHeader(record[0])

	switch category {
	case catSparse:
		if len(record) < 1+length {
			return 0, corruptStream(chunkIndex, offset, "truncated sparse payload: need %d bytes, have %d", length, len(record)-1)
		}
		scatterPositions(dst, record[1:1+length])
		return 1 + length, nil

	case catDense:
		if len(record) < 1+length {
			return 0, corruptStream(chunkIndex, offset, "truncated dense payload: need %d bytes, have %d", length, len(record)-1)
		}
		scatterPositions(dst, record[1:1+length])
		invertChunk(dst, dst)
		return 1 + length, nil

	case catRaw:
		if length != ChunkBytes {
			return 0, corruptStream(chunkIndex, offset, "raw chunk declares length %d, want %d", length, ChunkBytes)
		}
		if len(record) < 1+ChunkBytes {
			return 0, corruptStream(chunkIndex, offset, "truncated raw payload: need %d bytes, have %d", ChunkBytes, len(record)-1)
		}
		copy(dst[:], record[1:1+ChunkBytes])
		return 1 + ChunkBytes, nil

	default: // catReserved
		return 0, corruptStream(chunkIndex, offset, "reserved category 11 is not a valid chunk encoding")
	}
}
