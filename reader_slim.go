package vitemap

// SlimReader provides memory-efficient random access to a compressed
// frame. Unlike FrameReader, it never materializes a decoded buffer:
// instead it keeps a slice header over the compressed bytes plus a small
// per-chunk byte-offset index (built once on Load by walking header
// lengths only, never decoding a payload), and decodes just the one chunk
// record a query touches. Built for "millions of readers" over
// mmap-backed buffers where pre-decoding every block would be wasteful.
//
// A SlimReader is safe for concurrent read access to the same underlying
// buffer (it never mutates compressed), but a single SlimReader instance
// should not be driven from multiple goroutines concurrently, since
// chunkOffsets may be grown by Load.
type SlimReader struct {
	buf          []byte  // compressed frame, not copied
	chunkOffsets []int32 // offset of each chunk's header byte, built on Load
	dataSize     int
	loaded       bool
}

// NewSlimReader creates an empty SlimReader that must be loaded with Load
// before use.
func NewSlimReader() *SlimReader {
	return &SlimReader{}
}

// Load indexes a compressed frame for random access. The buffer must
// remain valid and unmodified for the lifetime of the SlimReader. Load
// validates every chunk header's category and declared length as it
// builds the index, so a successful Load guarantees Test never needs to
// report ErrCorruptStream afterward.
func (r *SlimReader) Load(compressed []byte) error {
	dataSize, err := readFramePrefix(compressed)
	if err != nil {
		r.loaded = false
		return err
	}
	chunks := chunkCount(dataSize)

	offsets := r.chunkOffsets
	if cap(offsets) < chunks {
		offsets = make([]int32, chunks)
	} else {
		offsets = offsets[:chunks]
	}

	cursor := frameHeaderBytes
	for i := 0; i < chunks; i++ {
		if cursor >= len(compressed) {
			r.loaded = false
			return corruptStream(i, cursor, "missing chunk header")
		}
		offsets[i] = int32(cursor)
		category, length := decodeChunkHeader(compressed[cursor])
		if category == catReserved {
			r.loaded = false
			return corruptStream(i, cursor, "reserved category 11 is not a valid chunk encoding")
		}
		if category == catRaw && length != ChunkBytes {
			r.loaded = false
			return corruptStream(i, cursor, "raw chunk declares length %d, want %d", length, ChunkBytes)
		}
		recordLen := 1 + length
		if cursor+recordLen > len(compressed) {
			r.loaded = false
			return corruptStream(i, cursor, "truncated chunk record: need %d bytes, have %d", recordLen, len(compressed)-cursor)
		}
		cursor += recordLen
	}

	r.buf = compressed
	r.chunkOffsets = offsets
	r.dataSize = dataSize
	r.loaded = true
	return nil
}

// IsLoaded returns whether the reader holds a successfully indexed frame.
func (r *SlimReader) IsLoaded() bool {
	return r.loaded
}

// Len returns the bit length of the (logical, padded) decoded buffer.
func (r *SlimReader) Len() int {
	return paddedSize(r.dataSize) * 8
}

// Test reports whether bit bitPos is set, decoding only the one chunk
// record that contains it.
func (r *SlimReader) Test(bitPos int) (bool, error) {
	if !r.loaded {
		return false, ErrNotLoaded
	}
	total := r.Len()
	if bitPos < 0 || bitPos >= total {
		return false, ErrPositionOutOfRange
	}

	chunkIdx := bitPos / ChunkBits
	bitInChunk := byte(bitPos % ChunkBits)

	offset := int(r.chunkOffsets[chunkIdx])
	category, length := decodeChunkHeader(r.buf[offset])
	payload := r.buf[offset+1 : offset+1+length]

	switch category {
	case catRaw:
		return payload[bitInChunk/8]&(1<<(bitInChunk%8)) != 0, nil
	case catSparse:
		return containsByte(payload, bitInChunk), nil
	case catDense:
		return !containsByte(payload, bitInChunk), nil
	default:
		// Load already rejected catReserved for every indexed chunk.
		return false, corruptStream(chunkIdx, offset, "reserved category 11 is not a valid chunk encoding")
	}
}

func containsByte(haystack []byte, v byte) bool {
	for _, b := range haystack {
		if b == v {
			return true
		}
		if b > v {
			return false // payloads are ascending-sorted by a conforming encoder
		}
	}
	return false
}
