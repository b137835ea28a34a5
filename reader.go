package vitemap

// FrameReader provides random access to a compressed frame by decoding it
// once and answering bit queries against the decoded buffer. A FrameReader
// is not safe for concurrent use; create one per goroutine if concurrent
// access is needed. It decodes the whole frame once into a reused buffer
// and then answers positional queries against that buffer instead of
// re-decoding per access.
type FrameReader struct {
	buf    []byte // decoded bytes, reused across Load calls
	pos    int    // bit cursor for NextSet iteration
	loaded bool
}

// NewFrameReader creates an empty FrameReader that must be loaded with
// Load before use.
func NewFrameReader() *FrameReader {
	return &FrameReader{}
}

// Load decodes compressed into the reader's internal buffer, resetting all
// iteration state. It reuses the previous buffer's capacity when large
// enough, so a FrameReader may be Load-ed repeatedly without reallocating.
func (r *FrameReader) Load(compressed []byte) error {
	_, bufferSize, err := PeekDecodedSize(compressed)
	if err != nil {
		r.loaded = false
		return err
	}
	if cap(r.buf) < bufferSize {
		r.buf = make([]byte, bufferSize)
	} else {
		r.buf = r.buf[:bufferSize]
	}
	if err := Decompress(compressed, r.buf); err != nil {
		r.loaded = false
		return err
	}
	r.pos = 0
	r.loaded = true
	return nil
}

// IsLoaded returns whether the reader holds a successfully decoded frame.
func (r *FrameReader) IsLoaded() bool {
	return r.loaded
}

// Len returns the bit length of the decoded buffer (a multiple of
// ChunkBits).
func (r *FrameReader) Len() int {
	return len(r.buf) * 8
}

// Test reports whether bit bitPos is set.
func (r *FrameReader) Test(bitPos int) (bool, error) {
	if !r.loaded {
		return false, ErrNotLoaded
	}
	if bitPos < 0 || bitPos >= len(r.buf)*8 {
		return false, ErrPositionOutOfRange
	}
	return r.buf[bitPos/8]&(1<<(bitPos%8)) != 0, nil
}

// Reset rewinds NextSet's iteration cursor to the beginning.
func (r *FrameReader) Reset() {
	r.pos = 0
}

// Pos returns NextSet's current bit cursor.
func (r *FrameReader) Pos() int {
	return r.pos
}

// NextSet returns the position of the next set bit at or after the
// current cursor, advancing the cursor past it. Returns (0, false) once
// there are no more set bits (or the reader isn't loaded).
func (r *FrameReader) NextSet() (pos int, ok bool) {
	if !r.loaded {
		return 0, false
	}
	total := len(r.buf) * 8
	for r.pos < total {
		p := r.pos
		r.pos++
		if r.buf[p/8]&(1<<(p%8)) != 0 {
			return p, true
		}
	}
	return 0, false
}

// Decode copies the decoded bytes into dst, resizing it if necessary, and
// returns the (possibly new) slice.
func (r *FrameReader) Decode(dst []byte) []byte {
	if !r.loaded {
		return nil
	}
	if cap(dst) < len(r.buf) {
		dst = make([]byte, len(r.buf))
	} else {
		dst = dst[:len(r.buf)]
	}
	copy(dst, r.buf)
	return dst
}
