package vitemap

import "fmt"

// Context owns the input, output, and scratch buffers for one compression
// pipeline, sized up front for inputs up to a declared maximum. It is not
// safe for concurrent use: every call mutates its buffers in place.
// Independent Contexts share no state and may be driven from different
// goroutines in parallel.
//
// Create one with NewContext, fill the slice Input() returns, call
// Compress, and read the result back from Output(). A Context may be
// reused for another Compress call by overwriting Input() again; there is
// no reset step beyond that.
type Context struct {
	maxSize int
	chunks  int

	input   []byte
	output  []byte
	scratch [ChunkBytes]byte

	// outN is the length of the valid prefix of output after the most
	// recent Compress call.
	outN int
}

// NewContext allocates a Context sized for inputs up to maxSize bytes.
// Buffers are sized so that input gets exactly
// chunks*ChunkBytes bytes (zero-initialised, so the padding past whatever
// prefix the caller fills is well defined), output gets
// outputCapacity(chunks) bytes (frame prefix + worst-case per-chunk
// encoding + one trailing chunk of compaction over-write slack).
//
// NewContext returns ErrAllocationFailed for a negative maxSize or one
// whose derived buffer capacities would overflow int; Go's allocator
// itself panics on true out-of-memory, which callers cannot sensibly
// recover from, so this case is not wrapped into a returned error.
func NewContext(maxSize int) (*Context, error) {
	if maxSize < 0 {
		return nil, fmt.Errorf("%w: negative maxSize %d", ErrAllocationFailed, maxSize)
	}
	chunks := chunkCount(maxSize)
	// Guard the derived capacities against overflowing int, working in
	// int64 so the check itself can't overflow on a 32-bit platform.
	outCap := int64(frameHeaderBytes) + int64(chunks)*int64(maxChunkRecordBytes) + int64(ChunkBytes)
	if outCap > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("%w: maxSize %d overflows buffer sizing", ErrAllocationFailed, maxSize)
	}

	c := &Context{
		maxSize: maxSize,
		chunks:  chunks,
		input:   make([]byte, chunks*ChunkBytes),
		output:  make([]byte, outputCapacity(chunks)),
	}
	return c, nil
}

// MaxSize returns the upper bound this Context was created with.
func (c *Context) MaxSize() int {
	return c.maxSize
}

// Input returns a writable view of the context's input buffer. Its length
// is chunks*ChunkBytes, i.e. maxSize rounded up to a chunk boundary;
// callers write their actual data into the prefix [0, actualSize) and must
// leave (or reset) the remainder to zero before calling Compress.
func (c *Context) Input() []byte {
	return c.input
}

// Compress encodes the first actualSizeBytes of Input() (treated as padded
// with zeros up to the next chunk boundary) into the context's output
// buffer and returns the length of the valid compressed prefix. Call
// Output() afterward to get that prefix as a slice.
//
// Compress returns ErrInputTooLarge if actualSizeBytes exceeds MaxSize();
// in that case nothing is written and the context remains usable for a
// subsequent, smaller Compress call.
func (c *Context) Compress(actualSizeBytes int) (int, error) {
	if actualSizeBytes < 0 {
		panic(fmt.Sprintf("vitemap: Compress called with negative size %d", actualSizeBytes))
	}
	if actualSizeBytes > c.maxSize {
		return 0, fmt.Errorf("%w: %d > %d", ErrInputTooLarge, actualSizeBytes, c.maxSize)
	}

	writeFramePrefix(c.output, actualSizeBytes)
	cursor := frameHeaderBytes

	chunks := chunkCount(actualSizeBytes)
	for i := 0; i < chunks; i++ {
		chunk := (*[ChunkBytes]byte)(c.input[i*ChunkBytes : i*ChunkBytes+ChunkBytes])
		cursor += encodeChunk(c.output[cursor:], chunk, &c.scratch)
	}

	c.outN = cursor
	return cursor, nil
}

// Output returns the valid compressed prefix produced by the most recent
// Compress call. Bytes past this prefix are implementation-defined slack
// and must never be treated as part of the frame.
func (c *Context) Output() []byte {
	return c.output[:c.outN]
}

// Close releases the context's buffers. Go's garbage collector reclaims
// memory automatically, so this does not free anything an external caller
// could otherwise leak, but it keeps the create/use/destroy lifecycle
// explicit and makes a Context unusable after the call.
func (c *Context) Close() {
	c.input = nil
	c.output = nil
	c.outN = 0
}

// Decompress decodes a compressed frame into out, which must be at least
// as large as the bufferSize PeekDecodedSize reports. It writes exactly
// that many bytes: the original data followed by zero padding up to the
// next chunk boundary. Decompress does not require a Context — the wire
// format carries everything needed to decode.
func Decompress(compressed []byte, out []byte) error {
	dataSize, bufferSize, err := PeekDecodedSize(compressed)
	if err != nil {
		return err
	}
	if len(out) < bufferSize {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrOutputTooSmall, bufferSize, len(out))
	}

	cursor := frameHeaderBytes
	chunks := chunkCount(dataSize)
	for i := 0; i < chunks; i++ {
		dst := (*[ChunkBytes]byte)(out[i*ChunkBytes : i*ChunkBytes+ChunkBytes])
		consumed, err := decodeChunk(dst, compressed[cursor:], i, cursor)
		if err != nil {
			return err
		}
		cursor += consumed
	}
	return nil
}
