package vitemap

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four ErrorKinds the codec distinguishes, plus two
// for the random-access readers. Callers should use errors.Is against these.
var (
	// ErrAllocationFailed is returned by NewContext when the requested
	// size cannot be honored (a negative size, or one whose derived
	// buffer capacities overflow int).
	ErrAllocationFailed = errors.New("vitemap: allocation failed")

	// ErrInputTooLarge is returned by Context.Compress when the declared
	// size exceeds the context's maximum. Nothing is written in this
	// case; the context remains usable.
	ErrInputTooLarge = errors.New("vitemap: input exceeds context maximum size")

	// ErrOutputTooSmall is returned by Decompress when the caller's
	// destination buffer is smaller than PeekDecodedSize reports.
	ErrOutputTooSmall = errors.New("vitemap: output buffer smaller than decoded size")

	// ErrCorruptStream is returned by Decompress/PeekDecodedSize when the
	// compressed bytes cannot be a conforming frame: a reserved category,
	// a truncated payload, or a size prefix inconsistent with the
	// remaining bytes.
	ErrCorruptStream = errors.New("vitemap: corrupt compressed stream")

	// ErrNotLoaded is returned by FrameReader/SlimReader methods called
	// before Load (or after a failed Load).
	ErrNotLoaded = errors.New("vitemap: reader not loaded")

	// ErrPositionOutOfRange is returned when a reader is asked about a bit
	// position outside [0, Len()).
	ErrPositionOutOfRange = errors.New("vitemap: position out of range")
)

// CorruptStreamError carries structured detail about where a stream went
// bad: a typed error alongside a sentinel, so callers can either
// errors.Is(err, ErrCorruptStream) for a coarse check or errors.As(err,
// &csErr) for the chunk index and reason.
type CorruptStreamError struct {
	// ChunkIndex is the 0-based chunk record that failed to decode, or -1
	// if the failure was in the frame prefix itself.
	ChunkIndex int
	// Offset is the byte offset into the compressed buffer where the
	// failing record (or prefix) begins.
	Offset int
	// Reason is a short human-readable description.
	Reason string
}

func (e *CorruptStreamError) Error() string {
	if e.ChunkIndex < 0 {
		return fmt.Sprintf("vitemap: corrupt stream at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("vitemap: corrupt stream in chunk %d at offset %d: %s", e.ChunkIndex, e.Offset, e.Reason)
}

func (e *CorruptStreamError) Unwrap() error {
	return ErrCorruptStream
}

func corruptStream(chunkIndex, offset int, format string, args ...any) error {
	return &CorruptStreamError{
		ChunkIndex: chunkIndex,
		Offset:     offset,
		Reason:     fmt.Sprintf(format, args...),
	}
}
