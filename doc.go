// Package vitemap implements a chunk-level bitmap compression codec
// optimized for speed on sparse or dense (but not mid-density) bitmaps.
//
// An input byte buffer is treated as a flat bit array and partitioned into
// fixed 256-bit (32-byte) chunks. Each chunk is classified by population
// density and encoded with whichever of three per-chunk formats is
// smallest: a sparse list of set-bit positions, a dense list of clear-bit
// positions (the chunk's complement), or a raw 32-byte copy. Decompression
// reverses the process and reconstructs the original bytes exactly, padded
// up to the next chunk boundary.
//
// The package keeps no mutable global state beyond a read-only 8 KiB
// bit-scatter lookup table built once before first use, so a *Context is
// the only thing callers need to keep private to a single goroutine;
// different Contexts share no state and may run on separate goroutines in
// parallel.
package vitemap
