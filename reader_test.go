package vitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameReaderTestMatchesDecoded(t *testing.T) {
	rng := newRand(3)
	data := make([]byte, 32*10+5)
	rng.Read(data)
	compressed := compressBytes(t, data, len(data))
	decoded := decompressBytes(t, compressed)

	r := NewFrameReader()
	require.NoError(t, r.Load(compressed))
	require.True(t, r.IsLoaded())
	require.Equal(t, len(decoded)*8, r.Len())

	for pos := 0; pos < r.Len(); pos++ {
		want := decoded[pos/8]&(1<<(pos%8)) != 0
		got, err := r.Test(pos)
		require.NoError(t, err)
		assert.Equal(t, want, got, "bit %d", pos)
	}

	_, err := r.Test(-1)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
	_, err = r.Test(r.Len())
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestFrameReaderNextSetEnumeratesAllSetBits(t *testing.T) {
	data := make([]byte, 32)
	for _, pos := range []int{0, 5, 64, 200, 255} {
		data[pos/8] |= 1 << (pos % 8)
	}
	compressed := compressBytes(t, data, len(data))

	r := NewFrameReader()
	require.NoError(t, r.Load(compressed))

	var got []int
	for {
		pos, ok := r.NextSet()
		if !ok {
			break
		}
		got = append(got, pos)
	}
	assert.Equal(t, []int{0, 5, 64, 200, 255}, got)

	r.Reset()
	pos, ok := r.NextSet()
	require.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestFrameReaderNotLoaded(t *testing.T) {
	r := NewFrameReader()
	assert.False(t, r.IsLoaded())
	_, err := r.Test(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, ok := r.NextSet()
	assert.False(t, ok)
}

func TestFrameReaderReusesBufferAcrossLoads(t *testing.T) {
	r := NewFrameReader()
	small := compressBytes(t, make([]byte, 10), 10)
	require.NoError(t, r.Load(small))
	firstBuf := r.buf

	big := compressBytes(t, make([]byte, 4), 4)
	require.NoError(t, r.Load(big))
	assert.Same(t, &firstBuf[0], &r.buf[0], "Load should reuse capacity when it suffices")
}

func TestFrameReaderDecode(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	compressed := compressBytes(t, data, len(data))
	r := NewFrameReader()
	require.NoError(t, r.Load(compressed))

	out := r.Decode(nil)
	assert.Equal(t, decompressBytes(t, compressed), out)
}
