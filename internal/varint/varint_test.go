package varint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 16384, 1 << 20, 0xFFFFFFFF}
	for _, v := range values {
		buf := AppendUint32(nil, v)
		got, n, err := Uint32(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, v, got)
	}
}

func TestUint32ZeroIsSingleByte(t *testing.T) {
	buf := AppendUint32(nil, 0)
	assert.Equal(t, []byte{0x00}, buf)
}

func TestUint32Truncated(t *testing.T) {
	buf := AppendUint32(nil, 300)
	_, _, err := Uint32(buf[:1])
	assert.Error(t, err)
}

func TestUint32Overflow(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	_, _, err := Uint32(buf)
	assert.Error(t, err)
}

func TestZigZagEncode64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40)}
	for _, v := range values {
		z := ZigZagEncode64(v)
		assert.Equal(t, v, ZigZagDecode64(z))
	}
}

func TestNullableInt64RoundTrip(t *testing.T) {
	buf := EncodeNullableInt64(nil, 42, false)
	v, isNull, n, err := DecodeNullableInt64(buf)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, len(buf), n)

	buf = EncodeNullableInt64(nil, 0, true)
	_, isNull, _, err = DecodeNullableInt64(buf)
	require.NoError(t, err)
	assert.True(t, isNull)
}
