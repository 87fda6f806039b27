package backend

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func TestNoOpRoundTrip(t *testing.T) {
	c := NewIdentityCodec()
	data := []byte("hello world")

	out, err := c.Compress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	back, err := c.Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestS2RoundTrip(t *testing.T) {
	roundTripCodec(t, NewS2Codec())
}

func TestLZ4RoundTrip(t *testing.T) {
	roundTripCodec(t, NewLZ4Codec())
}

func TestZstdRoundTrip(t *testing.T) {
	roundTripCodec(t, NewZstdCodec())
}

func roundTripCodec(t *testing.T, c Codec) {
	t.Helper()

	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

// TestLZ4RoundTripIncompressible reproduces a regression where
// lz4.Compressor.CompressBlock reports incompressible input as a
// zero-length block: a naive codec would return an empty slice for a
// non-empty row, and the hybrid scout would then pick LZ4 as "smallest"
// and silently drop the data on decode.
func TestLZ4RoundTripIncompressible(t *testing.T) {
	src := rand.New(rand.NewSource(1))

	data := make([]byte, 4096)
	_, err := src.Read(data)
	require.NoError(t, err)

	c := NewLZ4Codec()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	assert.NotEmpty(t, compressed)

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestEncodeHybridRoundTripHighEntropyWindow(t *testing.T) {
	src := rand.New(rand.NewSource(2))

	data := make([]byte, WindowSize)
	_, err := src.Read(data)
	require.NoError(t, err)

	encoded, err := EncodeHybrid(data)
	require.NoError(t, err)

	decoded, err := DecodeHybrid(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestGetCodecUnknownTag(t *testing.T) {
	_, err := GetCodec(format.BackendTag(99))
	assert.Error(t, err)
}

func TestEncodeHybridRoundTripSmall(t *testing.T) {
	data := []byte(`{"a":1,"b":2}`)

	encoded, err := EncodeHybrid(data)
	require.NoError(t, err)

	decoded, err := DecodeHybrid(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncodeHybridRoundTripMultiWindow(t *testing.T) {
	data := bytes.Repeat([]byte("repeat me please "), 10000)

	encoded, err := EncodeHybrid(data)
	require.NoError(t, err)
	assert.Less(t, len(encoded), len(data))

	decoded, err := DecodeHybrid(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestDecodeHybridAcceptsLegacySolidEnvelope(t *testing.T) {
	legacy, err := encodeSolid([]byte("legacy payload"), format.BackendFast)
	require.NoError(t, err)

	decoded, err := DecodeHybrid(legacy)
	require.NoError(t, err)
	assert.Equal(t, []byte("legacy payload"), decoded)
}

func TestCoalesceMajority(t *testing.T) {
	choices := []format.BackendTag{
		format.BackendFast, format.BackendFast, format.BackendFast,
		format.BackendFast, format.BackendFast, format.BackendFast,
		format.BackendFast, format.BackendFast, format.BackendFast,
		format.BackendDense,
	}

	tag, ok := coalesce(choices)
	assert.True(t, ok)
	assert.Equal(t, format.BackendFast, tag)
}

func TestCoalesceNoMajority(t *testing.T) {
	choices := []format.BackendTag{format.BackendFast, format.BackendDense}

	_, ok := coalesce(choices)
	assert.False(t, ok)
}
