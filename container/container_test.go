package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{Codec: format.CodecHybrid, CreatedAt: 1700000000, NDJSON: true}
	body := []byte("some compressed body bytes")

	encoded, err := Encode(h, body)
	require.NoError(t, err)

	gotHeader, gotBody, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, format.CodecHybrid, gotHeader.Codec)
	assert.True(t, gotHeader.NDJSON)
	assert.Equal(t, Version, gotHeader.Version)
	assert.Equal(t, body, gotBody)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, _, err := Decode([]byte("XXXX1234body"))
	assert.Error(t, err)
}

func TestDecodeRejectsTamperedBody(t *testing.T) {
	h := Header{Codec: format.CodecIdentity}
	body := []byte("original")

	encoded, err := Encode(h, body)
	require.NoError(t, err)

	encoded[len(encoded)-1] ^= 0xff

	_, _, err = Decode(encoded)
	assert.Error(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	h := Header{Codec: format.CodecIdentity}
	body := []byte("body")

	encoded, err := Encode(h, body)
	require.NoError(t, err)

	// Encode always stamps the current Version; corrupt just that field
	// in the still-valid envelope to simulate a future/garbage version.
	marker := []byte(`"version":1`)
	idx := bytes.Index(encoded, marker)
	require.GreaterOrEqual(t, idx, 0)
	encoded[idx+len(marker)-1] = '9'

	_, _, err = Decode(encoded)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	h := Header{Codec: format.CodecFast}
	encoded, err := Encode(h, []byte("body"))
	require.NoError(t, err)

	_, _, err = Decode(encoded[:10])
	assert.Error(t, err)
}
