package jcompress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressSingleDocument(t *testing.T) {
	doc := []byte(`{"b":2,"a":1,"nested":{"z":true,"y":false}}`)

	encoded, err := Compress(doc)
	require.NoError(t, err)

	decoded, err := Decompress(encoded)
	require.NoError(t, err)

	assert.Equal(t, `{"a":1,"b":2,"nested":{"y":false,"z":true}}`, string(decoded))
}

func TestCompressDecompressNDJSON(t *testing.T) {
	input := []byte("{\"level\":\"info\",\"ts\":1,\"msg\":\"a\"}\n" +
		"{\"level\":\"warn\",\"ts\":2,\"msg\":\"b\"}\n" +
		"{\"level\":\"info\",\"ts\":3,\"msg\":\"c\"}\n")

	encoded, err := CompressNDJSON(input)
	require.NoError(t, err)

	decoded, err := DecompressNDJSON(encoded)
	require.NoError(t, err)

	// The columnar path re-serialises each row with sorted keys.
	want := "{\"level\":\"info\",\"msg\":\"a\",\"ts\":1}\n" +
		"{\"level\":\"warn\",\"msg\":\"b\",\"ts\":2}\n" +
		"{\"level\":\"info\",\"msg\":\"c\",\"ts\":3}\n"
	assert.Equal(t, want, string(decoded))
}

func TestCompressNDJSONSelectiveDecode(t *testing.T) {
	input := []byte("{\"level\":\"info\",\"ts\":1,\"msg\":\"a\"}\n" +
		"{\"level\":\"warn\",\"ts\":2,\"msg\":\"b\"}\n" +
		"{\"level\":\"info\",\"ts\":3,\"msg\":\"c\"}\n")

	encoded, err := CompressNDJSON(input)
	require.NoError(t, err)

	decoded, err := DecompressNDJSON(encoded, "msg")
	require.NoError(t, err)

	assert.Equal(t, "{\"msg\":\"a\"}\n{\"msg\":\"b\"}\n{\"msg\":\"c\"}\n", string(decoded))
}

func TestCompressNDJSONFallsBackForTinyInput(t *testing.T) {
	input := []byte(`{"a":1}` + "\n")

	encoded, err := CompressNDJSON(input)
	require.NoError(t, err)

	decoded, err := DecompressNDJSON(encoded)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(decoded))
}

func TestCompressWithIdentityCodec(t *testing.T) {
	doc := []byte(`{"a":1}`)

	encoded, err := Compress(doc, WithCodec("identity"))
	require.NoError(t, err)

	decoded, err := Decompress(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(decoded))
}

func TestCompressNDJSONWithColumnarDisabled(t *testing.T) {
	input := []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n")

	encoded, err := CompressNDJSON(input, WithColumnar(false))
	require.NoError(t, err)

	decoded, err := DecompressNDJSON(encoded)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(decoded))
}
