package columnar

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	input := []byte("{\"level\":\"info\",\"ts\":1000,\"msg\":\"start\"}\n" +
		"{\"level\":\"warn\",\"ts\":1001,\"msg\":\"slow\"}\n" +
		"{\"level\":\"info\",\"ts\":1002,\"msg\":\"done\"}\n")

	encoded, err := Encode(input)
	require.NoError(t, err)

	decoded, err := Decode(encoded, nil)
	require.NoError(t, err)

	// Columnar decode re-serialises each row with sorted keys.
	want := "{\"level\":\"info\",\"msg\":\"start\",\"ts\":1000}\n" +
		"{\"level\":\"warn\",\"msg\":\"slow\",\"ts\":1001}\n" +
		"{\"level\":\"info\",\"msg\":\"done\",\"ts\":1002}\n"
	assert.Equal(t, want, string(decoded))
}

func TestEncodeDecodePreservesBlankLines(t *testing.T) {
	input := []byte("{\"a\":1}\n\n{\"a\":2}\n\n\n{\"a\":3}\n")

	encoded, err := Encode(input)
	require.NoError(t, err)

	decoded, err := Decode(encoded, nil)
	require.NoError(t, err)

	assert.Equal(t, string(input), string(decoded))
}

func TestEncodeDecodeSchemaDrift(t *testing.T) {
	input := []byte("{\"a\":1,\"b\":2}\n" +
		"{\"a\":3,\"b\":4}\n" +
		"{\"a\":5,\"c\":6}\n" +
		"{\"a\":7,\"b\":8}\n")

	encoded, err := Encode(input)
	require.NoError(t, err)

	decoded, err := Decode(encoded, nil)
	require.NoError(t, err)

	assert.Equal(t, string(input), string(decoded))
}

func TestSelectiveDecodeOmitsUnrequestedFields(t *testing.T) {
	input := []byte("{\"level\":\"info\",\"ts\":1000,\"msg\":\"start\"}\n" +
		"{\"level\":\"warn\",\"ts\":1001,\"msg\":\"slow\"}\n" +
		"{\"level\":\"info\",\"ts\":1002,\"msg\":\"done\"}\n")

	encoded, err := Encode(input)
	require.NoError(t, err)

	decoded, err := Decode(encoded, []string{"level"})
	require.NoError(t, err)

	assert.Equal(t, "{\"level\":\"info\"}\n{\"level\":\"warn\"}\n{\"level\":\"info\"}\n", string(decoded))
}

func TestEncodeDecodeWindowBoundary(t *testing.T) {
	var input []byte
	for i := 0; i < WindowRows+10; i++ {
		input = append(input, []byte("{\"n\":"+strconv.Itoa(i)+"}\n")...)
	}

	encoded, err := Encode(input)
	require.NoError(t, err)

	decoded, err := Decode(encoded, nil)
	require.NoError(t, err)

	assert.Equal(t, string(input), string(decoded))
}

func TestShouldApplyFallback(t *testing.T) {
	assert.False(t, ShouldApply([]byte(`{"a":1}`)))
	assert.False(t, ShouldApply([]byte("{\"a\":1}\n{\"a\":2}\n")))

	var many []byte
	for i := 0; i < 8; i++ {
		many = append(many, []byte("{\"a\":1}\n")...)
	}

	assert.True(t, ShouldApply(many))
}
