package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeLineSortsKeys(t *testing.T) {
	out, err := CanonicalizeLine([]byte(`{"b":1,"a":2}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, string(out))
}

func TestCanonicalizeIdempotent(t *testing.T) {
	once, err := CanonicalizeLine([]byte(`{"z":1,"a":[3,2,1],"m":{"y":1,"x":2}}`))
	require.NoError(t, err)

	twice, err := CanonicalizeLine(once)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestParseObjectLineSortedKeys(t *testing.T) {
	_, keys, err := ParseObjectLine([]byte(`{"b":1,"a":2,"c":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestParseObjectLineRejectsNonObject(t *testing.T) {
	_, _, err := ParseObjectLine([]byte(`[1,2,3]`))
	assert.Error(t, err)

	_, _, err = ParseObjectLine([]byte(`42`))
	assert.Error(t, err)
}

func TestShapeFingerprintDeterministic(t *testing.T) {
	ser1, id1 := ShapeFingerprint([]string{"a", "b", "c"})
	ser2, id2 := ShapeFingerprint([]string{"a", "b", "c"})
	assert.Equal(t, ser1, ser2)
	assert.Equal(t, id1, id2)
	assert.Equal(t, "a\x01b\x01c", ser1)

	_, id3 := ShapeFingerprint([]string{"a", "b"})
	assert.NotEqual(t, id1, id3)
}

func TestAsInt64(t *testing.T) {
	v, err := Decode([]byte(`42`))
	require.NoError(t, err)
	n, ok := AsInt64(v)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	v, err = Decode([]byte(`42.5`))
	require.NoError(t, err)
	_, ok = AsInt64(v)
	assert.False(t, ok)

	v, err = Decode([]byte(`1e10`))
	require.NoError(t, err)
	_, ok = AsInt64(v)
	assert.False(t, ok)
}

func TestPreservesNumberText(t *testing.T) {
	out, err := CanonicalizeLine([]byte(`{"n":1.500}`))
	require.NoError(t, err)
	assert.Equal(t, `{"n":1.500}`, string(out))
}
