package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

func num(t *testing.T, text string) any {
	t.Helper()

	v, err := jsonvalue.Decode([]byte(text))
	require.NoError(t, err)

	return v
}

func TestSelectAllNull(t *testing.T) {
	assert.Equal(t, format.ColumnRawJSON, Select([]any{nil, nil, nil}))
}

func TestSelectEnumIDs(t *testing.T) {
	vals := []any{"info", "warn", "info", nil, "error"}
	assert.Equal(t, format.ColumnEnumIDs, Select(vals))
}

func TestSelectBoolRLE(t *testing.T) {
	assert.Equal(t, format.ColumnBoolRLE, Select([]any{true, true, false, nil}))
}

func TestSelectDeltaZigzagForSequentialInts(t *testing.T) {
	vals := []any{num(t, "100"), num(t, "101"), num(t, "102"), num(t, "103")}
	assert.Equal(t, format.ColumnDeltaZigzag, Select(vals))
}

func TestSelectIntVarintForScatteredInts(t *testing.T) {
	vals := []any{num(t, "1"), num(t, "9000000"), num(t, "4")}
	assert.Equal(t, format.ColumnIntVarint, Select(vals))
}

func TestSelectRawJSONForMixedTypes(t *testing.T) {
	vals := []any{num(t, "1"), "two", true}
	assert.Equal(t, format.ColumnRawJSON, Select(vals))
}

func TestIntVarintRoundTrip(t *testing.T) {
	vals := []any{num(t, "1"), nil, num(t, "-9000000"), num(t, "0")}

	payload, err := Encode(format.ColumnIntVarint, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Nil(t, out[1])
	assert.Equal(t, int64(1), out[0])
	assert.Equal(t, int64(-9000000), out[2])
	assert.Equal(t, int64(0), out[3])
}

func TestDeltaZigzagRoundTrip(t *testing.T) {
	vals := []any{num(t, "100"), num(t, "101"), nil, num(t, "99")}

	payload, err := Encode(format.ColumnDeltaZigzag, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Equal(t, int64(100), out[0])
	assert.Equal(t, int64(101), out[1])
	assert.Nil(t, out[2])
	assert.Equal(t, int64(99), out[3])
}

func TestTimeDoDRoundTrip(t *testing.T) {
	vals := []any{num(t, "1000"), num(t, "1010"), num(t, "1021"), num(t, "1033"), nil, num(t, "1050")}

	payload, err := Encode(format.ColumnTimeDoD, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), out[0])
	assert.Equal(t, int64(1010), out[1])
	assert.Equal(t, int64(1021), out[2])
	assert.Equal(t, int64(1033), out[3])
	assert.Nil(t, out[4])
	assert.Equal(t, int64(1050), out[5])
}

func TestBoolRLERoundTrip(t *testing.T) {
	vals := []any{true, true, true, false, nil, nil, false}

	payload, err := Encode(format.ColumnBoolRLE, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Equal(t, vals, out)
}

func TestEnumIDsRoundTrip(t *testing.T) {
	vals := []any{"info", "warn", nil, "info", "error"}

	payload, err := Encode(format.ColumnEnumIDs, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Equal(t, vals, out)
}

func TestEnumIDsRejectsOverflowDictionary(t *testing.T) {
	vals := make([]any, 20)
	for i := range vals {
		vals[i] = string(rune('a' + i))
	}

	_, err := Encode(format.ColumnEnumIDs, vals)
	assert.Error(t, err)
}

func TestStrIDsResidRoundTrip(t *testing.T) {
	vals := []any{"a", "b", nil, "a", "c"}

	payload, err := Encode(format.ColumnStrIDsResid, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Equal(t, vals, out)
}

func TestRawJSONRoundTrip(t *testing.T) {
	vals := []any{num(t, "1.500"), "hello", true, nil, num(t, "42")}

	payload, err := Encode(format.ColumnRawJSON, vals)
	require.NoError(t, err)

	out, err := Decode(payload, len(vals))
	require.NoError(t, err)

	assert.Nil(t, out[3])
	assert.Equal(t, "hello", out[1])
	assert.Equal(t, true, out[2])
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0xee}, 1)
	assert.Error(t, err)
}
