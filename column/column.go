// Package column implements the per-column type-specialised encoders and
// decoders from spec §4.2 (component C2): selection, payload encoding,
// and payload decoding for each of the seven wire tags in format.ColumnType.
//
// The encoder/decoder split and pooled scratch buffers are grounded on
// the teacher's
// encoding.ColumnarEncoder[T]/ColumnarDecoder[T] shape
// (encoding/columnar.go) and its concrete TimestampDeltaEncoder/
// NumericRawEncoder implementations, generalised from "one metric's
// timestamps or float64 values" to "one shape-group's JSON field values".
package column

import (
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/internal/pool"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// Select applies the deterministic decision order from spec §4.2 to pick
// a column's wire type given its materialised values (nil meaning absent
// or JSON null).
func Select(vals []any) format.ColumnType {
	allNull := true
	allBool := true
	allInt := true
	allSequentialCandidate := true
	allStr := true

	// Scratch accumulators sized to the worst case (every value non-null)
	// and returned to the pool when Select is done scanning, grounded on
	// internal/pool.GetInt64Slice/GetStringSlice's "reuse across many
	// small per-column passes" intent.
	ints, putInts := pool.GetInt64Slice(len(vals))
	defer putInts()
	ints = ints[:0]

	strs, putStrs := pool.GetStringSlice(len(vals))
	defer putStrs()
	strs = strs[:0]

	nonNullCount := 0

	for _, v := range vals {
		if jsonvalue.IsNull(v) {
			continue
		}

		allNull = false
		nonNullCount++

		if _, ok := jsonvalue.AsBool(v); !ok {
			allBool = false
		}

		if n, ok := jsonvalue.AsInt64(v); ok {
			ints = append(ints, n)
		} else {
			allInt = false
			allSequentialCandidate = false
		}

		if s, ok := jsonvalue.AsString(v); ok {
			if len(s) > 16 {
				allStr = false
			}
			strs = append(strs, s)
		} else {
			allStr = false
		}
	}

	if allNull {
		return format.ColumnRawJSON
	}

	if allStr && distinctCount(strs) <= 16 {
		return format.ColumnEnumIDs
	}

	if allBool {
		return format.ColumnBoolRLE
	}

	if allInt && allSequentialCandidate && isSequentialish(ints) {
		return format.ColumnDeltaZigzag
	}

	if allInt {
		return format.ColumnIntVarint
	}

	return format.ColumnRawJSON
}

func distinctCount(strs []string) int {
	set := make(map[string]struct{}, len(strs))
	for _, s := range strs {
		set[s] = struct{}{}
	}

	return len(set)
}

// isSequentialish implements spec §4.2's "max-min < 2*count" rule for
// preferring delta-zigzag over plain int-varint.
func isSequentialish(ints []int64) bool {
	if len(ints) == 0 {
		return false
	}

	minV, maxV := ints[0], ints[0]
	for _, n := range ints[1:] {
		if n < minV {
			minV = n
		}
		if n > maxV {
			maxV = n
		}
	}

	span := maxV - minV

	return span < int64(2*len(ints))
}

// Encode dispatches to the payload encoder for tag and prefixes the
// tag:u8 byte spec §4.2 mandates at the front of every column payload.
func Encode(tag format.ColumnType, vals []any) ([]byte, error) {
	var payload []byte

	var err error

	switch tag {
	case format.ColumnIntVarint:
		payload = EncodeIntVarint(vals)
	case format.ColumnDeltaZigzag:
		payload = EncodeDeltaZigzag(vals)
	case format.ColumnTimeDoD:
		payload = EncodeTimeDoD(vals)
	case format.ColumnBoolRLE:
		payload = EncodeBoolRLE(vals)
	case format.ColumnEnumIDs:
		payload, err = EncodeEnumIDs(vals)
	case format.ColumnStrIDsResid:
		payload, err = EncodeStrIDsResid(vals)
	case format.ColumnRawJSON:
		payload, err = EncodeRawJSON(vals)
	default:
		return nil, errUnknownTag(tag)
	}

	if err != nil {
		return nil, err
	}

	buf := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(buf)

	buf.Grow(len(payload) + 1)
	buf.MustWrite([]byte{byte(tag)})
	buf.MustWrite(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode reads the tag:u8 prefix from data and dispatches to the matching
// payload decoder, returning exactly `rows` values (nil for absent/null).
func Decode(data []byte, rows int) ([]any, error) {
	if len(data) < 1 {
		return nil, errTruncatedColumn()
	}

	tag := format.ColumnType(data[0])
	payload := data[1:]

	switch tag {
	case format.ColumnIntVarint:
		return DecodeIntVarint(payload, rows)
	case format.ColumnDeltaZigzag:
		return DecodeDeltaZigzag(payload, rows)
	case format.ColumnTimeDoD:
		return DecodeTimeDoD(payload, rows)
	case format.ColumnBoolRLE:
		return DecodeBoolRLE(payload, rows)
	case format.ColumnEnumIDs:
		return DecodeEnumIDs(payload, rows)
	case format.ColumnStrIDsResid:
		return DecodeStrIDsResid(payload, rows)
	case format.ColumnRawJSON:
		return DecodeRawJSON(payload, rows)
	default:
		return nil, errUnknownTag(tag)
	}
}
