package column

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// EncodeIntVarint writes each value as a nullable zigzag varint with no
// delta transform, grounded on encoding/numeric_raw.go's plain per-value
// varint loop (no delta tracking state carried between values).
func EncodeIntVarint(vals []any) []byte {
	out := make([]byte, 0, len(vals)*2)

	for _, v := range vals {
		if jsonvalue.IsNull(v) {
			out = varint.EncodeNullableInt64(out, 0, true)
			continue
		}

		n, _ := jsonvalue.AsInt64(v)
		out = varint.EncodeNullableInt64(out, n, false)
	}

	return out
}

// DecodeIntVarint inverts EncodeIntVarint.
func DecodeIntVarint(data []byte, rows int) ([]any, error) {
	out := make([]any, rows)

	off := 0
	for i := 0; i < rows; i++ {
		if off > len(data) {
			return nil, errTruncatedColumn()
		}

		n, isNull, consumed, err := varint.DecodeNullableInt64(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: int_varint row %d: %v", i, err)
		}

		off += consumed

		if !isNull {
			out[i] = n
		}
	}

	return out, nil
}

// EncodeDeltaZigzag stores the first non-null value raw (nullable-encoded)
// and every subsequent value as a zigzag-varint delta from the previous
// non-null value, grounded on encoding/ts_delta.go's single-level delta
// step (without the second delta-of-delta level TIME_DOD adds).
func EncodeDeltaZigzag(vals []any) []byte {
	out := make([]byte, 0, len(vals)*2)

	var prev int64

	havePrev := false

	for _, v := range vals {
		if jsonvalue.IsNull(v) {
			out = varint.EncodeNullableInt64(out, 0, true)
			continue
		}

		n, _ := jsonvalue.AsInt64(v)

		if !havePrev {
			out = varint.EncodeNullableInt64(out, n, false)
			prev = n
			havePrev = true

			continue
		}

		out = varint.EncodeNullableInt64(out, n-prev, false)
		prev = n
	}

	return out
}

// DecodeDeltaZigzag inverts EncodeDeltaZigzag.
func DecodeDeltaZigzag(data []byte, rows int) ([]any, error) {
	out := make([]any, rows)

	off := 0

	var prev int64

	havePrev := false

	for i := 0; i < rows; i++ {
		if off > len(data) {
			return nil, errTruncatedColumn()
		}

		d, isNull, consumed, err := varint.DecodeNullableInt64(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: delta_zigzag row %d: %v", i, err)
		}

		off += consumed

		if isNull {
			continue
		}

		if !havePrev {
			out[i] = d
			prev = d
			havePrev = true

			continue
		}

		prev += d
		out[i] = prev
	}

	return out, nil
}

// EncodeTimeDoD implements the reserved TIME_DOD tag: first value raw,
// first delta raw, every later value as a zigzag-varint delta-of-delta.
// Verbatim algorithm from the teacher's encoding/ts_delta.go
// TimestampDeltaEncoder, generalised from wall-clock timestamps to any
// int64 column a producer chooses to tag this way. This package never
// selects it from Select (see SPEC_FULL.md's Open Question resolution)
// but must still decode it correctly when encountered.
func EncodeTimeDoD(vals []any) []byte {
	out := make([]byte, 0, len(vals)*2)

	var prev, prevDelta int64

	stage := 0 // 0=no value yet, 1=one value seen, 2=delta established

	for _, v := range vals {
		if jsonvalue.IsNull(v) {
			out = varint.EncodeNullableInt64(out, 0, true)
			continue
		}

		n, _ := jsonvalue.AsInt64(v)

		switch stage {
		case 0:
			out = varint.EncodeNullableInt64(out, n, false)
			prev = n
			stage = 1
		case 1:
			delta := n - prev
			out = varint.EncodeNullableInt64(out, delta, false)
			prevDelta = delta
			prev = n
			stage = 2
		default:
			delta := n - prev
			dod := delta - prevDelta
			out = varint.EncodeNullableInt64(out, dod, false)
			prevDelta = delta
			prev = n
		}
	}

	return out
}

// DecodeTimeDoD inverts EncodeTimeDoD.
func DecodeTimeDoD(data []byte, rows int) ([]any, error) {
	out := make([]any, rows)

	off := 0

	var prev, prevDelta int64

	stage := 0

	for i := 0; i < rows; i++ {
		if off > len(data) {
			return nil, errTruncatedColumn()
		}

		raw, isNull, consumed, err := varint.DecodeNullableInt64(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: time_dod row %d: %v", i, err)
		}

		off += consumed

		if isNull {
			continue
		}

		switch stage {
		case 0:
			out[i] = raw
			prev = raw
			stage = 1
		case 1:
			prevDelta = raw
			prev += raw
			out[i] = prev
			stage = 2
		default:
			delta := prevDelta + raw
			prev += delta
			prevDelta = delta
			out[i] = prev
		}
	}

	return out, nil
}
