package column

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

const (
	boolStateFalse byte = 0
	boolStateTrue  byte = 1
	boolStateNull  byte = 2
)

func boolState(v any) byte {
	if jsonvalue.IsNull(v) {
		return boolStateNull
	}

	b, _ := jsonvalue.AsBool(v)
	if b {
		return boolStateTrue
	}

	return boolStateFalse
}

// EncodeBoolRLE writes (state:u8, runLength:varint) pairs, grounded on the
// run-length block framing the compress package's back-ends use for
// repetitive byte runs, adapted here to a three-state (false/true/null)
// column alphabet.
func EncodeBoolRLE(vals []any) []byte {
	out := make([]byte, 0, 8)

	i := 0
	for i < len(vals) {
		state := boolState(vals[i])

		run := 1
		for i+run < len(vals) && boolState(vals[i+run]) == state {
			run++
		}

		out = append(out, state)
		out = varint.AppendUint32(out, uint32(run))
		i += run
	}

	return out
}

// DecodeBoolRLE inverts EncodeBoolRLE.
func DecodeBoolRLE(data []byte, rows int) ([]any, error) {
	out := make([]any, rows)

	off := 0
	filled := 0

	for filled < rows {
		if off >= len(data) {
			return nil, errTruncatedColumn()
		}

		state := data[off]
		off++

		run, n, err := varint.Uint32(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: bool_rle: %v", err)
		}

		off += n

		if filled+int(run) > rows {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: bool_rle run overruns row count")
		}

		for j := 0; j < int(run); j++ {
			switch state {
			case boolStateTrue:
				out[filled+j] = true
			case boolStateFalse:
				out[filled+j] = false
			case boolStateNull:
				out[filled+j] = nil
			default:
				return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: bool_rle unknown state %d", state)
			}
		}

		filled += int(run)
	}

	return out, nil
}
