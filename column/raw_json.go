package column

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// EncodeRawJSON writes each value as a varint-length-prefixed JSON text
// blob, the universal fallback column type. Grounded on encoding/
// varstring.go's length-prefix framing, widened from a u8 to a varint
// length because arbitrary JSON values aren't bounded to 255 bytes. A
// null/absent row is written as the literal 4-byte text "null" per spec
// §4.2/§8, not a side-channel sentinel: jsonvalue.Marshal(nil) already
// produces that text and jsonvalue.Decode parses it back to a nil value,
// so null needs no special case here.
func EncodeRawJSON(vals []any) ([]byte, error) {
	out := make([]byte, 0, len(vals)*8)

	for _, v := range vals {
		text, err := jsonvalue.Marshal(v)
		if err != nil {
			return nil, errs.Wrap(errs.ErrInputInvalid, "column: raw_json marshal: %v", err)
		}

		out = varint.AppendUint32(out, uint32(len(text)))
		out = append(out, text...)
	}

	return out, nil
}

// DecodeRawJSON inverts EncodeRawJSON, returning each row's decoded value.
func DecodeRawJSON(data []byte, rows int) ([]any, error) {
	out := make([]any, rows)

	off := 0

	for i := 0; i < rows; i++ {
		l, n, err := varint.Uint32(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: raw_json row %d: %v", i, err)
		}

		off += n

		if off+int(l) > len(data) {
			return nil, errTruncatedColumn()
		}

		v, err := jsonvalue.Decode(data[off : off+int(l)])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: raw_json row %d decode: %v", i, err)
		}

		out[i] = v
		off += int(l)
	}

	return out, nil
}
