package column

import (
	"sort"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// enumNullID and enumMaxDict mirror encoding/varstring.go's MaxTextLength
// discipline (a hard uint8-addressable ceiling) narrowed to the 16-entry
// cap spec §4.2 sets for ENUM_IDS eligibility.
const (
	enumNullID  byte = 0xff
	enumMaxDict      = 16
)

// EncodeEnumIDs writes a sorted dictionary of the column's distinct
// non-null strings (u8 count, each length-prefixed per encoding/
// varstring.go's VarStringEncoder.Write convention) followed by one id
// byte per row (0xFF = null).
func EncodeEnumIDs(vals []any) ([]byte, error) {
	dict, ids, err := buildDict(vals, enumMaxDict)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(dict)*8+len(vals))
	out = append(out, byte(len(dict)))

	for _, s := range dict {
		if len(s) > 255 {
			return nil, errs.Wrap(errs.ErrInputInvalid, "column: enum_ids entry %q exceeds 255 bytes", s)
		}

		out = append(out, byte(len(s)))
		out = append(out, s...)
	}

	for _, id := range ids {
		out = append(out, id)
	}

	return out, nil
}

// DecodeEnumIDs inverts EncodeEnumIDs.
func DecodeEnumIDs(data []byte, rows int) ([]any, error) {
	if len(data) < 1 {
		return nil, errTruncatedColumn()
	}

	dictCount := int(data[0])
	off := 1

	dict := make([]string, dictCount)

	for i := 0; i < dictCount; i++ {
		if off >= len(data) {
			return nil, errTruncatedColumn()
		}

		l := int(data[off])
		off++

		if off+l > len(data) {
			return nil, errTruncatedColumn()
		}

		dict[i] = string(data[off : off+l])
		off += l
	}

	if off+rows > len(data) {
		return nil, errTruncatedColumn()
	}

	out := make([]any, rows)

	for i := 0; i < rows; i++ {
		id := data[off+i]
		if id == enumNullID {
			continue
		}

		if int(id) >= dictCount {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: enum_ids id %d out of range", id)
		}

		out[i] = dict[id]
	}

	return out, nil
}

// buildDict collects the sorted distinct non-null strings in vals and maps
// each row to its dictionary id, failing if cardinality exceeds maxDict.
func buildDict(vals []any, maxDict int) (dict []string, ids []byte, err error) {
	seen := make(map[string]int)

	ids = make([]byte, len(vals))

	for i, v := range vals {
		if jsonvalue.IsNull(v) {
			ids[i] = enumNullID
			continue
		}

		s, ok := jsonvalue.AsString(v)
		if !ok {
			return nil, nil, errs.Wrap(errs.ErrInputInvalid, "column: enum_ids value at row %d is not a string", i)
		}

		if _, exists := seen[s]; !exists {
			if len(dict) >= maxDict && maxDict > 0 {
				return nil, nil, errs.Wrap(errs.ErrInputInvalid, "column: enum_ids dictionary exceeds %d entries", maxDict)
			}

			seen[s] = len(dict)
			dict = append(dict, s)
		}
	}

	sort.Strings(dict)

	for id, s := range dict {
		seen[s] = id
	}

	for i, v := range vals {
		if jsonvalue.IsNull(v) {
			continue
		}

		s, _ := jsonvalue.AsString(v)
		ids[i] = byte(seen[s])
	}

	return dict, ids, nil
}

// strResidNullID and strResidSentinelID are the two reserved u16 ids in
// the STR_IDS_WITH_RESID dictionary channel (spec's supplemented large-
// cardinality sibling of ENUM_IDS, see SPEC_FULL.md).
const (
	strResidNullID     uint16 = 0xffff
	strResidSentinelID uint16 = 0xfffe
	strResidMaxDict           = 0xfffe
)

// EncodeStrIDsResid writes a u16-indexed dictionary (up to 65534 entries)
// plus a residual side channel for values that don't fit the dictionary,
// grounded on encoding/varstring.go's length-prefix idiom widened from a
// u8 to a varint length so residual JSON text of arbitrary size can be
// carried.
func EncodeStrIDsResid(vals []any) ([]byte, error) {
	seen := make(map[string]uint16)

	var dict []string

	ids := make([]uint16, len(vals))

	var residuals []string

	for i, v := range vals {
		if jsonvalue.IsNull(v) {
			ids[i] = strResidNullID
			continue
		}

		s, ok := jsonvalue.AsString(v)
		if !ok {
			return nil, errs.Wrap(errs.ErrInputInvalid, "column: str_ids_resid value at row %d is not a string", i)
		}

		if id, exists := seen[s]; exists {
			ids[i] = id
			continue
		}

		if len(dict) < strResidMaxDict {
			seen[s] = uint16(len(dict))
			ids[i] = uint16(len(dict))
			dict = append(dict, s)

			continue
		}

		ids[i] = strResidSentinelID
		residuals = append(residuals, s)
	}

	out := make([]byte, 0, 256)
	out = varint.AppendUint32(out, uint32(len(dict)))

	for _, s := range dict {
		out = varint.AppendUint32(out, uint32(len(s)))
		out = append(out, s...)
	}

	for _, id := range ids {
		out = append(out, byte(id), byte(id>>8))
	}

	out = varint.AppendUint32(out, uint32(len(residuals)))

	for _, s := range residuals {
		out = varint.AppendUint32(out, uint32(len(s)))
		out = append(out, s...)
	}

	return out, nil
}

// DecodeStrIDsResid inverts EncodeStrIDsResid.
func DecodeStrIDsResid(data []byte, rows int) ([]any, error) {
	dictCount, n, err := varint.Uint32(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid: %v", err)
	}

	off := n

	dict := make([]string, dictCount)

	for i := 0; i < int(dictCount); i++ {
		l, n, err := varint.Uint32(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid dict: %v", err)
		}

		off += n

		if off+int(l) > len(data) {
			return nil, errTruncatedColumn()
		}

		dict[i] = string(data[off : off+int(l)])
		off += int(l)
	}

	if off+rows*2 > len(data) {
		return nil, errTruncatedColumn()
	}

	ids := make([]uint16, rows)
	for i := 0; i < rows; i++ {
		ids[i] = uint16(data[off]) | uint16(data[off+1])<<8
		off += 2
	}

	residCount, n, err := varint.Uint32(data[off:])
	if err != nil {
		return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid residual count: %v", err)
	}

	off += n

	residuals := make([]string, residCount)

	for i := 0; i < int(residCount); i++ {
		l, n, err := varint.Uint32(data[off:])
		if err != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid residual: %v", err)
		}

		off += n

		if off+int(l) > len(data) {
			return nil, errTruncatedColumn()
		}

		residuals[i] = string(data[off : off+int(l)])
		off += int(l)
	}

	out := make([]any, rows)
	residIdx := 0

	for i, id := range ids {
		switch id {
		case strResidNullID:
			continue
		case strResidSentinelID:
			if residIdx >= len(residuals) {
				return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid residual underrun at row %d", i)
			}

			out[i] = residuals[residIdx]
			residIdx++
		default:
			if int(id) >= len(dict) {
				return nil, errs.Wrap(errs.ErrFrameCorrupt, "column: str_ids_resid id %d out of range", id)
			}

			out[i] = dict[id]
		}
	}

	return out, nil
}
