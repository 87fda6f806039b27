package columnar

import (
	"bytes"
	"encoding/binary"

	"github.com/fayez-kaabi/json-ultra-compress/column"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/frame"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// Decode reconstructs the original NDJSON text from data produced by
// Encode. If fields is non-empty, only those keys are decoded per row
// (objects missing a requested key simply omit it, matching spec §4.8's
// selective-decode contract); a nil or empty fields decodes every column.
func Decode(data []byte, fields []string) ([]byte, error) {
	nonBlank, off, err := frame.DecodeLinePresence(data)
	if err != nil {
		return nil, err
	}

	if len(data) < off+4 {
		return nil, errs.Wrap(errs.ErrFrameCorrupt, "columnar: truncated segment count")
	}

	segCount := int(binary.LittleEndian.Uint32(data[off : off+4]))
	off += 4

	totalLines := nonBlank.Len()
	nonBlankCount := nonBlank.Count()

	lineSegIdx := make([]int, nonBlankCount)

	for i := 0; i < nonBlankCount; i++ {
		v, n, verr := varint.Uint32(data[off:])
		if verr != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "columnar: order table entry %d: %v", i, verr)
		}

		off += n
		lineSegIdx[i] = int(v)
	}

	var want map[string]bool
	if len(fields) > 0 {
		want = make(map[string]bool, len(fields))
		for _, f := range fields {
			want[f] = true
		}
	}

	segRows := make([][]map[string]any, segCount)

	for s := 0; s < segCount; s++ {
		rows, _, keys, colOff, herr := frame.DecodeShapeHeader(data[off:])
		if herr != nil {
			return nil, herr
		}

		objs := make([]map[string]any, rows)
		for r := range objs {
			objs[r] = make(map[string]any)
		}

		cursor := colOff

		for _, key := range keys {
			include := want == nil || want[key]

			if !include {
				next, serr := frame.SkipColumn(data[off:], cursor)
				if serr != nil {
					return nil, serr
				}

				cursor = next

				continue
			}

			payload, next, rerr := frame.ReadColumn(data[off:], cursor)
			if rerr != nil {
				return nil, rerr
			}

			cursor = next

			vals, derr := column.Decode(payload, rows)
			if derr != nil {
				return nil, errs.Wrap(errs.ErrFrameCorrupt, "columnar: segment %d key %q: %v", s, key, derr)
			}

			for r, v := range vals {
				if v == nil {
					objs[r][key] = nil
					continue
				}

				objs[r][key] = v
			}
		}

		segRows[s] = objs
		off += cursor
	}

	segCursor := make([]int, segCount)

	var out bytes.Buffer

	nonBlankI := 0

	for i := 0; i < totalLines; i++ {
		if i > 0 {
			out.WriteByte('\n')
		}

		if !nonBlank.Get(i) {
			continue
		}

		segIdx := lineSegIdx[nonBlankI]
		nonBlankI++

		row := segRows[segIdx][segCursor[segIdx]]
		segCursor[segIdx]++

		text, merr := jsonvalue.Marshal(row)
		if merr != nil {
			return nil, errs.Wrap(errs.ErrFrameCorrupt, "columnar: line %d marshal: %v", i, merr)
		}

		out.Write(text)
	}

	return out.Bytes(), nil
}
