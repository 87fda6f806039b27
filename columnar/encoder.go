// Package columnar implements the columnar front-end (component C4) and
// selective decoder (component C8): splitting an NDJSON document into
// same-shaped row groups, batching each group into windows, and encoding
// every column with the type-specialised codec from the column package.
//
// The group-then-batch-then-encode lifecycle is grounded on the teacher's
// top-level encoder orchestration in mebo.go (StartMetricID/AddDataPoint/
// EndMetric/Finish), generalised from "one metric's timestamped points"
// to "one JSON shape's rows", and on internal/collision.Tracker for
// shape-id collision handling.
package columnar

import (
	"bytes"
	"encoding/binary"

	"github.com/fayez-kaabi/json-ultra-compress/column"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/frame"
	"github.com/fayez-kaabi/json-ultra-compress/internal/bitset"
	"github.com/fayez-kaabi/json-ultra-compress/internal/collision"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
	"github.com/fayez-kaabi/json-ultra-compress/jsonvalue"
)

// WindowRows is the per-shape-group batch size spec §4.4 fixes at 4096
// rows: a shape frame never carries more than this many rows, and a
// larger shape group is split across several frames.
const WindowRows = 4096

// MinRowsForColumnar and MinBytesForColumnar are the fallback thresholds
// from spec §4.4: inputs smaller than this encode faster and smaller via
// the single-record path than via columnar grouping overhead.
const (
	MinRowsForColumnar  = 3
	MinBytesForColumnar = 64
)

type lineGroup struct {
	shapeID uint64
	keys    []string
	rows    [][]any // each entry is one row's values, ordered like keys
}

// Encode splits ndjson into lines, groups the non-blank ones by shape,
// batches each group into ≤WindowRows windows, and serialises the result
// as: line-presence frame, u32 segment count, a varint segment index per
// non-blank line (the order table), then one shape frame per segment.
func Encode(ndjson []byte) ([]byte, error) {
	lines := splitLines(ndjson)

	nonBlank := bitset.New(len(lines))

	groupOrder := make([]uint64, 0)
	groups := make(map[uint64]*lineGroup)
	tracker := collision.NewTracker()

	lineGroupID := make([]uint64, 0, len(lines))
	lineRowIdx := make([]int, 0, len(lines))

	for i, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		nonBlank.SetBit(i)

		obj, sortedKeys, err := jsonvalue.ParseObjectLine(line)
		if err != nil {
			return nil, errs.Wrap(errs.ErrInputInvalid, "columnar: line %d: %v", i, err)
		}

		serialization, id := jsonvalue.ShapeFingerprint(sortedKeys)

		gid := id
		if tracker.Track(id, serialization) {
			gid = tracker.DisambiguatedID(id, serialization)
		}

		g, ok := groups[gid]
		if !ok {
			g = &lineGroup{shapeID: gid, keys: sortedKeys}
			groups[gid] = g
			groupOrder = append(groupOrder, gid)
		}

		row := make([]any, len(sortedKeys))
		for k, key := range sortedKeys {
			row[k] = obj[key]
		}

		g.rows = append(g.rows, row)

		lineGroupID = append(lineGroupID, gid)
		lineRowIdx = append(lineRowIdx, len(g.rows)-1)
	}

	segBase := make(map[uint64]int, len(groupOrder))

	var segments [][]byte

	for _, gid := range groupOrder {
		g := groups[gid]
		segBase[gid] = len(segments)

		for start := 0; start < len(g.rows); start += WindowRows {
			end := start + WindowRows
			if end > len(g.rows) {
				end = len(g.rows)
			}

			chunk := g.rows[start:end]

			columns := make([]frame.Column, len(g.keys))

			for k, key := range g.keys {
				vals := make([]any, len(chunk))
				for r, row := range chunk {
					vals[r] = row[k]
				}

				tag := column.Select(vals)

				payload, err := column.Encode(tag, vals)
				if err != nil {
					return nil, errs.Wrap(errs.ErrInputInvalid, "columnar: shape %d key %q: %v", gid, key, err)
				}

				columns[k] = frame.Column{Key: key, Payload: payload}
			}

			segments = append(segments, frame.EncodeShape(len(chunk), gid, columns))
		}
	}

	out := frame.EncodeLinePresence(nonBlank)

	var u32buf [4]byte
	binary.LittleEndian.PutUint32(u32buf[:], uint32(len(segments)))
	out = append(out, u32buf[:]...)

	for i := range lineGroupID {
		segIdx := segBase[lineGroupID[i]] + lineRowIdx[i]/WindowRows
		out = varint.AppendUint32(out, uint32(segIdx))
	}

	for _, seg := range segments {
		out = append(out, seg...)
	}

	return out, nil
}

// ShouldApply reports whether ndjson clears the fallback thresholds spec
// §4.4 sets for columnar grouping to be worthwhile at all.
func ShouldApply(ndjson []byte) bool {
	if len(ndjson) < MinBytesForColumnar {
		return false
	}

	nonBlank := 0

	for _, line := range splitLines(ndjson) {
		if len(bytes.TrimSpace(line)) > 0 {
			nonBlank++
		}
	}

	return nonBlank >= MinRowsForColumnar
}

// splitLines splits ndjson on "\n", tolerating a trailing "\r" per line
// and a missing final newline, matching spec §4.4's line-splitting rule.
// A terminal "\n" yields a final empty line, so decoding reproduces it.
func splitLines(ndjson []byte) [][]byte {
	data := bytes.TrimPrefix(ndjson, []byte{0xEF, 0xBB, 0xBF})

	if len(data) == 0 {
		return nil
	}

	raw := bytes.Split(data, []byte("\n"))

	lines := make([][]byte, len(raw))
	for i, l := range raw {
		lines[i] = bytes.TrimSuffix(l, []byte("\r"))
	}

	return lines
}
