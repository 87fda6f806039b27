// Package jsonvalue implements the dynamic JSON value handling shared by
// the columnar front-end and the single-record path: parsing NDJSON
// lines/whole documents, canonicalising them (recursive key sort, exact
// number-text preservation), and computing shape fingerprints.
//
// It is grounded on the canonical-JSON approach taken by
// gibson042/canonicaljson-go (sorted object keys, exact-width number
// printing) but reimplemented against github.com/segmentio/encoding/json's
// json.Number-preserving decoder instead of forking the standard
// encoder: segmentio's Marshal already sorts map[string]any keys the same
// way encoding/json does, so canonicalisation falls out of a plain
// decode-then-encode round trip once numbers are decoded as json.Number
// rather than float64.
package jsonvalue

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// ShapeSeparator is the U+0001 control character spec §3 uses to join a
// sorted key list into its canonical serialisation.
const ShapeSeparator = "\x01"

// Decode parses a single JSON value (object, array, or scalar) from data,
// preserving integer/float number text via json.Number rather than
// collapsing everything to float64.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// ParseObjectLine parses one NDJSON line and requires it to decode to a
// JSON object (not a bare array or scalar), matching spec §4.4's line
// grouping contract. It returns the object and its sorted key list.
func ParseObjectLine(line []byte) (obj map[string]any, sortedKeys []string, err error) {
	v, err := Decode(line)
	if err != nil {
		return nil, nil, err
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("jsonvalue: line does not decode to a JSON object")
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return m, keys, nil
}

// ShapeFingerprint computes the canonical serialisation and FNV-1a64 id
// of a sorted key list, per spec §3's Shape fingerprint entity.
func ShapeFingerprint(sortedKeys []string) (serialization string, id uint64) {
	serialization = strings.Join(sortedKeys, ShapeSeparator)

	h := fnv.New64a()
	_, _ = h.Write([]byte(serialization))

	return serialization, h.Sum64()
}

// Marshal serialises v compactly. Because v was produced by Decode (maps
// use json.Number for numerics), object keys come out sorted and number
// text is reproduced exactly as the source held it — this is what makes
// Marshal(Decode(x)) canonical without a bespoke printer.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// CanonicalizeLine parses and re-serialises a single JSON document,
// sorting object keys recursively and preserving array order and number
// text (spec §4.5's single-record canonicalisation). Idempotent: calling
// it again on its own output returns byte-identical text (spec invariant
// §8.8).
func CanonicalizeLine(line []byte) ([]byte, error) {
	v, err := Decode(line)
	if err != nil {
		return nil, err
	}

	return Marshal(v)
}

// AsInt64 reports whether v (as decoded by Decode, i.e. a json.Number)
// represents an exact integer within the signed 53-bit safe range spec
// §4.2 requires for the integer column encoders; floats and oversized
// integers are not eligible and must fall back to RAW_JSON.
func AsInt64(v any) (int64, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	s := string(num)
	if strings.ContainsAny(s, ".eE") {
		return 0, false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}

	const safeMax = int64(1) << 53
	if n > safeMax || n < -safeMax {
		return 0, false
	}

	return n, true
}

// AsBool reports whether v is a JSON boolean.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsString reports whether v is a JSON string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// IsNull reports whether v is the JSON null value (decoded as untyped nil).
func IsNull(v any) bool {
	return v == nil
}
