// Package format defines the wire-stable type tags shared by the column
// encoders and the entropy back-end selector, adapted from the teacher's
// format package (which enumerates its own encoding/compression types the
// same way: small uint8 enums with a stable wire value and a String()
// for diagnostics).
package format

// ColumnType is the wire tag written at the front of every column's
// payload (spec §4.2). Values are stable across versions: a decoder must
// be able to read a tag it doesn't otherwise understand as ErrFrameCorrupt
// rather than guessing.
type ColumnType uint8

const (
	// ColumnIntVarint stores each non-null value as a nullable zigzag
	// varint with no delta transform.
	ColumnIntVarint ColumnType = 0
	// ColumnDeltaZigzag stores the first value raw and every subsequent
	// value as a zigzag-varint delta from its predecessor.
	ColumnDeltaZigzag ColumnType = 1
	// ColumnTimeDoD stores timestamps via delta-of-delta, zigzag, and
	// varint. Reserved per spec §4.2/§9: this implementation never
	// selects it automatically (see SPEC_FULL.md) but implements the
	// codec so a decoder can still read a producer's output.
	ColumnTimeDoD ColumnType = 2
	// ColumnBoolRLE stores booleans (and nulls) as run-length groups.
	ColumnBoolRLE ColumnType = 3
	// ColumnEnumIDs stores a small (<=16) dictionary of distinct strings
	// plus one id byte per row.
	ColumnEnumIDs ColumnType = 4
	// ColumnStrIDsResid is the supplemented large-cardinality sibling of
	// ColumnEnumIDs: up to 65534 dictionary entries with a RAW_JSON
	// residual channel for values that don't fit.
	ColumnStrIDsResid ColumnType = 5
	// ColumnRawJSON is the universal fallback: each row's JSON text,
	// length-prefixed.
	ColumnRawJSON ColumnType = 6
)

// String renders the tag name for diagnostics and CLI verbose output.
func (t ColumnType) String() string {
	switch t {
	case ColumnIntVarint:
		return "INT_VARINT"
	case ColumnDeltaZigzag:
		return "DELTA_ZIGZAG"
	case ColumnTimeDoD:
		return "TIME_DOD"
	case ColumnBoolRLE:
		return "BOOL_RLE"
	case ColumnEnumIDs:
		return "ENUM_IDS"
	case ColumnStrIDsResid:
		return "STR_IDS_WITH_RESID"
	case ColumnRawJSON:
		return "RAW_JSON"
	default:
		return "UNKNOWN"
	}
}

// BackendTag is the stable 8-bit tag a back-end reports itself as, used
// in the hybrid selector's windowed and solid envelopes (spec §4.6). The
// container header names its codec with a Codec string instead.
type BackendTag uint8

const (
	// BackendDense is the best-ratio, slower coder (Zstd).
	BackendDense BackendTag = 0
	// BackendFast is the fast/ubiquitous coder (S2).
	BackendFast BackendTag = 1
	// BackendOptional is the additional coder (LZ4 in this
	// implementation), registered in the same built-in table as the
	// other two.
	BackendOptional BackendTag = 2
)

// String renders the tag name for diagnostics.
func (b BackendTag) String() string {
	switch b {
	case BackendDense:
		return "dense"
	case BackendFast:
		return "fast"
	case BackendOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// Codec is the container header's `codec` field (spec §4.7/§6.1).
type Codec string

const (
	CodecFast     Codec = "fast"
	CodecDense    Codec = "dense"
	CodecIdentity Codec = "identity"
	CodecHybrid   Codec = "hybrid"
)
