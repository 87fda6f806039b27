// Package varint implements the LEB128-style u32 varint and zigzag coding
// used throughout the column encoders and frame headers. The encoding is
// generalised from the delta-of-delta varint idiom the teacher uses for
// timestamps (binary.PutUvarint/binary.Uvarint over int64 deltas): a u32
// form for lengths and counts, and a u64 form carrying the null-sentinel
// convention for integer column values.
package varint

import "fmt"

// MaxLen is the longest byte run a valid u32 varint can occupy. Five
// 7-bit groups cover the full 32-bit range; a sixth continuation byte can
// only mean a corrupt or adversarial stream.
const MaxLen = 5

// AppendUint32 appends the LEB128 encoding of v to dst and returns the
// extended slice. encode(0) produces a single 0x00 byte.
func AppendUint32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Uint32 decodes a u32 varint from the front of data, returning the value
// and the number of bytes consumed. It fails if the sequence runs off the
// buffer before terminating or if more than MaxLen bytes would be consumed.
func Uint32(data []byte) (uint32, int, error) {
	var result uint32

	for i := 0; i < MaxLen; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("varint: truncated after %d bytes", i)
		}

		b := data[i]
		result |= uint32(b&0x7f) << (7 * uint(i))

		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}

	return 0, 0, fmt.Errorf("varint: overflow, no terminator within %d bytes", MaxLen)
}

// ZigZagEncode64 is the form used for column integer values (signed
// 53-bit-safe range) and delta-of-delta timestamp columns, mirroring the
// bit trick the teacher's TimestampDeltaEncoder uses: (v << 1) ^ (v >> 63).
func ZigZagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// ZigZagDecode64 inverts ZigZagEncode64.
func ZigZagDecode64(z uint64) int64 {
	return int64(z>>1) ^ -int64(z&1)
}

// AppendUint64 appends the LEB128 encoding of a 64-bit unsigned value,
// used by EncodeNullableInt64 for every integer column, where zigzagged
// magnitudes can exceed 32 bits.
func AppendUint64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Uint64 decodes a u64 varint from the front of data.
func Uint64(data []byte) (uint64, int, error) {
	var result uint64

	const maxLen64 = 10

	for i := 0; i < maxLen64; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("varint: truncated after %d bytes", i)
		}

		b := data[i]
		result |= uint64(b&0x7f) << (7 * uint(i))

		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}

	return 0, 0, fmt.Errorf("varint: overflow, no terminator within %d bytes", maxLen64)
}

// EncodeNullableInt64 applies the column null-sentinel convention from
// spec §4.1: store zz(value)+1; 0 denotes "null in this row".
func EncodeNullableInt64(dst []byte, v int64, isNull bool) []byte {
	if isNull {
		return AppendUint64(dst, 0)
	}

	return AppendUint64(dst, ZigZagEncode64(v)+1)
}

// DecodeNullableInt64 inverts EncodeNullableInt64, reporting isNull when
// the sentinel 0 was read.
func DecodeNullableInt64(data []byte) (value int64, isNull bool, n int, err error) {
	raw, n, err := Uint64(data)
	if err != nil {
		return 0, false, 0, err
	}

	if raw == 0 {
		return 0, true, n, nil
	}

	return ZigZagDecode64(raw - 1), false, n, nil
}
