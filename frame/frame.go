// Package frame implements the two self-delimiting binary frames spec
// §4.3 defines: the line-presence frame (blank-line restoration) and the
// shape frame (one group of same-shaped rows' keys + columns).
//
// Both frames follow the teacher's fixed-header-then-payload layout
// (grounded on the now-removed section/numeric_header.go: an explicit
// magic, explicit length fields, and a Bytes/Parse round trip with no
// hidden padding) rather than a self-describing format like gob or a
// length-delimited protobuf stream.
package frame

import (
	"encoding/binary"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/bitset"
	"github.com/fayez-kaabi/json-ultra-compress/internal/pool"
	"github.com/fayez-kaabi/json-ultra-compress/internal/varint"
)

// LinePresenceMagic is the 2-byte tag at the front of a line-presence frame.
var LinePresenceMagic = [2]byte{'B', 'M'}

// ShapeMagic is the 1-byte tag at the front of a shape frame.
const ShapeMagic = 0xC1

// EncodeLinePresence writes the line-presence frame: magic, u32 line
// count, then the packed bitmap (bit=1 means the line held a non-blank
// JSON document; bit=0 means the original line was blank or
// whitespace-only and is restored as an empty line at decode).
func EncodeLinePresence(nonBlank *bitset.Set) []byte {
	out := make([]byte, 0, 2+4+len(nonBlank.Bytes()))
	out = append(out, LinePresenceMagic[:]...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(nonBlank.Len()))
	out = append(out, lenBuf[:]...)

	return append(out, nonBlank.Bytes()...)
}

// DecodeLinePresence parses a line-presence frame from the front of data,
// returning the bitmap and the number of bytes consumed.
func DecodeLinePresence(data []byte) (*bitset.Set, int, error) {
	if len(data) < 6 || data[0] != LinePresenceMagic[0] || data[1] != LinePresenceMagic[1] {
		return nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: bad line-presence magic")
	}

	lineCount := int(binary.LittleEndian.Uint32(data[2:6]))
	byteLen := bitset.ByteLen(lineCount)

	if len(data) < 6+byteLen {
		return nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: truncated line-presence bitmap")
	}

	bits := make([]byte, byteLen)
	copy(bits, data[6:6+byteLen])

	return bitset.FromBytes(bits, lineCount), 6 + byteLen, nil
}

// Column is one key's column payload within a shape frame: the key name
// and its already-tagged column.Encode output (tag byte + payload).
type Column struct {
	Key     string
	Payload []byte
}

// Shape is the decoded contents of one shape frame.
type Shape struct {
	Rows    int
	ShapeID uint64
	Keys    []string
	Columns []Column
}

// EncodeShape serialises a shape frame: magic, u32 rows, u64 shapeId, u16
// keyCount, then for each key its varint-length-prefixed name, and finally
// for each column its varint-length-prefixed payload in key order. Column
// payloads are length-prefixed (unlike a bare column.Encode call) so a
// selective decoder can skip over columns it wasn't asked to materialise
// without understanding their internal tag.
func EncodeShape(rows int, shapeID uint64, columns []Column) []byte {
	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.MustWrite([]byte{ShapeMagic})

	var u32buf [4]byte
	binary.LittleEndian.PutUint32(u32buf[:], uint32(rows))
	buf.MustWrite(u32buf[:])

	var u64buf [8]byte
	binary.LittleEndian.PutUint64(u64buf[:], shapeID)
	buf.MustWrite(u64buf[:])

	var u16buf [2]byte
	binary.LittleEndian.PutUint16(u16buf[:], uint16(len(columns)))
	buf.MustWrite(u16buf[:])

	for _, c := range columns {
		buf.MustWrite(varint.AppendUint32(nil, uint32(len(c.Key))))
		buf.MustWrite([]byte(c.Key))
	}

	for _, c := range columns {
		buf.MustWrite(varint.AppendUint32(nil, uint32(len(c.Payload))))
		buf.MustWrite(c.Payload)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// DecodeShapeHeader parses the magic/rows/shapeId/keys prefix of a shape
// frame and returns the byte offset at which column payloads begin, so a
// selective decoder can choose which payloads to actually parse.
func DecodeShapeHeader(data []byte) (rows int, shapeID uint64, keys []string, columnsOffset int, err error) {
	if len(data) < 1 || data[0] != ShapeMagic {
		return 0, 0, nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: bad shape magic")
	}

	if len(data) < 15 {
		return 0, 0, nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: truncated shape header")
	}

	rows = int(binary.LittleEndian.Uint32(data[1:5]))
	shapeID = binary.LittleEndian.Uint64(data[5:13])
	keyCount := int(binary.LittleEndian.Uint16(data[13:15]))

	off := 15
	keys = make([]string, keyCount)

	for i := 0; i < keyCount; i++ {
		l, n, verr := varint.Uint32(data[off:])
		if verr != nil {
			return 0, 0, nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: shape key length: %v", verr)
		}

		off += n

		if off+int(l) > len(data) {
			return 0, 0, nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: truncated shape key")
		}

		keys[i] = string(data[off : off+int(l)])
		off += int(l)
	}

	return rows, shapeID, keys, off, nil
}

// SkipColumn reads one varint-length-prefixed column payload starting at
// off in data without decoding it, returning the offset of the next
// column. Used by the selective decoder to fast-forward past keys the
// caller didn't request.
func SkipColumn(data []byte, off int) (next int, err error) {
	l, n, verr := varint.Uint32(data[off:])
	if verr != nil {
		return 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: column length: %v", verr)
	}

	off += n

	if off+int(l) > len(data) {
		return 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: truncated column payload")
	}

	return off + int(l), nil
}

// ReadColumn reads one varint-length-prefixed column payload starting at
// off, returning its bytes and the offset of the next column.
func ReadColumn(data []byte, off int) (payload []byte, next int, err error) {
	l, n, verr := varint.Uint32(data[off:])
	if verr != nil {
		return nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: column length: %v", verr)
	}

	off += n

	if off+int(l) > len(data) {
		return nil, 0, errs.Wrap(errs.ErrFrameCorrupt, "frame: truncated column payload")
	}

	return data[off : off+int(l)], off + int(l), nil
}

// FrameLen reports the total byte length of one shape frame starting at
// the front of data, without fully decoding its columns — used to walk a
// sequence of concatenated shape frames.
func FrameLen(data []byte) (int, error) {
	_, _, keys, off, err := DecodeShapeHeader(data)
	if err != nil {
		return 0, err
	}

	for range keys {
		off, err = SkipColumn(data, off)
		if err != nil {
			return 0, err
		}
	}

	return off, nil
}
