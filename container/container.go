// Package container implements the JCO1 binary envelope from spec §4.7:
// a magic, a JSON header describing how the body was produced, a CRC32
// checksum of the body, and the body itself.
//
// The magic-then-header-then-checksummed-body layout is grounded on the
// (now-removed) teacher section/numeric_header.go's Flag/Parse/Bytes
// split — flags and fixed fields up front, payload after — adapted here
// to a JSON header because spec §4.7 mandates a human-inspectable header
// rather than a packed binary struct.
package container

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/segmentio/encoding/json"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// Magic is the 4-byte tag at the front of every container.
var Magic = [4]byte{'J', 'C', 'O', '1'}

// Version is the current header schema version.
const Version = 1

// Header is the container's JSON-encoded metadata, written between the
// magic and the CRC32+body.
type Header struct {
	Codec         format.Codec `json:"codec"`
	Version       int          `json:"version"`
	CreatedAt     int64        `json:"createdAt"`
	NDJSON        bool         `json:"ndjson"`
	KeyDictInline bool         `json:"keyDictInline"`
}

// Encode assembles a container: Magic, u32 headerLen, header JSON, u32
// CRC32(body), body.
func Encode(h Header, body []byte) ([]byte, error) {
	h.Version = Version

	headerBytes, err := json.Marshal(h)
	if err != nil {
		return nil, errs.Wrap(errs.ErrHeaderInvalid, "container: marshal header: %v", err)
	}

	out := make([]byte, 0, 4+4+len(headerBytes)+4+len(body))
	out = append(out, Magic[:]...)

	var u32buf [4]byte
	binary.LittleEndian.PutUint32(u32buf[:], uint32(len(headerBytes)))
	out = append(out, u32buf[:]...)
	out = append(out, headerBytes...)

	binary.LittleEndian.PutUint32(u32buf[:], crc32.ChecksumIEEE(body))
	out = append(out, u32buf[:]...)
	out = append(out, body...)

	return out, nil
}

// Decode parses a container, verifying its magic and CRC32 before
// returning the header and body. A CRC mismatch or truncated/malformed
// envelope is reported as errs.ErrContainerCorrupt.
func Decode(data []byte) (Header, []byte, error) {
	if len(data) < 8 || data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return Header{}, nil, errs.Wrap(errs.ErrContainerCorrupt, "container: bad magic")
	}

	headerLen := int(binary.LittleEndian.Uint32(data[4:8]))
	off := 8

	if off+headerLen > len(data) {
		return Header{}, nil, errs.Wrap(errs.ErrContainerCorrupt, "container: truncated header")
	}

	var h Header
	if err := json.Unmarshal(data[off:off+headerLen], &h); err != nil {
		return Header{}, nil, errs.Wrap(errs.ErrHeaderInvalid, "container: unmarshal header: %v", err)
	}

	if h.Version != Version {
		return Header{}, nil, errs.Wrap(errs.ErrHeaderInvalid, "container: unsupported version %d", h.Version)
	}

	off += headerLen

	if off+4 > len(data) {
		return Header{}, nil, errs.Wrap(errs.ErrContainerCorrupt, "container: truncated crc")
	}

	wantCRC := binary.LittleEndian.Uint32(data[off : off+4])
	off += 4

	body := data[off:]

	if crc32.ChecksumIEEE(body) != wantCRC {
		return Header{}, nil, errs.Wrap(errs.ErrContainerCorrupt, "container: crc mismatch")
	}

	return h, body, nil
}
