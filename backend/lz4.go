package backend

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// lz4CompressorPool pools lz4.Compressor instances, grounded on the
// teacher's compress/lz4.go pooling strategy (the compressor carries
// internal hash-table state worth reusing across calls).
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// lz4.Compressor.CompressBlock reports incompressible input as a
// zero-length block, which is indistinguishable on the wire from "no
// data" once the surrounding envelope only tracks length. A leading tag
// byte disambiguates the two so high-entropy rows (a trace-id, a base64
// blob) never get silently dropped.
const (
	lz4TagCompressed byte = 0
	lz4TagVerbatim   byte = 1
)

// LZ4Codec is the "optional" back-end (format.BackendOptional): very fast
// decompression, moderate ratio. Grounded on compress/lz4.go verbatim,
// including its adaptive-buffer-doubling decompress strategy.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}

	if n == 0 {
		out := make([]byte, 1+len(data))
		out[0] = lz4TagVerbatim
		copy(out[1:], data)

		return out, nil
	}

	dst[0] = lz4TagCompressed

	return dst[:1+n], nil
}

func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	tag, payload := data[0], data[1:]

	if tag == lz4TagVerbatim {
		out := make([]byte, len(payload))
		copy(out, payload)

		return out, nil
	}

	bufSize := len(payload) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)

		n, err := lz4.UncompressBlock(payload, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

func (c LZ4Codec) Tag() format.BackendTag { return format.BackendOptional }
