package backend

import (
	"github.com/klauspost/compress/s2"

	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// S2Codec is the "fast" back-end (format.BackendFast): balanced speed and
// ratio, grounded on the teacher's compress/s2.go verbatim.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec { return S2Codec{} }

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

func (c S2Codec) Tag() format.BackendTag { return format.BackendFast }
