package backend

import "github.com/fayez-kaabi/json-ultra-compress/format"

// IdentityCodec bypasses compression entirely, grounded on the teacher's
// NoOpCompressor. It is not registered with GetCodec, so the hybrid
// selector never picks it; the container's "identity" codec stores the
// body as-is without going through this type.
type IdentityCodec struct{}

var _ Codec = IdentityCodec{}

// NewIdentityCodec returns a codec that copies data through unchanged.
func NewIdentityCodec() IdentityCodec { return IdentityCodec{} }

func (IdentityCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (IdentityCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
func (IdentityCodec) Tag() format.BackendTag                 { return format.BackendDense }
