package backend

import "github.com/fayez-kaabi/json-ultra-compress/format"

// ZstdCodec is the "dense" back-end (format.BackendDense): best ratio,
// moderate speed. Its Compress/Decompress methods live in zstd_pure.go
// (pure Go, default build) and zstd_cgo.go (cgo, opt-in via the nobuild
// build tag), grounded on the teacher's compress/zstd_pure.go and
// compress/zstd_cgo.go split for exactly the same reason: a pure-Go
// default that works everywhere, with an opt-in cgo path
// (github.com/valyala/gozstd) for deployments that can pay the cgo cost
// for faster compression.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

func (c ZstdCodec) Tag() format.BackendTag { return format.BackendDense }
