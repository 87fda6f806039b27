// Package backend implements the entropy back-ends and hybrid selector of
// spec §4.6: a pluggable Codec interface, concrete Zstd/S2/LZ4/identity
// coders, and a windowed scout-and-coalesce selector that picks per-window
// back-ends and records its choice in a compact envelope.
//
// The interface split and factory/registry pattern are grounded on the
// teacher's compress/codec.go (Compressor/Decompressor/Codec interfaces,
// CreateCodec/GetCodec), generalised from "one mebo payload" to "one
// window of column-frame bytes".
package backend

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// Compressor compresses a block of bytes.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a block of bytes produced by the matching
// Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one entropy coder.
type Codec interface {
	Compressor
	Decompressor
	// Tag reports the stable wire tag this codec's output is marked with.
	Tag() format.BackendTag
}

var builtinCodecs = map[format.BackendTag]Codec{
	format.BackendDense:    NewZstdCodec(),
	format.BackendFast:     NewS2Codec(),
	format.BackendOptional: NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec registered for tag.
func GetCodec(tag format.BackendTag) (Codec, error) {
	c, ok := builtinCodecs[tag]
	if !ok {
		return nil, errs.Wrap(errs.ErrBackendFailed, "backend: no codec registered for tag %s", tag)
	}

	return c, nil
}
