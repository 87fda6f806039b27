//go:build nobuild

package backend

import "github.com/valyala/gozstd"

// Compress/Decompress via cgo's gozstd binding, grounded on compress/
// zstd_cgo.go verbatim. Gated behind the unsatisfiable "nobuild" tag, same
// as the teacher: this path documents the cgo option without making a
// cgo toolchain a hard requirement for the default build.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
