// Package errs defines the error kinds surfaced across the module's package
// boundaries. Each kind is a sentinel that callers can match with errors.Is;
// the core never substitutes data or recovers silently, so every fatal
// condition maps to exactly one of these.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerCorrupt covers bad magic, a short header, a CRC mismatch,
	// or a truncated body in the container envelope.
	ErrContainerCorrupt = errors.New("jcompress: container corrupt")

	// ErrHeaderInvalid covers a header that fails to parse as JSON, an
	// unsupported version, or an unrecognised codec name.
	ErrHeaderInvalid = errors.New("jcompress: header invalid")

	// ErrBackendFailed covers an entropy coder raising an error with no
	// surviving alternative.
	ErrBackendFailed = errors.New("jcompress: backend failed")

	// ErrFrameCorrupt covers a bad frame magic, inconsistent length
	// prefixes, an unknown column type tag, an out-of-range enum id, or a
	// varint overflow while parsing a frame.
	ErrFrameCorrupt = errors.New("jcompress: frame corrupt")

	// ErrInputInvalid covers non-UTF-8 bytes where text was required
	// during encode.
	ErrInputInvalid = errors.New("jcompress: input invalid")
)

// Wrap annotates kind with a formatted message while keeping errors.Is(err,
// kind) true, mirroring the teacher's practice of returning named sentinels
// from package-boundary Parse functions.
func Wrap(kind error, format string, args ...any) error {
	return &wrapped{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.kind.Error() + ": " + w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
