package pngcodec

import (
	"errors"
	"io"

	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
	"github.com/gogpu/pngcodec/internal/stream"
)

// Operation errors. Every error returned by a decode matches ErrDecode and
// every error returned by an encode matches ErrEncode.
var (
	ErrDecode = errors.New("pngcodec: decode failed")
	ErrEncode = errors.New("pngcodec: encode failed")
)

// Failure kinds. Every returned error matches exactly one of these.
var (
	// ErrOutOfMemory is returned when the image exceeds the configured size
	// limit or its dimensions overflow.
	ErrOutOfMemory = errors.New("pngcodec: out of memory")

	// ErrMalformedStream is returned for invalid or truncated PNG data.
	ErrMalformedStream = errors.New("pngcodec: malformed stream")

	// ErrUnsupportedPixelFormat is returned when an image cannot be encoded
	// in its pixel format.
	ErrUnsupportedPixelFormat = errors.New("pngcodec: unsupported pixel format")

	// ErrIOFailure is returned when the underlying stream fails.
	ErrIOFailure = errors.New("pngcodec: I/O failure")

	// ErrInvalidParameter is returned for a nil image or invalid option.
	ErrInvalidParameter = errors.New("pngcodec: invalid parameter")
)

// codecError carries the operation, the failure kind and the cause.
type codecError struct {
	op   error
	kind error
	err  error
}

func (e *codecError) Error() string {
	if e.err == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *codecError) Unwrap() []error {
	if e.err == nil {
		return []error{e.op, e.kind}
	}
	return []error{e.op, e.kind, e.err}
}

func decodeError(kind, err error) error {
	return &codecError{op: ErrDecode, kind: kind, err: err}
}

func encodeError(kind, err error) error {
	return &codecError{op: ErrEncode, kind: kind, err: err}
}

// classifyRead maps a container or stream error to a failure kind.
func classifyRead(err error) error {
	var (
		fe pngfile.FormatError
		ue pngfile.UnsupportedError
	)
	switch {
	case errors.Is(err, pngfile.ErrTooLarge), errors.Is(err, bitmap.ErrTooLarge):
		return ErrOutOfMemory
	case errors.As(err, &fe), errors.As(err, &ue),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, stream.ErrShortRead), errors.Is(err, stream.ErrReadFailed):
		return ErrMalformedStream
	default:
		return ErrIOFailure
	}
}
