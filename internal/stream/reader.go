// Package stream adapts files, io.Reader/io.Writer values and caller
// callbacks to the pull/push interface used by the PNG codec.
package stream

import (
	"errors"
	"io"
)

// Stream errors.
var (
	// ErrShortRead is returned when a read cannot be topped up to the
	// requested length.
	ErrShortRead = errors.New("stream: short read")

	// ErrReadFailed is returned when a read callback reports failure.
	ErrReadFailed = errors.New("stream: read failed")

	// ErrWriteFailed is returned when the destination rejects a write.
	ErrWriteFailed = errors.New("stream: write failed")
)

// ReadFunc pulls up to len(p) bytes into p and returns how many were read.
// A result of 0 or less signals failure or end of stream.
type ReadFunc func(p []byte) int

// Reader is the decode-side byte source.
//
// Reader implements io.Reader so it can feed decompressors directly;
// ReadFull provides the exact-length semantics the container parser needs.
type Reader struct {
	src  io.Reader
	read int64
}

// NewReader returns a Reader pulling from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// FromFunc returns a Reader pulling from a callback.
func FromFunc(fn ReadFunc) *Reader {
	return &Reader{src: funcReader(fn)}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	r.read += int64(n)
	return n, err
}

// ReadFull reads exactly len(p) bytes, calling the source repeatedly.
// It returns io.EOF if the stream ended before any byte was read and
// ErrShortRead if it ended part way.
func (r *Reader) ReadFull(p []byte) error {
	_, err := io.ReadFull(r, p)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ErrShortRead
	default:
		return err
	}
}

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int64 {
	return r.read
}

type funcReader ReadFunc

func (f funcReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := f(p)
	if n <= 0 {
		return 0, ErrReadFailed
	}
	if n > len(p) {
		return 0, ErrReadFailed
	}
	return n, nil
}
