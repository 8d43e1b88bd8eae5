package stream

import (
	"fmt"
	"io"
)

// WriteFunc pushes all of p to the destination.
type WriteFunc func(p []byte) error

// Writer is the encode-side byte sink.
//
// The first failure is sticky: later writes are dropped and report the
// same error. There is no partial-write recovery.
type Writer struct {
	dst     io.Writer
	written int64
	err     error
}

// NewWriter returns a Writer pushing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{dst: w}
}

// FromWriteFunc returns a Writer pushing to a callback.
func FromWriteFunc(fn WriteFunc) *Writer {
	return &Writer{dst: funcWriter(fn)}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.dst.Write(p)
	w.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = fmt.Errorf("%w: %w", ErrWriteFailed, err)
		return n, w.err
	}
	return n, nil
}

// Written returns the number of bytes accepted by the destination.
func (w *Writer) Written() int64 {
	return w.written
}

// Err returns the sticky write error, if any.
func (w *Writer) Err() error {
	return w.err
}

type funcWriter WriteFunc

func (f funcWriter) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
