package pngcodec

import (
	"log/slog"

	"github.com/klauspost/compress/zlib"
)

// DefaultMaxImageBytes is the default limit on the decoded pixel buffer.
const DefaultMaxImageBytes = 1 << 30

// Option configures a Decode or Encode call.
//
// Example:
//
//	img, err := pngcodec.Decode(r, pngcodec.WithMaxImageBytes(64<<20))
//
//	err = pngcodec.Encode(w, img, pngcodec.WithCompressionLevel(zlib.BestCompression))
type Option func(*options)

// options holds per-call configuration.
type options struct {
	logger           *slog.Logger
	maxImageBytes    int64
	truecolor        bool
	compressionLevel int
}

// defaultOptions returns the default call options.
func defaultOptions() options {
	return options{
		maxImageBytes:    DefaultMaxImageBytes,
		compressionLevel: zlib.DefaultCompression,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithLogger sets the logger for a single call, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxImageBytes limits the memory a decode may allocate for pixel data.
// A decode that would exceed n fails with ErrOutOfMemory. Zero or negative
// disables the limit.
func WithMaxImageBytes(n int64) Option {
	return func(o *options) {
		o.maxImageBytes = n
	}
}

// WithTruecolor forces palette and low-depth grayscale sources to decode to
// 24bppRGB or 32bppPARGB instead of an indexed format.
func WithTruecolor(enabled bool) Option {
	return func(o *options) {
		o.truecolor = enabled
	}
}

// WithCompressionLevel sets the zlib level used by Encode, from
// zlib.HuffmanOnly to zlib.BestCompression. Out of range levels make
// Encode fail before writing.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.compressionLevel = level
	}
}
