// Package pngfile reads and writes the PNG container: signature, chunk
// framing and CRCs, the header and ancillary chunks, and the zlib-compressed,
// filtered (and possibly interlaced) image data.
//
// Reading yields raw scanlines at the source bit depth with filters and
// interlacing removed. Pixel interpretation is left to the caller.
//
// References:
//   - PNG specification: https://www.w3.org/TR/png/
package pngfile

import (
	"errors"
	"fmt"
)

// Signature is the 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Color types, as defined by PNG.
const (
	ColorGray      = 0
	ColorRGB       = 2
	ColorPalette   = 3
	ColorGrayAlpha = 4
	ColorRGBA      = 6
)

// Filter types, as defined by PNG.
const (
	FilterNone    = 0
	FilterSub     = 1
	FilterUp      = 2
	FilterAverage = 3
	FilterPaeth   = 4
	nFilter       = 5
)

// Interlace methods.
const (
	InterlaceNone  = 0
	InterlaceAdam7 = 1
)

// Chunk types handled by this package.
const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
	chunkTRNS = "tRNS"
	chunkGAMA = "gAMA"
	chunkCHRM = "cHRM"
	chunkSRGB = "sRGB"
	chunkPHYS = "pHYs"
	chunkICCP = "iCCP"
	chunkTEXT = "tEXt"
	chunkZTXT = "zTXt"
	chunkITXT = "iTXt"
)

// UnitMeter is the pHYs unit specifier for pixels per meter.
const UnitMeter = 1

// maxChunkLength is the largest chunk length PNG allows.
const maxChunkLength = 0x7fffffff

// Decoding stage.
// IHDR must come first, PLTE (if present) before IDAT, IDAT chunks must be
// consecutive, and IEND ends the stream.
const (
	dsStart = iota
	dsSeenIHDR
	dsSeenPLTE
	dsSeenIDAT
	dsSeenIEND
)

// A FormatError reports that the input is not a valid PNG.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

var chunkOrderError = FormatError("chunk out of order")

// An UnsupportedError reports that the input uses a valid but unimplemented PNG feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

// ErrTooLarge is returned when the decoded image would exceed the
// configured memory limit.
var ErrTooLarge = errors.New("png: image exceeds memory limit")

func tooLarge(need, limit int64) error {
	return fmt.Errorf("%w: need %d bytes, limit %d", ErrTooLarge, need, limit)
}

// isCritical reports whether a chunk type is critical (uppercase first letter).
func isCritical(name string) bool {
	return len(name) == 4 && name[0]&0x20 == 0
}
