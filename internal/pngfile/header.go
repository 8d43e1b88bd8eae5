package pngfile

import (
	"bytes"
	"fmt"

	bst "github.com/mixcode/binarystruct"
)

// Header is the IHDR chunk payload. Values are stored big-endian.
type Header struct {
	Width       uint32
	Height      uint32
	Depth       uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// headerLength is the IHDR payload size.
const headerLength = 13

// Channels returns the number of samples per pixel for the color type.
func (h Header) Channels() int {
	switch h.ColorType {
	case ColorGray, ColorPalette:
		return 1
	case ColorGrayAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	default:
		return 0
	}
}

// BitsPerPixel returns the number of bits one pixel occupies in a scanline.
func (h Header) BitsPerPixel() int {
	return int(h.Depth) * h.Channels()
}

// RowBytes returns the unfiltered scanline length for width pixels.
func (h Header) RowBytes(width int) int {
	return (h.BitsPerPixel()*width + 7) / 8
}

// Validate checks the header against the combinations PNG allows.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return FormatError("non-positive dimension")
	}
	if h.Width > maxChunkLength || h.Height > maxChunkLength {
		return FormatError("dimension exceeds 2^31-1")
	}
	if h.Compression != 0 {
		return UnsupportedError("compression method")
	}
	if h.Filter != 0 {
		return UnsupportedError("filter method")
	}
	if h.Interlace != InterlaceNone && h.Interlace != InterlaceAdam7 {
		return FormatError("invalid interlace method")
	}

	ok := false
	switch h.ColorType {
	case ColorGray:
		ok = h.Depth == 1 || h.Depth == 2 || h.Depth == 4 || h.Depth == 8 || h.Depth == 16
	case ColorPalette:
		ok = h.Depth == 1 || h.Depth == 2 || h.Depth == 4 || h.Depth == 8
	case ColorRGB, ColorGrayAlpha, ColorRGBA:
		ok = h.Depth == 8 || h.Depth == 16
	}
	if !ok {
		return UnsupportedError(fmt.Sprintf("bit depth %d, color type %d", h.Depth, h.ColorType))
	}
	return nil
}

func parseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) != headerLength {
		return h, FormatError("bad IHDR length")
	}
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &h); err != nil {
		return h, FormatError("bad IHDR: " + err.Error())
	}
	return h, h.Validate()
}
