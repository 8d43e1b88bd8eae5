package pngcodec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
	"github.com/gogpu/pngcodec/internal/premul"
	"github.com/gogpu/pngcodec/internal/scratch"
	"github.com/gogpu/pngcodec/internal/stream"
)

// WriteFunc pushes all of p to the destination or returns an error.
type WriteFunc = stream.WriteFunc

// layout is the PNG bit depth and color type an image format encodes to.
type layout struct {
	depth     uint8
	colorType uint8
}

// encodeLayouts maps every encodable pixel format to its PNG layout.
var encodeLayouts = map[bitmap.PixelFormat]layout{
	bitmap.Format32bppARGB:   {8, pngfile.ColorRGBA},
	bitmap.Format32bppPARGB:  {8, pngfile.ColorRGBA},
	bitmap.Format32bppRGB:    {8, pngfile.ColorRGBA},
	bitmap.Format24bppRGB:    {8, pngfile.ColorRGB},
	bitmap.Format8bppIndexed: {8, pngfile.ColorPalette},
	bitmap.Format4bppIndexed: {4, pngfile.ColorPalette},
	bitmap.Format1bppIndexed: {1, pngfile.ColorPalette},
}

// CanEncode reports whether images of the given format can be encoded.
func CanEncode(format bitmap.PixelFormat) bool {
	_, ok := encodeLayouts[format]
	return ok
}

// Encode writes img to w as PNG.
//
// 32-bit formats are written as 8-bit RGBA (premultiplied pixels are
// converted back to straight alpha), 24bppRGB as 8-bit RGB and indexed
// formats as palette images. Any other format fails with
// ErrUnsupportedPixelFormat before anything is written.
func Encode(w io.Writer, img *bitmap.Image, opts ...Option) error {
	return encode(stream.NewWriter(w), img, newOptions(opts))
}

// EncodeFunc writes img as PNG through a write callback.
func EncodeFunc(write WriteFunc, img *bitmap.Image, opts ...Option) error {
	if write == nil {
		return encodeError(ErrInvalidParameter, errors.New("nil write function"))
	}
	return encode(stream.FromWriteFunc(write), img, newOptions(opts))
}

// EncodeFile writes img as PNG to the named file. The file is not created
// when the image cannot be encoded.
func EncodeFile(path string, img *bitmap.Image, opts ...Option) error {
	o := newOptions(opts)
	if _, err := prepare(img, o); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return encodeError(ErrIOFailure, err)
	}
	bw := bufio.NewWriter(f)
	if err := encode(stream.NewWriter(bw), img, o); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return encodeError(ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return encodeError(ErrIOFailure, err)
	}
	return nil
}

// prepare validates img and the options, returning the output layout.
func prepare(img *bitmap.Image, o options) (layout, error) {
	if img == nil || img.Released() {
		return layout{}, encodeError(ErrInvalidParameter, errors.New("nil or released image"))
	}
	l, ok := encodeLayouts[img.Format()]
	if !ok {
		return layout{}, encodeError(ErrUnsupportedPixelFormat,
			fmt.Errorf("pixel format %v", img.Format()))
	}
	if l.colorType == pngfile.ColorPalette && img.Palette().Count() == 0 {
		return layout{}, encodeError(ErrInvalidParameter, errors.New("indexed image without palette"))
	}
	if o.compressionLevel < zlib.HuffmanOnly || o.compressionLevel > zlib.BestCompression {
		return layout{}, encodeError(ErrInvalidParameter,
			fmt.Errorf("compression level %d", o.compressionLevel))
	}
	return l, nil
}

func encode(w *stream.Writer, img *bitmap.Image, o options) error {
	l, err := prepare(img, o)
	if err != nil {
		return err
	}
	hdr := pngfile.Header{
		Width:     uint32(img.Width()),  //nolint:gosec // G115: positive image dimension
		Height:    uint32(img.Height()), //nolint:gosec // G115: positive image dimension
		Depth:     l.depth,
		ColorType: l.colorType,
	}

	pw := pngfile.NewWriter(w)
	_ = pw.WriteSignature()
	_ = pw.WriteHeader(hdr)
	_ = pw.WriteGamma(pngfile.SRGBGamma)
	_ = pw.WriteChromaticities(pngfile.SRGBChromaticities)
	_ = pw.WriteSRGB(pngfile.SRGBPerceptual)
	if img.Flags().Has(bitmap.FlagHasRealDPI) {
		if x, y := img.DPI(); x > 0 && y > 0 {
			_ = pw.WritePhysical(pngfile.Physical{
				X:    uint32(math.Round(x / inchesPerMeter)),
				Y:    uint32(math.Round(y / inchesPerMeter)),
				Unit: pngfile.UnitMeter,
			})
		}
	}
	if l.colorType == pngfile.ColorPalette {
		colors, alpha := encodePalette(img.Palette(), 1<<l.depth)
		_ = pw.WritePalette(colors)
		if len(alpha) > 0 {
			_ = pw.WriteTransparency(alpha)
		}
	}
	if err := pw.Err(); err != nil {
		return encodeError(ErrIOFailure, err)
	}

	iw, err := pw.NewImageWriter(o.compressionLevel)
	if err != nil {
		return encodeError(ErrIOFailure, err)
	}
	line := scratch.Get(1 + hdr.RowBytes(img.Width()))
	defer scratch.Put(line)
	for y := range img.Height() {
		encodeRow(line[1:], img.Row(y), img.Format(), l.colorType)
		if err := iw.WriteRow(pngfile.FilterNone, line); err != nil {
			return encodeError(ErrIOFailure, err)
		}
	}
	if err := iw.Close(); err != nil {
		return encodeError(ErrIOFailure, err)
	}
	if err := pw.WriteEnd(); err != nil {
		return encodeError(ErrIOFailure, err)
	}

	o.logger.Debug("pngcodec: encoded",
		"width", img.Width(), "height", img.Height(),
		"format", img.Format(), "depth", l.depth, "colorType", l.colorType,
		"bytes", w.Written())
	return nil
}

// encodePalette converts at most limit palette entries to PLTE colors and
// returns the tRNS alpha values, trimmed of trailing opaque entries.
func encodePalette(p *bitmap.Palette, limit int) ([]pngfile.Color, []uint8) {
	n := min(p.Count(), limit)
	colors := make([]pngfile.Color, n)
	alpha := make([]uint8, n)
	last := -1
	for i := range n {
		c := p.Entries[i]
		colors[i] = pngfile.Color{R: c.R(), G: c.G(), B: c.B()}
		alpha[i] = c.A()
		if c.A() != 0xFF {
			last = i
		}
	}
	return colors, alpha[:last+1]
}

// encodeRow converts one stored row into PNG sample order.
func encodeRow(dst, src []byte, format bitmap.PixelFormat, colorType uint8) {
	switch colorType {
	case pngfile.ColorPalette:
		copy(dst, src)
	case pngfile.ColorRGB:
		for x, d := 0, 0; d < len(dst); x, d = x+4, d+3 {
			dst[d], dst[d+1], dst[d+2] = src[x+2], src[x+1], src[x]
		}
	case pngfile.ColorRGBA:
		for x := 0; x < len(dst); x += 4 {
			b, g, r, a := src[x], src[x+1], src[x+2], src[x+3]
			switch {
			case format == bitmap.Format32bppRGB:
				a = 0xFF
			case format == bitmap.Format32bppPARGB && a != 0xFF:
				r = premul.Unmultiply(r, a)
				g = premul.Unmultiply(g, a)
				b = premul.Unmultiply(b, a)
			}
			dst[x], dst[x+1], dst[x+2], dst[x+3] = r, g, b, a
		}
	}
}
