package pngcodec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
	"github.com/gogpu/pngcodec/internal/stream"
)

// ReadFunc pulls up to len(p) bytes into p and returns how many were read.
// A result of 0 or less signals failure or end of stream.
type ReadFunc = stream.ReadFunc

// Decode reads a PNG image from r.
//
// Palette and grayscale images of up to 8 bits per sample decode to an
// indexed format with a palette. Everything else decodes to 24bppRGB, or to
// 32bppPARGB when the image carries alpha.
func Decode(r io.Reader, opts ...Option) (*bitmap.Image, error) {
	return decode(stream.NewReader(r), newOptions(opts))
}

// DecodeFunc reads a PNG image from a read callback.
func DecodeFunc(read ReadFunc, opts ...Option) (*bitmap.Image, error) {
	if read == nil {
		return nil, decodeError(ErrInvalidParameter, errors.New("nil read function"))
	}
	return decode(stream.FromFunc(read), newOptions(opts))
}

// DecodeFile reads a PNG image from the named file.
func DecodeFile(path string, opts ...Option) (*bitmap.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, decodeError(ErrIOFailure, err)
	}
	defer func() { _ = f.Close() }()

	return decode(stream.NewReader(bufio.NewReader(f)), newOptions(opts))
}

func decode(r *stream.Reader, o options) (*bitmap.Image, error) {
	log := o.logger
	f, err := pngfile.Read(r, pngfile.ReadOptions{
		MaxBytes: max(o.maxImageBytes, 0),
		Logger:   log,
	})
	if err != nil {
		return nil, decodeError(classifyRead(err), err)
	}

	var img *bitmap.Image
	if isIndexed(f.Header) && !o.truecolor {
		img, err = decodeIndexed(f, o.maxImageBytes)
	} else {
		img, err = decodeTruecolor(f, o.maxImageBytes)
	}
	if err != nil {
		return nil, err
	}
	attachMetadata(img, f)

	log.Debug("pngcodec: decoded",
		"width", img.Width(), "height", img.Height(),
		"format", img.Format(), "flags", fmt.Sprintf("%#x", uint32(img.Flags())),
		"properties", len(img.Properties()), "bytes", r.Consumed())
	return img, nil
}

// isIndexed reports whether the source decodes to an indexed format:
// one sample per pixel, at most 8 bits, palette or gray.
func isIndexed(h pngfile.Header) bool {
	if h.Depth > 8 || h.Channels() != 1 {
		return false
	}
	return h.ColorType == pngfile.ColorPalette || h.ColorType == pngfile.ColorGray
}

// indexedFormat returns the canonical format for an indexed source depth.
// Depth 2 is widened to 4 bits per pixel.
func indexedFormat(depth uint8) bitmap.PixelFormat {
	switch depth {
	case 1:
		return bitmap.Format1bppIndexed
	case 2, 4:
		return bitmap.Format4bppIndexed
	default:
		return bitmap.Format8bppIndexed
	}
}

// newImage allocates the destination image, enforcing the size limit.
func newImage(width, height int, format bitmap.PixelFormat, limit int64) (*bitmap.Image, error) {
	size, _, err := bitmap.Size(width, height, format)
	if err != nil {
		if errors.Is(err, bitmap.ErrTooLarge) {
			return nil, decodeError(ErrOutOfMemory, err)
		}
		return nil, decodeError(ErrMalformedStream, err)
	}
	if limit > 0 && size > limit {
		return nil, decodeError(ErrOutOfMemory,
			fmt.Errorf("%d bytes needed, limit %d", size, limit))
	}
	img, err := bitmap.New(width, height, format)
	if err != nil {
		return nil, decodeError(ErrOutOfMemory, err)
	}
	return img, nil
}

func decodeIndexed(f *pngfile.File, limit int64) (*bitmap.Image, error) {
	hdr := f.Header
	format := indexedFormat(hdr.Depth)
	img, err := newImage(int(hdr.Width), int(hdr.Height), format, limit)
	if err != nil {
		return nil, err
	}

	for y, src := range f.Rows {
		dst := img.Row(y)
		if hdr.Depth == 2 {
			repackRow2(dst, src)
		} else {
			copy(dst, src)
		}
	}

	pal, flags := buildPalette(f, format)
	img.SetPalette(pal)
	img.SetFlags(bitmap.FlagReadOnly | bitmap.FlagHasRealPixelSize | flags)
	return img, nil
}

func decodeTruecolor(f *pngfile.File, limit int64) (*bitmap.Image, error) {
	hdr := f.Header
	e := newExpander(f)

	format := bitmap.Format24bppRGB
	flags := bitmap.FlagReadOnly | bitmap.FlagHasRealPixelSize
	if e.hasAlpha() {
		format = bitmap.Format32bppPARGB
		flags |= bitmap.FlagHasAlpha
	}
	switch hdr.ColorType {
	case pngfile.ColorGray, pngfile.ColorGrayAlpha:
		flags |= bitmap.FlagColorSpaceGRAY
	default:
		flags |= bitmap.FlagColorSpaceRGB
	}

	img, err := newImage(int(hdr.Width), int(hdr.Height), format, limit)
	if err != nil {
		return nil, err
	}
	for y, src := range f.Rows {
		cellRow(img.Row(y), e.row(src), e.channels)
	}
	img.SetFlags(flags)
	return img, nil
}
