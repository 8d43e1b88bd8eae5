package pngcodec

import (
	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
)

// paletteHeadroom is the capacity given to palettes of 4bppIndexed images.
const paletteHeadroom = 256

// buildPalette creates the palette of an indexed-path decode and returns
// the image flags it implies (color space and alpha).
func buildPalette(f *pngfile.File, format bitmap.PixelFormat) (*bitmap.Palette, bitmap.Flags) {
	n := 1 << f.Header.Depth
	capacity := n
	if format == bitmap.Format4bppIndexed {
		capacity = paletteHeadroom
	}

	var (
		pal   *bitmap.Palette
		flags bitmap.Flags
	)
	if f.Header.ColorType == pngfile.ColorGray {
		pal = grayPalette(n, capacity)
		flags = bitmap.FlagColorSpaceGRAY
		if t := f.Trans; t != nil && int(t.Gray) < n {
			c := pal.Entries[t.Gray]
			pal.Entries[t.Gray] = bitmap.NewARGB(0, c.R(), c.G(), c.B())
			pal.Flags |= bitmap.PaletteHasAlpha
		}
	} else {
		count := min(n, len(f.Palette))
		pal = bitmap.NewPalette(count, capacity)
		for i := range count {
			c := f.Palette[i]
			pal.Entries[i] = bitmap.NewARGB(0xFF, c.R, c.G, c.B)
		}
		flags = bitmap.FlagColorSpaceRGB
		if t := f.Trans; t != nil {
			for i := range min(len(t.Alpha), count) {
				c := pal.Entries[i]
				pal.Entries[i] = bitmap.NewARGB(t.Alpha[i], c.R(), c.G(), c.B())
			}
			pal.Flags |= bitmap.PaletteHasAlpha
		}
	}

	if pal.Flags&bitmap.PaletteHasAlpha != 0 {
		flags |= bitmap.FlagHasAlpha
	}
	return pal, flags
}

// grayPalette returns n opaque entries ramping linearly from black to white.
func grayPalette(n, capacity int) *bitmap.Palette {
	pal := bitmap.NewPalette(n, capacity)
	pal.Flags = bitmap.PaletteGrayScale
	last := n - 1
	for i := range n {
		v := uint8((i*0xFF + last/2) / last) //nolint:gosec // G115: at most 255
		pal.Entries[i] = bitmap.NewARGB(0xFF, v, v, v)
	}
	return pal
}
