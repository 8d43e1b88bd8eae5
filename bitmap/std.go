package bitmap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToStdImage converts the image to a standard library image.
//
// Indexed formats become *image.Paletted, 32bppPARGB becomes *image.RGBA,
// 32bppARGB becomes *image.NRGBA and opaque cell formats become *image.RGBA.
// Other formats return ErrFormatMismatch.
func (m *Image) ToStdImage() (image.Image, error) {
	if m.pix == nil {
		return nil, ErrFormatMismatch
	}
	r := image.Rect(0, 0, m.width, m.height)

	if m.format.IsIndexed() {
		pal := make(color.Palette, m.palette.Count())
		for i, c := range m.palette.Entries {
			pal[i] = color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
		}
		dst := image.NewPaletted(r, pal)
		for y := range m.height {
			row := dst.Pix[y*dst.Stride:]
			for x := range m.width {
				row[x] = m.Index(x, y)
			}
		}
		return dst, nil
	}
	if !m.format.IsCell() {
		return nil, ErrFormatMismatch
	}

	var pix []uint8
	var stride int
	var out image.Image
	if m.format == Format32bppARGB {
		dst := image.NewNRGBA(r)
		pix, stride, out = dst.Pix, dst.Stride, dst
	} else {
		dst := image.NewRGBA(r)
		pix, stride, out = dst.Pix, dst.Stride, dst
	}
	opaque := !m.format.HasAlpha()
	for y := range m.height {
		src := m.Row(y)
		dst := pix[y*stride : y*stride+m.width*4]
		for x := 0; x < len(dst); x += 4 {
			dst[x+0] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x+0]
			if opaque {
				dst[x+3] = 0xFF
			} else {
				dst[x+3] = src[x+3]
			}
		}
	}
	return out, nil
}

// FromStdImage converts a standard library image.
//
// Paletted images with at most 256 colors become 8bppIndexed. Everything
// else is drawn into non-premultiplied RGBA and becomes 32bppARGB, or
// 24bppRGB when every pixel is opaque.
func FromStdImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if p, ok := src.(*image.Paletted); ok && len(p.Palette) <= 256 {
		return fromPaletted(p)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)

	opaque := true
	for i := 3; i < len(nrgba.Pix); i += 4 {
		if nrgba.Pix[i] != 0xFF {
			opaque = false
			break
		}
	}
	format := Format32bppARGB
	flags := FlagColorSpaceRGB | FlagHasAlpha
	if opaque {
		format = Format24bppRGB
		flags = FlagColorSpaceRGB
	}

	m, err := New(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	m.flags = flags
	for y := range m.height {
		s := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+m.width*4]
		d := m.Row(y)
		for x := 0; x < len(s); x += 4 {
			d[x+0] = s[x+2]
			d[x+1] = s[x+1]
			d[x+2] = s[x+0]
			d[x+3] = s[x+3]
		}
	}
	return m, nil
}

func fromPaletted(p *image.Paletted) (*Image, error) {
	b := p.Bounds()
	m, err := New(b.Dx(), b.Dy(), Format8bppIndexed)
	if err != nil {
		return nil, err
	}
	pal := NewPalette(len(p.Palette), 256)
	for i, c := range p.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		pal.Entries[i] = NewARGB(n.A, n.R, n.G, n.B)
		if n.A != 0xFF {
			pal.Flags |= PaletteHasAlpha
		}
	}
	m.palette = pal
	m.flags = FlagColorSpaceRGB
	if pal.Flags&PaletteHasAlpha != 0 {
		m.flags |= FlagHasAlpha
	}
	for y := range m.height {
		copy(m.Row(y), p.Pix[y*p.Stride:y*p.Stride+m.width])
	}
	return m, nil
}

// Scale returns a copy of m resampled to width x height with Catmull-Rom
// interpolation. The result is 32bppARGB or 24bppRGB, as FromStdImage, and
// keeps the resolution of m.
func Scale(m *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	src, err := m.ToStdImage()
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	out, err := FromStdImage(dst)
	if err != nil {
		return nil, err
	}
	out.dpiX, out.dpiY = m.dpiX, m.dpiY
	out.flags |= m.flags & FlagHasRealDPI
	return out, nil
}
