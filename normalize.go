package pngcodec

import (
	"github.com/gogpu/pngcodec/internal/pngfile"
	"github.com/gogpu/pngcodec/internal/premul"
)

// widen2 maps a nibble holding two 2-bit samples to a byte holding the same
// two values as 4-bit samples.
func widen2(n byte) byte {
	return (n & 0x3) | ((n & 0xC) << 2)
}

// repackRow2 widens a row of 2-bit samples into 4-bit samples. Every source
// byte produces two destination bytes; dst may be one byte shorter than
// 2*len(src) when the width is odd.
func repackRow2(dst, src []byte) {
	for i, b := range src {
		d := 2 * i
		if d >= len(dst) {
			return
		}
		dst[d] = widen2(b >> 4)
		if d+1 < len(dst) {
			dst[d+1] = widen2(b & 0x0F)
		}
	}
}

// sampleAt returns sample i of a packed row at the given bit depth.
func sampleAt(row []byte, i int, depth uint8) uint16 {
	switch depth {
	case 16:
		return uint16(row[2*i])<<8 | uint16(row[2*i+1])
	case 8:
		return uint16(row[i])
	default:
		bit := i * int(depth)
		shift := 8 - int(depth) - bit%8
		return uint16(row[bit/8]>>shift) & (1<<depth - 1)
	}
}

// scale8 converts a sample at depth to 8 bits. Sub-byte samples are scaled
// to the full range; 16-bit samples keep their high byte.
func scale8(v uint16, depth uint8) uint8 {
	switch depth {
	case 1:
		return uint8(v * 0xFF) //nolint:gosec // G115: v <= 1
	case 2:
		return uint8(v * 0x55) //nolint:gosec // G115: v <= 3
	case 4:
		return uint8(v * 0x11) //nolint:gosec // G115: v <= 15
	case 16:
		return uint8(v >> 8)
	default:
		return uint8(v) //nolint:gosec // G115: 8-bit sample
	}
}

// expander turns raw scanlines of any color type into rows of 8-bit samples
// with 1 to 4 channels. Palette entries are expanded to RGB, sub-byte gray is
// scaled to 8 bits, 16-bit samples are reduced to their high byte and tRNS
// is folded into an alpha channel.
type expander struct {
	hdr      pngfile.Header
	palette  []pngfile.Color
	trans    *pngfile.Transparency
	width    int
	channels int
	buf      []byte
}

func newExpander(f *pngfile.File) *expander {
	e := &expander{
		hdr:     f.Header,
		palette: f.Palette,
		trans:   f.Trans,
		width:   int(f.Header.Width),
	}
	switch f.Header.ColorType {
	case pngfile.ColorPalette:
		e.channels = 3
	case pngfile.ColorGray:
		e.channels = 1
	case pngfile.ColorGrayAlpha:
		e.channels = 2
	case pngfile.ColorRGB:
		e.channels = 3
	case pngfile.ColorRGBA:
		e.channels = 4
	}
	if e.trans != nil {
		switch f.Header.ColorType {
		case pngfile.ColorPalette, pngfile.ColorRGB:
			e.channels = 4
		case pngfile.ColorGray:
			e.channels = 2
		}
	}
	e.buf = make([]byte, e.width*e.channels)
	return e
}

// hasAlpha reports whether expanded rows carry an alpha channel.
func (e *expander) hasAlpha() bool {
	return e.channels == 2 || e.channels == 4
}

// row expands one raw scanline. The returned slice is reused by the next call.
func (e *expander) row(src []byte) []byte {
	depth := e.hdr.Depth
	out := e.buf
	switch e.hdr.ColorType {
	case pngfile.ColorPalette:
		for x := 0; x < e.width; x++ {
			idx := int(sampleAt(src, x, depth))
			var c pngfile.Color
			if idx < len(e.palette) {
				c = e.palette[idx]
			}
			o := out[x*e.channels:]
			o[0], o[1], o[2] = c.R, c.G, c.B
			if e.channels == 4 {
				o[3] = 0xFF
				if idx < len(e.trans.Alpha) && idx < len(e.palette) {
					o[3] = e.trans.Alpha[idx]
				}
			}
		}
	case pngfile.ColorGray:
		for x := 0; x < e.width; x++ {
			v := sampleAt(src, x, depth)
			o := out[x*e.channels:]
			o[0] = scale8(v, depth)
			if e.channels == 2 {
				o[1] = 0xFF
				if v == e.trans.Gray {
					o[1] = 0
				}
			}
		}
	case pngfile.ColorRGB:
		for x := 0; x < e.width; x++ {
			r := sampleAt(src, 3*x, depth)
			g := sampleAt(src, 3*x+1, depth)
			b := sampleAt(src, 3*x+2, depth)
			o := out[x*e.channels:]
			o[0], o[1], o[2] = scale8(r, depth), scale8(g, depth), scale8(b, depth)
			if e.channels == 4 {
				o[3] = 0xFF
				if r == e.trans.Red && g == e.trans.Green && b == e.trans.Blue {
					o[3] = 0
				}
			}
		}
	default:
		// Gray+alpha and RGBA: only the depth may need reducing.
		n := e.width * e.channels
		if depth == 8 {
			copy(out, src[:n])
			break
		}
		for i := 0; i < n; i++ {
			out[i] = scale8(sampleAt(src, i, depth), depth)
		}
	}
	return out
}

// cellRow converts a row of 8-bit samples into 4-byte B,G,R,A cells.
// Pixels with partial alpha are premultiplied; fully transparent pixels
// become all zero.
func cellRow(dst, samples []byte, channels int) {
	width := len(samples) / channels
	for x := 0; x < width; x++ {
		s := samples[x*channels:]
		d := dst[x*4 : x*4+4]
		switch channels {
		case 1:
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xFF
		case 2:
			storeCell(d, s[0], s[0], s[0], s[1])
		case 3:
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
		case 4:
			storeCell(d, s[0], s[1], s[2], s[3])
		}
	}
}

// storeCell writes one straight-alpha pixel as a premultiplied cell.
func storeCell(d []byte, r, g, b, a uint8) {
	switch a {
	case 0:
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
	case 0xFF:
		d[0], d[1], d[2], d[3] = b, g, r, 0xFF
	default:
		d[0] = premul.Lookup(b, a)
		d[1] = premul.Lookup(g, a)
		d[2] = premul.Lookup(r, a)
		d[3] = a
	}
}
