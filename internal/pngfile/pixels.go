package pngfile

import (
	"errors"
	"io"
)

// interlaceScan describes one Adam7 pass.
type interlaceScan struct {
	xFactor, yFactor, xOffset, yOffset int
}

// adam7 holds the seven passes of the Adam7 interlacing scheme.
// https://www.w3.org/TR/png/#8Interlace
var adam7 = [7]interlaceScan{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

// readRows reads and unfilters every scanline of the image described by h.
func readRows(r io.Reader, h Header) ([][]byte, error) {
	width, height := int(h.Width), int(h.Height)
	rowBytes := h.RowBytes(width)
	pix := make([]byte, rowBytes*height)
	rows := make([][]byte, height)
	for y := range rows {
		rows[y] = pix[y*rowBytes : (y+1)*rowBytes : (y+1)*rowBytes]
	}

	if h.Interlace == InterlaceNone {
		err := readPass(r, h, width, height, func(y int, row []byte) {
			copy(rows[y], row)
		})
		return rows, err
	}

	for _, pass := range adam7 {
		pw := (width - pass.xOffset + pass.xFactor - 1) / pass.xFactor
		ph := (height - pass.yOffset + pass.yFactor - 1) / pass.yFactor
		if pw <= 0 || ph <= 0 {
			continue
		}
		err := readPass(r, h, pw, ph, func(y int, row []byte) {
			dst := rows[pass.yOffset+y*pass.yFactor]
			for x := 0; x < pw; x++ {
				copyPixel(dst, pass.xOffset+x*pass.xFactor, row, x, h.BitsPerPixel())
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// readPass reads height filtered scanlines of width pixels and hands each
// unfiltered row to emit. The row passed to emit is reused.
func readPass(r io.Reader, h Header, width, height int, emit func(y int, row []byte)) error {
	bytesPerPixel := (h.BitsPerPixel() + 7) / 8

	// The +1 is for the per-row filter type, which is at cr[0].
	rowSize := 1 + h.RowBytes(width)
	// cr and pr are the bytes for the current and previous row.
	cr := make([]uint8, rowSize)
	pr := make([]uint8, rowSize)

	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, cr); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return FormatError("not enough pixel data")
			}
			return err
		}
		if err := unfilter(cr[0], cr[1:], pr[1:], bytesPerPixel); err != nil {
			return err
		}
		emit(y, cr[1:])
		pr, cr = cr, pr
	}
	return nil
}

// unfilter reverses the scanline filter in place.
func unfilter(filter uint8, cdat, pdat []uint8, bytesPerPixel int) error {
	switch filter {
	case FilterNone:
		// No-op.
	case FilterSub:
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += cdat[i-bytesPerPixel]
		}
	case FilterUp:
		for i, p := range pdat {
			cdat[i] += p
		}
	case FilterAverage:
		// The first column has no column to the left of it, so it is a
		// special case.
		for i := 0; i < bytesPerPixel && i < len(cdat); i++ {
			cdat[i] += pdat[i] / 2
		}
		for i := bytesPerPixel; i < len(cdat); i++ {
			cdat[i] += uint8((int(cdat[i-bytesPerPixel]) + int(pdat[i])) / 2) //nolint:gosec // G115: average of two bytes
		}
	case FilterPaeth:
		filterPaeth(cdat, pdat, bytesPerPixel)
	default:
		return FormatError("bad filter type")
	}
	return nil
}

// paeth implements the Paeth filter function, as per the PNG specification.
func paeth(a, b, c uint8) uint8 {
	pc := int(c)
	pa := int(b) - pc
	pb := int(a) - pc
	pc = abs(pa + pb)
	pa = abs(pa)
	pb = abs(pb)
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// filterPaeth applies the Paeth filter to the cdat slice.
// cdat is the current row's data, pdat is the previous row's data.
func filterPaeth(cdat, pdat []byte, bytesPerPixel int) {
	for i := range cdat {
		var a, c uint8
		if i >= bytesPerPixel {
			a = cdat[i-bytesPerPixel]
			c = pdat[i-bytesPerPixel]
		}
		cdat[i] += paeth(a, pdat[i], c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// copyPixel copies pixel sx of src into pixel dx of dst, both rows packed
// at bitsPerPixel bits per pixel, most significant bits first.
func copyPixel(dst []byte, dx int, src []byte, sx int, bitsPerPixel int) {
	if bitsPerPixel >= 8 {
		n := bitsPerPixel / 8
		copy(dst[dx*n:dx*n+n], src[sx*n:sx*n+n])
		return
	}
	mask := byte(1<<bitsPerPixel - 1)

	sbit := sx * bitsPerPixel
	sshift := 8 - bitsPerPixel - sbit%8
	v := (src[sbit/8] >> sshift) & mask

	dbit := dx * bitsPerPixel
	dshift := 8 - bitsPerPixel - dbit%8
	dst[dbit/8] = dst[dbit/8]&^(mask<<dshift) | v<<dshift
}
