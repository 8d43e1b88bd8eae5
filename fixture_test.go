package pngcodec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/pngcodec/internal/pngfile"
)

// fixture describes a PNG built with the chunk writer. Rows are unfiltered
// scanlines without the filter byte.
type fixture struct {
	header  pngfile.Header
	palette []pngfile.Color
	trns    []byte
	before  func(w *pngfile.Writer)
	rows    [][]byte
}

func (f fixture) encode(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := pngfile.NewWriter(&buf)
	_ = w.WriteSignature()
	_ = w.WriteHeader(f.header)
	if f.before != nil {
		f.before(w)
	}
	if f.palette != nil {
		_ = w.WritePalette(f.palette)
	}
	if f.trns != nil {
		_ = w.WriteTransparency(f.trns)
	}
	iw, err := w.NewImageWriter(zlib.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range f.rows {
		line := append([]byte{0}, row...)
		if err := iw.WriteRow(pngfile.FilterNone, line); err != nil {
			t.Fatal(err)
		}
	}
	if err := iw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteEnd(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func header(width, height uint32, depth, colorType uint8) pngfile.Header {
	return pngfile.Header{Width: width, Height: height, Depth: depth, ColorType: colorType}
}

func grayPLTE(n int) []pngfile.Color {
	pal := make([]pngfile.Color, n)
	for i := range pal {
		v := uint8(i * 255 / max(n-1, 1))
		pal[i] = pngfile.Color{R: v, G: 255 - v, B: uint8(i)}
	}
	return pal
}

// chunkNames lists the chunk types of a PNG stream in order.
func chunkNames(t *testing.T, data []byte) []string {
	t.Helper()
	if !bytes.HasPrefix(data, []byte(pngfile.Signature)) {
		t.Fatal("missing PNG signature")
	}
	var names []string
	for p := len(pngfile.Signature); p+8 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[p:]))
		names = append(names, string(data[p+4:p+8]))
		p += 12 + n
	}
	return names
}

// chunkOffset returns the offset of the first chunk named name (its length
// field) and its payload length.
func chunkOffset(t *testing.T, data []byte, name string) (int, int) {
	t.Helper()
	for p := len(pngfile.Signature); p+8 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[p:]))
		if string(data[p+4:p+8]) == name {
			return p, n
		}
		p += 12 + n
	}
	t.Fatalf("chunk %s not found", name)
	return 0, 0
}
