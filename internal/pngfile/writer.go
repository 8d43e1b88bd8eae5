package pngfile

import (
	"bufio"
	"bytes"
	"hash"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
	bst "github.com/mixcode/binarystruct"
)

// Standard sRGB color description written alongside the sRGB chunk.
const (
	SRGBGamma = 45455
)

// SRGBChromaticities are the sRGB primaries and D65 white point.
var SRGBChromaticities = Chromaticities{
	WhiteX: 31270, WhiteY: 32900,
	RedX: 64000, RedY: 33000,
	GreenX: 30000, GreenY: 60000,
	BlueX: 15000, BlueY: 6000,
}

// idatBufferSize is the size of one IDAT chunk produced by ImageWriter.
const idatBufferSize = 1 << 15

// Writer emits PNG chunks to an underlying writer.
//
// The first error is sticky: later calls return it without writing.
type Writer struct {
	w   io.Writer
	crc hash.Hash32
	err error
}

// NewWriter returns a chunk writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, crc: crc32.NewIEEE()}
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// WriteSignature writes the PNG file signature.
func (w *Writer) WriteSignature() error {
	if w.err != nil {
		return w.err
	}
	_, w.err = io.WriteString(w.w, Signature)
	return w.err
}

// WriteChunk writes one chunk with its length, type and CRC.
func (w *Writer) WriteChunk(name string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(name) != 4 {
		w.err = FormatError("bad chunk type " + name)
		return w.err
	}
	if len(data) > maxChunkLength {
		w.err = UnsupportedError("chunk too large")
		return w.err
	}
	hdr := chunkHeader{Length: uint32(len(data)), Type: name} //nolint:gosec // G115: checked above
	if _, w.err = bst.Write(w.w, bst.BigEndian, hdr); w.err != nil {
		return w.err
	}
	if _, w.err = w.w.Write(data); w.err != nil {
		return w.err
	}
	w.crc.Reset()
	w.crc.Write([]byte(name))
	w.crc.Write(data)
	_, w.err = bst.Write(w.w, bst.BigEndian, w.crc.Sum32())
	return w.err
}

// writeStruct marshals v big-endian and writes it as a chunk.
func (w *Writer) writeStruct(name string, v any) error {
	if w.err != nil {
		return w.err
	}
	var buf bytes.Buffer
	if _, err := bst.Write(&buf, bst.BigEndian, v); err != nil {
		w.err = err
		return err
	}
	return w.WriteChunk(name, buf.Bytes())
}

// WriteHeader writes the IHDR chunk.
func (w *Writer) WriteHeader(h Header) error {
	if w.err != nil {
		return w.err
	}
	if err := h.Validate(); err != nil {
		w.err = err
		return err
	}
	return w.writeStruct(chunkIHDR, h)
}

// WritePalette writes the PLTE chunk.
func (w *Writer) WritePalette(pal []Color) error {
	data := make([]byte, 0, 3*len(pal))
	for _, c := range pal {
		data = append(data, c.R, c.G, c.B)
	}
	return w.WriteChunk(chunkPLTE, data)
}

// WriteTransparency writes a palette tRNS chunk.
func (w *Writer) WriteTransparency(alpha []uint8) error {
	return w.WriteChunk(chunkTRNS, alpha)
}

// WriteGrayKey writes a gray tRNS chunk.
func (w *Writer) WriteGrayKey(gray uint16) error {
	return w.writeStruct(chunkTRNS, struct{ Gray uint16 }{gray})
}

// WriteGamma writes the gAMA chunk.
func (w *Writer) WriteGamma(gamma uint32) error {
	return w.writeStruct(chunkGAMA, gamma)
}

// WriteChromaticities writes the cHRM chunk.
func (w *Writer) WriteChromaticities(c Chromaticities) error {
	return w.writeStruct(chunkCHRM, c)
}

// WriteSRGB writes the sRGB chunk.
func (w *Writer) WriteSRGB(intent uint8) error {
	return w.WriteChunk(chunkSRGB, []byte{intent})
}

// WritePhysical writes the pHYs chunk.
func (w *Writer) WritePhysical(p Physical) error {
	return w.writeStruct(chunkPHYS, p)
}

// WriteICCProfile writes an iCCP chunk, compressing the profile.
//
// The text and iCCP writers are not used by the pngcodec encoder, which emits
// a fixed sRGB chunk set. They exist to build decoder fixtures in tests.
func (w *Writer) WriteICCProfile(name string, profile []byte) error {
	var buf bytes.Buffer
	if _, err := bst.Write(&buf, bst.BigEndian, iccpHeader{Name: name}); err != nil {
		w.err = err
		return err
	}
	if err := deflate(&buf, profile); err != nil {
		w.err = err
		return err
	}
	return w.WriteChunk(chunkICCP, buf.Bytes())
}

// WriteText writes an uncompressed tEXt chunk. Keyword and text must be Latin-1.
func (w *Writer) WriteText(keyword, text string) error {
	data := make([]byte, 0, len(keyword)+1+len(text))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, text...)
	return w.WriteChunk(chunkTEXT, data)
}

// WriteCompressedText writes a zTXt chunk.
func (w *Writer) WriteCompressedText(keyword, text string) error {
	var buf bytes.Buffer
	buf.WriteString(keyword)
	buf.Write([]byte{0, 0})
	if err := deflate(&buf, []byte(text)); err != nil {
		w.err = err
		return err
	}
	return w.WriteChunk(chunkZTXT, buf.Bytes())
}

// WriteEnd writes the IEND chunk.
func (w *Writer) WriteEnd() error {
	return w.WriteChunk(chunkIEND, nil)
}

func deflate(dst io.Writer, data []byte) error {
	zw := zlib.NewWriter(dst)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}

// ImageWriter compresses scanlines into a sequence of IDAT chunks.
type ImageWriter struct {
	zw *zlib.Writer
	bw *bufio.Writer
}

// NewImageWriter starts the image data at the given zlib compression level.
func (w *Writer) NewImageWriter(level int) (*ImageWriter, error) {
	if w.err != nil {
		return nil, w.err
	}
	bw := bufio.NewWriterSize(idatWriter{w}, idatBufferSize)
	zw, err := zlib.NewWriterLevel(bw, level)
	if err != nil {
		return nil, err
	}
	return &ImageWriter{zw: zw, bw: bw}, nil
}

// WriteRow writes one scanline preceded by its filter type byte.
// row[0] must be reserved for the filter type.
func (iw *ImageWriter) WriteRow(filter uint8, row []byte) error {
	row[0] = filter
	_, err := iw.zw.Write(row)
	return err
}

// Close flushes the compressor and the final IDAT chunk.
func (iw *ImageWriter) Close() error {
	if err := iw.zw.Close(); err != nil {
		return err
	}
	return iw.bw.Flush()
}

// idatWriter turns every write into one IDAT chunk.
type idatWriter struct {
	w *Writer
}

func (iw idatWriter) Write(p []byte) (int, error) {
	if err := iw.w.WriteChunk(chunkIDAT, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
