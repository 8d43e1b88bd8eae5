package pngfile

import (
	"errors"
	"hash"
	"hash/crc32"
	"io"
	"log/slog"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	bst "github.com/mixcode/binarystruct"

	"github.com/gogpu/pngcodec/internal/stream"
)

// File is a fully read PNG.
type File struct {
	Header  Header
	Palette []Color
	Trans   *Transparency
	Gamma   *uint32
	Chroma  *Chromaticities
	SRGB    *uint8
	Phys    *Physical
	ICC     *ICCProfile
	Texts   []Text

	// Rows holds Header.Height scanlines of Header.RowBytes(width) bytes
	// each, unfiltered and de-interlaced, at the source bit depth.
	Rows [][]byte
}

// ReadOptions configures Read.
type ReadOptions struct {
	// MaxBytes limits the raw scanline allocation. Zero means no limit.
	MaxBytes int64

	// Logger receives warnings about dropped ancillary chunks.
	Logger *slog.Logger
}

// chunkHeader is the length and type that precede every chunk.
type chunkHeader struct {
	Length uint32
	Type   string `binary:"[4]byte"`
}

type reader struct {
	r     *stream.Reader
	opts  ReadOptions
	log   *slog.Logger
	crc   hash.Hash32
	stage int
	file  *File

	// pending is a chunk header read ahead by the IDAT reader.
	pending *chunkHeader
	// idatLength is the unread payload of the current IDAT chunk.
	idatLength uint32
}

// Read parses a complete PNG stream.
func Read(r *stream.Reader, opts ReadOptions) (*File, error) {
	d := &reader{
		r:    r,
		opts: opts,
		log:  opts.Logger,
		crc:  crc32.NewIEEE(),
		file: &File{},
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	if err := d.checkSignature(); err != nil {
		return nil, err
	}
	for d.stage != dsSeenIEND {
		if err := d.parseChunk(); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return d.file, nil
}

func (d *reader) checkSignature() error {
	var sig [len(Signature)]byte
	if err := d.r.ReadFull(sig[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if string(sig[:]) != Signature {
		return FormatError("not a PNG file")
	}
	return nil
}

func (d *reader) nextHeader() (chunkHeader, error) {
	if d.pending != nil {
		h := *d.pending
		d.pending = nil
		return h, nil
	}
	var h chunkHeader
	if _, err := bst.Read(d.r, bst.BigEndian, &h); err != nil {
		return h, err
	}
	if h.Length > maxChunkLength {
		return h, FormatError("bad chunk length")
	}
	return h, nil
}

func (d *reader) parseChunk() error {
	h, err := d.nextHeader()
	if err != nil {
		return err
	}
	d.crc.Reset()
	d.crc.Write([]byte(h.Type))

	if h.Type == chunkIDAT {
		if d.stage < dsSeenIHDR || d.stage >= dsSeenIDAT {
			return chunkOrderError
		}
		if d.file.Header.ColorType == ColorPalette && d.file.Palette == nil {
			return FormatError("missing PLTE")
		}
		d.stage = dsSeenIDAT
		d.idatLength = h.Length
		return d.readImageData()
	}

	if d.opts.MaxBytes > 0 && int64(h.Length) > d.opts.MaxBytes {
		return tooLarge(int64(h.Length), d.opts.MaxBytes)
	}
	data := make([]byte, h.Length)
	if err := d.r.ReadFull(data); err != nil {
		return err
	}
	d.crc.Write(data)
	if err := d.verifyChecksum(); err != nil {
		if isCritical(h.Type) {
			return err
		}
		d.log.Warn("png: dropping ancillary chunk", "chunk", h.Type, "err", err)
		return nil
	}

	switch h.Type {
	case chunkIHDR:
		if d.stage != dsStart {
			return chunkOrderError
		}
		hdr, err := parseHeader(data)
		if err != nil {
			return err
		}
		d.file.Header = hdr
		d.stage = dsSeenIHDR
		d.log.Debug("png: header",
			"width", hdr.Width, "height", hdr.Height,
			"depth", hdr.Depth, "colorType", hdr.ColorType, "interlace", hdr.Interlace)
		return nil
	case chunkIEND:
		if d.stage != dsSeenIDAT {
			if d.stage < dsSeenIDAT {
				return FormatError("missing IDAT")
			}
			return chunkOrderError
		}
		if len(data) != 0 {
			return FormatError("bad IEND length")
		}
		d.stage = dsSeenIEND
		return nil
	}

	if d.stage == dsStart {
		return FormatError("missing IHDR")
	}

	if h.Type == chunkPLTE {
		if d.stage != dsSeenIHDR {
			return chunkOrderError
		}
		pal, err := parsePalette(data, d.file.Header)
		if err != nil {
			return err
		}
		if hdr := d.file.Header; hdr.ColorType == ColorPalette && len(pal) > 1<<hdr.Depth {
			d.log.Warn("png: truncating PLTE", "entries", len(pal), "depth", hdr.Depth)
			pal = pal[:1<<hdr.Depth]
		}
		d.file.Palette = pal
		d.stage = dsSeenPLTE
		return nil
	}

	if isCritical(h.Type) {
		return UnsupportedError("critical chunk " + h.Type)
	}
	d.parseAncillary(h.Type, data)
	return nil
}

// parseAncillary records an ancillary chunk. Malformed or misplaced
// ancillary chunks are dropped with a warning rather than failing the read.
func (d *reader) parseAncillary(name string, data []byte) {
	f := d.file
	beforeIDAT := d.stage < dsSeenIDAT
	var err error

	switch name {
	case chunkTRNS:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		if f.Header.ColorType == ColorPalette && f.Palette == nil {
			err = FormatError("tRNS before PLTE")
			break
		}
		f.Trans, err = parseTransparency(data, f.Header)
	case chunkGAMA:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		var g uint32
		if g, err = parseGamma(data); err == nil {
			f.Gamma = &g
		}
	case chunkCHRM:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		f.Chroma, err = parseChromaticities(data)
	case chunkSRGB:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		var intent uint8
		if intent, err = parseSRGB(data); err == nil {
			f.SRGB = &intent
		}
	case chunkPHYS:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		f.Phys, err = parsePhysical(data)
	case chunkICCP:
		if !beforeIDAT {
			err = chunkOrderError
			break
		}
		f.ICC, err = parseICCProfile(data)
	case chunkTEXT, chunkZTXT, chunkITXT:
		var t Text
		if t, err = parseText(name, data); err == nil {
			f.Texts = append(f.Texts, t)
		}
	default:
		d.log.Debug("png: skipping unknown chunk", "chunk", name, "length", len(data))
	}

	if err != nil {
		d.log.Warn("png: dropping ancillary chunk", "chunk", name, "err", err)
	}
}

// readImageData inflates the IDAT stream into raw rows and leaves the
// reader positioned at the first chunk after the last IDAT.
func (d *reader) readImageData() error {
	hdr := d.file.Header
	width, height := int(hdr.Width), int(hdr.Height)
	rowBytes := int64(hdr.RowBytes(width))
	need := rowBytes * int64(height)
	if need/int64(height) != rowBytes || need != int64(int(need)) {
		return tooLarge(need, d.opts.MaxBytes)
	}
	if d.opts.MaxBytes > 0 && need > d.opts.MaxBytes {
		return tooLarge(need, d.opts.MaxBytes)
	}

	zr, err := zlib.NewReader(d)
	if err != nil {
		return d.zlibError(err)
	}
	defer func() { _ = zr.Close() }()

	rows, err := readRows(zr, hdr)
	if err != nil {
		return d.zlibError(err)
	}
	// Drain the zlib stream so its checksum is verified.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return d.zlibError(err)
	}
	if err := d.skipImageData(); err != nil {
		return err
	}
	d.file.Rows = rows
	d.log.Debug("png: image data decoded", "rows", len(rows), "rowBytes", rowBytes)
	return nil
}

// zlibError classifies a failure raised while reading the image data.
func (d *reader) zlibError(err error) error {
	var (
		fe FormatError
		ce flate.CorruptInputError
	)
	switch {
	case errors.As(err, &fe):
		return err
	case errors.As(err, &ce):
		return FormatError("bad zlib stream: " + err.Error())
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return FormatError("not enough pixel data")
	case errors.Is(err, zlib.ErrChecksum), errors.Is(err, zlib.ErrHeader), errors.Is(err, zlib.ErrDictionary):
		return FormatError("bad zlib stream: " + err.Error())
	default:
		return err
	}
}

// Read presents one or more IDAT chunks as one continuous stream (minus the
// intermediate chunk headers and footers). When the next chunk is not an
// IDAT its header is kept as pending and Read reports io.EOF.
func (d *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for d.idatLength == 0 {
		if d.pending != nil {
			return 0, io.EOF
		}
		// We have exhausted an IDAT chunk. Verify the checksum of that chunk.
		if err := d.verifyChecksum(); err != nil {
			return 0, err
		}
		h, err := d.nextHeader()
		if err != nil {
			return 0, err
		}
		if h.Type != chunkIDAT {
			d.pending = &h
			return 0, io.EOF
		}
		d.idatLength = h.Length
		d.crc.Reset()
		d.crc.Write([]byte(h.Type))
	}
	n, err := d.r.Read(p[:min(len(p), int(d.idatLength))])
	d.crc.Write(p[:n])
	d.idatLength -= uint32(n) //nolint:gosec // G115: n <= idatLength
	return n, err
}

// skipImageData discards IDAT payload left after the zlib stream ended.
func (d *reader) skipImageData() error {
	var scratch [4096]byte
	for {
		_, err := d.Read(scratch[:])
		if errors.Is(err, io.EOF) {
			if d.pending == nil {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (d *reader) verifyChecksum() error {
	var sum uint32
	if _, err := bst.Read(d.r, bst.BigEndian, &sum); err != nil {
		return err
	}
	if sum != d.crc.Sum32() {
		return FormatError("invalid checksum")
	}
	return nil
}
