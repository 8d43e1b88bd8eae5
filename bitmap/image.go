package bitmap

import (
	"errors"
	"math"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("bitmap: invalid format")

	// ErrInvalidStride is returned when stride is too small or not word aligned.
	ErrInvalidStride = errors.New("bitmap: invalid stride")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrTooLarge is returned when the pixel buffer size overflows.
	ErrTooLarge = errors.New("bitmap: image too large")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("bitmap: coordinates out of bounds")

	// ErrFormatMismatch is returned when an accessor does not apply to the
	// image's pixel format.
	ErrFormatMismatch = errors.New("bitmap: operation not supported for pixel format")
)

// Flags describes image properties using the GDI+ ImageFlags values.
type Flags uint32

// Image flags.
const (
	FlagHasAlpha         Flags = 0x00002
	FlagColorSpaceRGB    Flags = 0x00010
	FlagColorSpaceGRAY   Flags = 0x00040
	FlagHasRealDPI       Flags = 0x01000
	FlagHasRealPixelSize Flags = 0x02000
	FlagReadOnly         Flags = 0x10000
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Image is an in-memory raster image.
//
// Rows are stored top to bottom, each Stride bytes long. Cell formats
// (24bppRGB, 32bppRGB, 32bppARGB, 32bppPARGB) store one pixel per 4 bytes in
// B,G,R,A order. Indexed formats pack pixels most significant bits first.
//
// An Image is not safe for concurrent mutation.
type Image struct {
	pix     []byte
	width   int
	height  int
	stride  int
	format  PixelFormat
	flags   Flags
	dpiX    float64
	dpiY    float64
	palette *Palette
	props   []Property
}

// New allocates a zeroed image with a word-aligned stride.
func New(width, height int, format PixelFormat) (*Image, error) {
	size, stride, err := Size(width, height, format)
	if err != nil {
		return nil, err
	}
	return &Image{
		pix:    make([]byte, size),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Size returns the buffer size and stride New would use, without allocating.
func Size(width, height int, format PixelFormat) (size int64, stride int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return 0, 0, ErrInvalidFormat
	}
	if width > math.MaxInt32/8 {
		return 0, 0, ErrTooLarge
	}
	stride = format.Stride(width)
	size = int64(stride) * int64(height)
	if size/int64(height) != int64(stride) || size != int64(int(size)) {
		return 0, 0, ErrTooLarge
	}
	return size, stride, nil
}

// FromRaw creates an Image that takes ownership of pix.
// Stride must be word aligned and at least format.RowBytes(width).
func FromRaw(pix []byte, width, height int, format PixelFormat, stride int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) || stride%WordAlign != 0 {
		return nil, ErrInvalidStride
	}
	required := int64(stride) * int64(height)
	if int64(len(pix)) < required {
		return nil, ErrDataTooSmall
	}
	return &Image{
		pix:    pix[:required],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone returns a deep copy of the image, including palette and properties.
func (m *Image) Clone() *Image {
	c := *m
	c.pix = append([]byte(nil), m.pix...)
	c.palette = m.palette.Clone()
	if m.props != nil {
		c.props = make([]Property, len(m.props))
		for i, p := range m.props {
			c.props[i] = p.Clone()
		}
	}
	return &c
}

// Release drops the pixel buffer, palette and properties.
// Accessors on a released image return zero values.
func (m *Image) Release() {
	m.pix = nil
	m.palette = nil
	m.props = nil
}

// Released reports whether Release has been called.
func (m *Image) Released() bool {
	return m.pix == nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Stride returns the number of bytes per row, including padding.
func (m *Image) Stride() int {
	return m.stride
}

// Format returns the pixel format.
func (m *Image) Format() PixelFormat {
	return m.format
}

// Flags returns the image flags.
func (m *Image) Flags() Flags {
	return m.flags
}

// SetFlags replaces the image flags.
func (m *Image) SetFlags(f Flags) {
	m.flags = f
}

// AddFlags sets the given flag bits.
func (m *Image) AddFlags(f Flags) {
	m.flags |= f
}

// DPI returns the horizontal and vertical resolution. Zero means unset.
func (m *Image) DPI() (x, y float64) {
	return m.dpiX, m.dpiY
}

// SetDPI sets the horizontal and vertical resolution.
func (m *Image) SetDPI(x, y float64) {
	m.dpiX, m.dpiY = x, y
}

// Pix returns the raw pixel buffer.
func (m *Image) Pix() []byte {
	return m.pix
}

// Row returns the RowBytes-long pixel data of row y, or nil if y is out of
// bounds.
func (m *Image) Row(y int) []byte {
	if m.pix == nil || y < 0 || y >= m.height {
		return nil
	}
	start := y * m.stride
	return m.pix[start : start+m.format.RowBytes(m.width)]
}

// Palette returns the image palette, or nil.
func (m *Image) Palette() *Palette {
	return m.palette
}

// SetPalette attaches p, which is owned by the image from then on.
func (m *Image) SetPalette(p *Palette) {
	m.palette = p
}

// Properties returns the metadata properties in the order they were added.
func (m *Image) Properties() []Property {
	return m.props
}

// Property returns the first property with the given tag.
func (m *Image) Property(tag PropertyTag) (Property, bool) {
	for _, p := range m.props {
		if p.Tag == tag {
			return p, true
		}
	}
	return Property{}, false
}

// AddProperty appends a metadata property.
func (m *Image) AddProperty(p Property) {
	m.props = append(m.props, p)
}

func (m *Image) inBounds(x, y int) bool {
	return m.pix != nil && x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Index returns the palette index of pixel (x, y) for indexed formats.
// Returns 0 if coordinates are out of bounds or the format is not indexed.
func (m *Image) Index(x, y int) uint8 {
	if !m.inBounds(x, y) || !m.format.IsIndexed() {
		return 0
	}
	bits := m.format.BitsPerPixel()
	bit := x * bits
	shift := 8 - bits - bit%8
	mask := byte(1<<bits - 1)
	return (m.pix[y*m.stride+bit/8] >> shift) & mask
}

// SetIndex sets the palette index of pixel (x, y) for indexed formats.
func (m *Image) SetIndex(x, y int, index uint8) error {
	if !m.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if !m.format.IsIndexed() {
		return ErrFormatMismatch
	}
	bits := m.format.BitsPerPixel()
	mask := byte(1<<bits - 1)
	if index > mask {
		return ErrOutOfBounds
	}
	bit := x * bits
	shift := 8 - bits - bit%8
	off := y*m.stride + bit/8
	m.pix[off] = m.pix[off]&^(mask<<shift) | index<<shift
	return nil
}

// ARGB returns the stored color of pixel (x, y).
// Indexed pixels are resolved through the palette. Opaque cell formats
// report alpha 0xFF. Premultiplied values are returned as stored.
// Returns 0 if coordinates are out of bounds.
func (m *Image) ARGB(x, y int) ARGB {
	if !m.inBounds(x, y) {
		return 0
	}
	switch {
	case m.format.IsIndexed():
		return m.palette.At(int(m.Index(x, y)))
	case m.format.IsCell():
		off := y*m.stride + x*4
		a := m.pix[off+3]
		if !m.format.HasAlpha() {
			a = 0xFF
		}
		return NewARGB(a, m.pix[off+2], m.pix[off+1], m.pix[off])
	default:
		return 0
	}
}

// SetARGB stores c into pixel (x, y) of a cell format image.
func (m *Image) SetARGB(x, y int, c ARGB) error {
	if !m.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if !m.format.IsCell() {
		return ErrFormatMismatch
	}
	off := y*m.stride + x*4
	m.pix[off] = c.B()
	m.pix[off+1] = c.G()
	m.pix[off+2] = c.R()
	m.pix[off+3] = c.A()
	return nil
}

// Channel returns byte c of the storage of pixel (x, y). For formats
// narrower than a byte, channel 0 is the palette index.
// Returns 0 for any out of range argument.
func (m *Image) Channel(x, y, c int) uint8 {
	if !m.inBounds(x, y) || c < 0 {
		return 0
	}
	bits := m.format.Info().StorageBits
	if bits < 8 {
		if c != 0 {
			return 0
		}
		return m.Index(x, y)
	}
	n := bits / 8
	if c >= n {
		return 0
	}
	return m.pix[y*m.stride+x*n+c]
}
