// Package bitmap provides the in-memory raster image model shared by the
// PNG decoder and encoder: pixel formats, stride-aligned pixel buffers,
// color palettes and metadata properties.
package bitmap

// PixelFormat represents a pixel storage format.
type PixelFormat uint8

const (
	// FormatUndefined is the zero value and is never valid for an image.
	FormatUndefined PixelFormat = iota

	// Format1bppIndexed is 1 bit per pixel, palette indexed.
	Format1bppIndexed

	// Format4bppIndexed is 4 bits per pixel, palette indexed.
	Format4bppIndexed

	// Format8bppIndexed is 8 bits per pixel, palette indexed.
	Format8bppIndexed

	// Format16bppGrayScale is 16-bit grayscale.
	Format16bppGrayScale

	// Format16bppRGB555 is 5 bits per color channel, 1 unused bit.
	Format16bppRGB555

	// Format16bppRGB565 is 5/6/5 bits per color channel.
	Format16bppRGB565

	// Format16bppARGB1555 is 5 bits per color channel and a 1-bit alpha.
	Format16bppARGB1555

	// Format24bppRGB is opaque RGB. Pixels are stored in 4-byte B,G,R,X
	// cells, the same layout as Format32bppRGB.
	Format24bppRGB

	// Format32bppRGB is opaque RGB in 4-byte B,G,R,X cells.
	Format32bppRGB

	// Format32bppARGB is RGB with alpha in 4-byte B,G,R,A cells.
	Format32bppARGB

	// Format32bppPARGB is RGB with premultiplied alpha in 4-byte B,G,R,A cells.
	Format32bppPARGB

	// Format48bppRGB is 16 bits per color channel.
	Format48bppRGB

	// Format64bppARGB is 16 bits per channel with alpha.
	Format64bppARGB

	// Format64bppPARGB is 16 bits per channel with premultiplied alpha.
	Format64bppPARGB

	// formatCount is the number of formats (for internal use).
	formatCount
)

// WordAlign is the byte alignment every row stride is rounded up to.
const WordAlign = 4

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BitsPerPixel is the nominal pixel size.
	BitsPerPixel int

	// StorageBits is the number of bits one pixel occupies in the buffer.
	StorageBits int

	// Indexed indicates that pixels are palette indices.
	Indexed bool

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool

	// Extended indicates 16 bits per channel.
	Extended bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	Format1bppIndexed:    {BitsPerPixel: 1, StorageBits: 1, Indexed: true},
	Format4bppIndexed:    {BitsPerPixel: 4, StorageBits: 4, Indexed: true},
	Format8bppIndexed:    {BitsPerPixel: 8, StorageBits: 8, Indexed: true},
	Format16bppGrayScale: {BitsPerPixel: 16, StorageBits: 16, Extended: true},
	Format16bppRGB555:    {BitsPerPixel: 16, StorageBits: 16},
	Format16bppRGB565:    {BitsPerPixel: 16, StorageBits: 16},
	Format16bppARGB1555:  {BitsPerPixel: 16, StorageBits: 16, HasAlpha: true},
	Format24bppRGB:       {BitsPerPixel: 24, StorageBits: 32},
	Format32bppRGB:       {BitsPerPixel: 32, StorageBits: 32},
	Format32bppARGB:      {BitsPerPixel: 32, StorageBits: 32, HasAlpha: true},
	Format32bppPARGB:     {BitsPerPixel: 32, StorageBits: 32, HasAlpha: true, IsPremultiplied: true},
	Format48bppRGB:       {BitsPerPixel: 48, StorageBits: 48, Extended: true},
	Format64bppARGB:      {BitsPerPixel: 64, StorageBits: 64, HasAlpha: true, Extended: true},
	Format64bppPARGB:     {BitsPerPixel: 64, StorageBits: 64, HasAlpha: true, IsPremultiplied: true, Extended: true},
}

// Info returns the FormatInfo for this format.
func (f PixelFormat) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BitsPerPixel returns the nominal number of bits per pixel.
func (f PixelFormat) BitsPerPixel() int {
	return f.Info().BitsPerPixel
}

// IsIndexed returns true for palette-indexed formats.
func (f PixelFormat) IsIndexed() bool {
	return f.Info().Indexed
}

// HasAlpha returns true if this format has an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsPremultiplied returns true if alpha is premultiplied.
func (f PixelFormat) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// IsCell returns true for formats stored in 4-byte B,G,R,A/X cells.
func (f PixelFormat) IsCell() bool {
	switch f {
	case Format24bppRGB, Format32bppRGB, Format32bppARGB, Format32bppPARGB:
		return true
	default:
		return false
	}
}

// IsValid returns true if the format is a valid known format.
func (f PixelFormat) IsValid() bool {
	return f > FormatUndefined && f < formatCount
}

// PaletteSize returns the number of colors an indexed format can address,
// or 0 for direct-color formats.
func (f PixelFormat) PaletteSize() int {
	if !f.IsIndexed() {
		return 0
	}
	return 1 << f.BitsPerPixel()
}

// RowBytes returns the minimum number of bytes for a row of the given width.
func (f PixelFormat) RowBytes(width int) int {
	return (width*f.Info().StorageBits + 7) / 8
}

// Stride returns RowBytes rounded up to WordAlign.
func (f PixelFormat) Stride(width int) int {
	return Align(f.RowBytes(width))
}

// Align rounds n up to a multiple of WordAlign.
func Align(n int) int {
	return (n + WordAlign - 1) &^ (WordAlign - 1)
}

// String returns a string representation of the format.
func (f PixelFormat) String() string {
	switch f {
	case Format1bppIndexed:
		return "1bppIndexed"
	case Format4bppIndexed:
		return "4bppIndexed"
	case Format8bppIndexed:
		return "8bppIndexed"
	case Format16bppGrayScale:
		return "16bppGrayScale"
	case Format16bppRGB555:
		return "16bppRGB555"
	case Format16bppRGB565:
		return "16bppRGB565"
	case Format16bppARGB1555:
		return "16bppARGB1555"
	case Format24bppRGB:
		return "24bppRGB"
	case Format32bppRGB:
		return "32bppRGB"
	case Format32bppARGB:
		return "32bppARGB"
	case Format32bppPARGB:
		return "32bppPARGB"
	case Format48bppRGB:
		return "48bppRGB"
	case Format64bppARGB:
		return "64bppARGB"
	case Format64bppPARGB:
		return "64bppPARGB"
	default:
		return "Undefined"
	}
}
