package bitmap

import "fmt"

// ARGB is a packed 0xAARRGGBB color. Its little-endian memory form is the
// B,G,R,A byte order used by cell formats.
type ARGB uint32

// NewARGB packs the four channels.
func NewARGB(a, r, g, b uint8) ARGB {
	return ARGB(a)<<24 | ARGB(r)<<16 | ARGB(g)<<8 | ARGB(b)
}

// A returns the alpha channel.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c ARGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c ARGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c ARGB) B() uint8 { return uint8(c) }

// RGBA implements color.Color. Channels are treated as non-premultiplied.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * a / 0xff
	g = uint32(c.G()) * a / 0xff
	b = uint32(c.B()) * a / 0xff
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

func (c ARGB) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// PaletteFlags uses the GDI+ PaletteFlags values.
type PaletteFlags uint32

// Palette flags.
const (
	PaletteHasAlpha  PaletteFlags = 0x1
	PaletteGrayScale PaletteFlags = 0x2
	PaletteHalftone  PaletteFlags = 0x4
)

// Palette is an ordered list of colors indexed by pixel value.
// Count is len(Entries); the backing array may have spare capacity.
type Palette struct {
	Flags   PaletteFlags
	Entries []ARGB
}

// NewPalette returns a palette with count zero entries and room for capacity.
func NewPalette(count, capacity int) *Palette {
	return &Palette{Entries: make([]ARGB, count, max(count, capacity))}
}

// Count returns the number of populated entries. A nil palette has none.
func (p *Palette) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// At returns entry i, or 0 if i is out of range.
func (p *Palette) At(i int) ARGB {
	if p == nil || i < 0 || i >= len(p.Entries) {
		return 0
	}
	return p.Entries[i]
}

// Clone returns a deep copy preserving the entry capacity.
func (p *Palette) Clone() *Palette {
	if p == nil {
		return nil
	}
	c := &Palette{Flags: p.Flags, Entries: make([]ARGB, len(p.Entries), cap(p.Entries))}
	copy(c.Entries, p.Entries)
	return c
}
