package pngcodec

import (
	"testing"

	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
)

func TestGrayPalette(t *testing.T) {
	tests := []struct {
		n    int
		want []uint8
	}{
		{2, []uint8{0, 255}},
		{4, []uint8{0, 85, 170, 255}},
		{16, []uint8{0, 17, 34, 51, 68, 85, 102, 119, 136, 153, 170, 187, 204, 221, 238, 255}},
	}
	for _, tt := range tests {
		pal := grayPalette(tt.n, 256)
		if pal.Count() != tt.n || cap(pal.Entries) != 256 {
			t.Fatalf("grayPalette(%d) count = %d, cap = %d", tt.n, pal.Count(), cap(pal.Entries))
		}
		if pal.Flags != bitmap.PaletteGrayScale {
			t.Errorf("grayPalette(%d) flags = %v, want PaletteGrayScale", tt.n, pal.Flags)
		}
		for i, v := range tt.want {
			if want := bitmap.NewARGB(0xFF, v, v, v); pal.Entries[i] != want {
				t.Errorf("grayPalette(%d)[%d] = %v, want %v", tt.n, i, pal.Entries[i], want)
			}
		}
	}

	ramp := grayPalette(256, 256)
	for i, c := range ramp.Entries {
		if int(c.R()) != i {
			t.Fatalf("grayPalette(256)[%d] = %v", i, c)
		}
	}
}

func TestBuildPalette_Gray(t *testing.T) {
	f := &pngfile.File{Header: pngfile.Header{Depth: 4, ColorType: pngfile.ColorGray}}
	pal, flags := buildPalette(f, bitmap.Format4bppIndexed)
	if pal.Count() != 16 || cap(pal.Entries) != paletteHeadroom {
		t.Errorf("count = %d, cap = %d, want 16, %d", pal.Count(), cap(pal.Entries), paletteHeadroom)
	}
	if flags != bitmap.FlagColorSpaceGRAY {
		t.Errorf("flags = %#x, want FlagColorSpaceGRAY", flags)
	}

	f.Trans = &pngfile.Transparency{Gray: 3}
	pal, flags = buildPalette(f, bitmap.Format4bppIndexed)
	if pal.Entries[3].A() != 0 || pal.Entries[3].R() != 51 {
		t.Errorf("keyed entry = %v, want transparent gray 51", pal.Entries[3])
	}
	if pal.Flags&bitmap.PaletteHasAlpha == 0 || !flags.Has(bitmap.FlagHasAlpha) {
		t.Errorf("alpha flags missing: palette %v, image %#x", pal.Flags, flags)
	}

	f.Trans = &pngfile.Transparency{Gray: 300}
	pal, flags = buildPalette(f, bitmap.Format4bppIndexed)
	if pal.Flags&bitmap.PaletteHasAlpha != 0 || flags.Has(bitmap.FlagHasAlpha) {
		t.Error("out of range gray key marked the palette as alpha")
	}
}

func TestBuildPalette_Indexed(t *testing.T) {
	plte := make([]pngfile.Color, 6)
	for i := range plte {
		plte[i] = pngfile.Color{R: uint8(i), G: 1, B: 2}
	}

	tests := []struct {
		name      string
		depth     uint8
		format    bitmap.PixelFormat
		trans     *pngfile.Transparency
		wantCount int
		wantCap   int
		wantAlpha []uint8
	}{
		{"1bpp clamps", 1, bitmap.Format1bppIndexed, nil, 2, 2, []uint8{0xFF, 0xFF}},
		{"2bpp widened", 2, bitmap.Format4bppIndexed, nil, 4, paletteHeadroom, []uint8{0xFF, 0xFF, 0xFF, 0xFF}},
		{"8bpp short", 8, bitmap.Format8bppIndexed, nil, 6, 256, []uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{
			"tRNS clamped", 2, bitmap.Format4bppIndexed,
			&pngfile.Transparency{Alpha: []uint8{0, 1, 2, 3, 4, 5}},
			4, paletteHeadroom, []uint8{0, 1, 2, 3},
		},
		{
			"tRNS short", 8, bitmap.Format8bppIndexed,
			&pngfile.Transparency{Alpha: []uint8{0x10}},
			6, 256, []uint8{0x10, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &pngfile.File{
				Header:  pngfile.Header{Depth: tt.depth, ColorType: pngfile.ColorPalette},
				Palette: plte,
				Trans:   tt.trans,
			}
			pal, flags := buildPalette(f, tt.format)
			if pal.Count() != tt.wantCount || cap(pal.Entries) != tt.wantCap {
				t.Fatalf("count = %d, cap = %d, want %d, %d", pal.Count(), cap(pal.Entries), tt.wantCount, tt.wantCap)
			}
			for i, a := range tt.wantAlpha {
				if pal.Entries[i].A() != a || pal.Entries[i].R() != uint8(i) {
					t.Errorf("entry %d = %v, want alpha %#x red %d", i, pal.Entries[i], a, i)
				}
			}
			if !flags.Has(bitmap.FlagColorSpaceRGB) {
				t.Errorf("flags = %#x, want FlagColorSpaceRGB", flags)
			}
			if got := flags.Has(bitmap.FlagHasAlpha); got != (tt.trans != nil) {
				t.Errorf("FlagHasAlpha = %v, want %v", got, tt.trans != nil)
			}
		})
	}
}
