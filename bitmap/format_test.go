package bitmap

import "testing"

func TestPixelFormat_Stride(t *testing.T) {
	tests := []struct {
		format   PixelFormat
		width    int
		rowBytes int
		stride   int
	}{
		{Format1bppIndexed, 1, 1, 4},
		{Format1bppIndexed, 33, 5, 8},
		{Format4bppIndexed, 3, 2, 4},
		{Format4bppIndexed, 9, 5, 8},
		{Format8bppIndexed, 5, 5, 8},
		{Format16bppGrayScale, 3, 6, 8},
		{Format24bppRGB, 3, 12, 12},
		{Format32bppARGB, 1, 4, 4},
		{Format48bppRGB, 1, 6, 8},
		{Format64bppPARGB, 3, 24, 24},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.RowBytes(tt.width); got != tt.rowBytes {
				t.Errorf("RowBytes(%d) = %d, want %d", tt.width, got, tt.rowBytes)
			}
			if got := tt.format.Stride(tt.width); got != tt.stride {
				t.Errorf("Stride(%d) = %d, want %d", tt.width, got, tt.stride)
			}
			if got := tt.format.Stride(tt.width); got%WordAlign != 0 {
				t.Errorf("Stride(%d) = %d, not word aligned", tt.width, got)
			}
		})
	}
}

func TestPixelFormat_Info(t *testing.T) {
	tests := []struct {
		format      PixelFormat
		bits        int
		indexed     bool
		alpha       bool
		premul      bool
		cell        bool
		paletteSize int
	}{
		{Format1bppIndexed, 1, true, false, false, false, 2},
		{Format4bppIndexed, 4, true, false, false, false, 16},
		{Format8bppIndexed, 8, true, false, false, false, 256},
		{Format16bppGrayScale, 16, false, false, false, false, 0},
		{Format16bppARGB1555, 16, false, true, false, false, 0},
		{Format24bppRGB, 24, false, false, false, true, 0},
		{Format32bppRGB, 32, false, false, false, true, 0},
		{Format32bppARGB, 32, false, true, false, true, 0},
		{Format32bppPARGB, 32, false, true, true, true, 0},
		{Format64bppARGB, 64, false, true, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BitsPerPixel(); got != tt.bits {
				t.Errorf("BitsPerPixel() = %d, want %d", got, tt.bits)
			}
			if got := tt.format.IsIndexed(); got != tt.indexed {
				t.Errorf("IsIndexed() = %v, want %v", got, tt.indexed)
			}
			if got := tt.format.HasAlpha(); got != tt.alpha {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.alpha)
			}
			if got := tt.format.IsPremultiplied(); got != tt.premul {
				t.Errorf("IsPremultiplied() = %v, want %v", got, tt.premul)
			}
			if got := tt.format.IsCell(); got != tt.cell {
				t.Errorf("IsCell() = %v, want %v", got, tt.cell)
			}
			if got := tt.format.PaletteSize(); got != tt.paletteSize {
				t.Errorf("PaletteSize() = %d, want %d", got, tt.paletteSize)
			}
		})
	}
}

func TestPixelFormat_IsValid(t *testing.T) {
	if FormatUndefined.IsValid() {
		t.Error("FormatUndefined.IsValid() = true")
	}
	if PixelFormat(200).IsValid() {
		t.Error("PixelFormat(200).IsValid() = true")
	}
	if got := PixelFormat(200).String(); got != "Undefined" {
		t.Errorf("String() = %q, want %q", got, "Undefined")
	}
	for f := Format1bppIndexed; f < formatCount; f++ {
		if !f.IsValid() {
			t.Errorf("%v.IsValid() = false", f)
		}
		if f.BitsPerPixel() == 0 {
			t.Errorf("%v has no info entry", f)
		}
	}
}
