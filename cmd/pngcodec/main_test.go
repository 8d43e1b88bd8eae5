package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/pngcodec"
	"github.com/gogpu/pngcodec/bitmap"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		srcW, srcH, w, h int
		wantW, wantH     int
	}{
		{200, 100, 50, 0, 50, 25},
		{200, 100, 0, 10, 20, 10},
		{200, 100, 30, 40, 30, 40},
		{1000, 1, 10, 0, 10, 1},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.srcW, tt.srcH, tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitSize(%d, %d, %d, %d) = %d, %d, want %d, %d",
				tt.srcW, tt.srcH, tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestFlagNames(t *testing.T) {
	got := flagNames(bitmap.FlagHasAlpha | bitmap.FlagColorSpaceRGB | bitmap.FlagReadOnly)
	if want := []string{"alpha", "rgb", "read-only"}; !slices.Equal(got, want) {
		t.Errorf("flagNames() = %v, want %v", got, want)
	}
	if got := flagNames(0); !slices.Equal(got, []string{"none"}) {
		t.Errorf("flagNames(0) = %v, want [none]", got)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		pngcodec.SetLogger(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img, err := bitmap.New(8, 4, bitmap.Format24bppRGB)
	if err != nil {
		t.Fatal(err)
	}
	_ = img.SetARGB(2, 1, bitmap.NewARGB(0xFF, 10, 20, 30))
	img.SetDPI(300, 300)
	img.AddFlags(bitmap.FlagHasRealDPI)
	if err := pngcodec.EncodeFile(path, img); err != nil {
		t.Fatal(err)
	}
}

func TestIdentifyCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeTestPNG(t, path)

	out, err := run(t, "identify", path)
	if err != nil {
		t.Fatalf("identify error = %v", err)
	}
	for _, want := range []string{"8 x 4", "24bppRGB", "Gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("identify output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "identify", filepath.Join(dir, "missing.png")); err == nil {
		t.Error("identify of a missing file succeeded")
	}
}

func TestRecodeCommand(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png")
	writeTestPNG(t, in)

	if _, err := run(t, "recode", "--width", "4", "--level", "9", in, out); err != nil {
		t.Fatalf("recode error = %v", err)
	}
	img, err := pngcodec.DecodeFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 4 || img.Height() != 2 {
		t.Errorf("recoded size = %dx%d, want 4x2", img.Width(), img.Height())
	}
	if x, y := img.DPI(); !img.Flags().Has(bitmap.FlagHasRealDPI) || math.Abs(x-300) > 0.05 || math.Abs(y-300) > 0.05 {
		t.Errorf("recoded DPI = %v, %v (flags %#x), want 300", x, y, img.Flags())
	}
}

func TestImportExportCommands(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 6, 3))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	src.Set(1, 1, color.RGBA{R: 200, A: 0xFF})

	jpg := filepath.Join(dir, "in.jpg")
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jpg, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	png := filepath.Join(dir, "out.png")
	if _, err := run(t, "import", jpg, png); err != nil {
		t.Fatalf("import error = %v", err)
	}
	img, err := pngcodec.DecodeFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 6 || img.Height() != 3 || img.Format() != bitmap.Format24bppRGB {
		t.Errorf("imported %dx%d %v, want 6x3 24bppRGB", img.Width(), img.Height(), img.Format())
	}

	for _, name := range []string{"out.bmp", "out.tiff"} {
		dst := filepath.Join(dir, name)
		if _, err := run(t, "export", png, dst); err != nil {
			t.Fatalf("export %s error = %v", name, err)
		}
		if fi, err := os.Stat(dst); err != nil || fi.Size() == 0 {
			t.Errorf("export %s wrote nothing: %v", name, err)
		}
	}

	if _, err := run(t, "export", png, filepath.Join(dir, "out.gif")); err == nil {
		t.Error("export to .gif succeeded")
	}
}
