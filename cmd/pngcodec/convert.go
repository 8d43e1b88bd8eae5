package main

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pngcodec"
	"github.com/gogpu/pngcodec/bitmap"
)

var importCmd = &cobra.Command{
	Use:   "import [input] [output.png]",
	Short: "Convert a GIF, JPEG, BMP, TIFF or WebP image to PNG",
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [input.png] [output]",
	Short: "Convert a PNG to BMP or TIFF, chosen by the output extension",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(filepath.Clean(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if sig, _ := br.Peek(8); pngcodec.Info().Match(sig) {
		img, err := pngcodec.Decode(br, cfg.DecodeOptions()...)
		if err != nil {
			return err
		}
		return pngcodec.EncodeFile(args[1], img, cfg.EncodeOptions()...)
	}

	src, name, err := image.Decode(br)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	img, err := bitmap.FromStdImage(src)
	if err != nil {
		return fmt.Errorf("converting %s image: %w", name, err)
	}
	return pngcodec.EncodeFile(args[1], img, cfg.EncodeOptions()...)
}

func runExport(_ *cobra.Command, args []string) (err error) {
	img, err := pngcodec.DecodeFile(args[0], cfg.DecodeOptions()...)
	if err != nil {
		return err
	}
	src, err := img.ToStdImage()
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(args[1]))
	if ext != ".bmp" && ext != ".tif" && ext != ".tiff" {
		return fmt.Errorf("unsupported output extension %q", ext)
	}

	f, err := os.Create(filepath.Clean(args[1]))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if ext == ".bmp" {
		err = bmp.Encode(w, src)
	} else {
		err = tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	if err != nil {
		return err
	}
	return w.Flush()
}
