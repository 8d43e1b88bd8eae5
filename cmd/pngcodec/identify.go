package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/pngcodec"
	"github.com/gogpu/pngcodec/bitmap"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file...]",
	Short: "Print the decoded layout and metadata of PNG files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().Bool("palette", false, "List palette entries")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	showPalette, _ := cmd.Flags().GetBool("palette")
	out := cmd.OutOrStdout()

	var failed int
	for _, path := range args {
		img, err := pngcodec.DecodeFile(path, cfg.DecodeOptions()...)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}
		describe(out, path, img, showPalette)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(args))
	}
	return nil
}

func describe(w io.Writer, path string, img *bitmap.Image, showPalette bool) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)

	header.Fprintln(w, path)
	field := func(name, format string, a ...any) {
		label.Fprintf(w, "  %-12s", name)
		fmt.Fprintf(w, format+"\n", a...)
	}

	field("Dimensions", "%d x %d", img.Width(), img.Height())
	field("Format", "%s (%d bpp, stride %d)", img.Format(), img.Format().BitsPerPixel(), img.Stride())
	field("Flags", "%s", strings.Join(flagNames(img.Flags()), " "))
	if img.Flags().Has(bitmap.FlagHasRealDPI) {
		x, y := img.DPI()
		field("Resolution", "%.2f x %.2f dpi", x, y)
	}
	if p := img.Palette(); p.Count() > 0 {
		field("Palette", "%d entries", p.Count())
		if showPalette {
			for i, c := range p.Entries {
				fmt.Fprintf(w, "    %3d %s\n", i, c)
			}
		}
	}
	if props := img.Properties(); len(props) > 0 {
		label.Fprintln(w, "  Properties")
		for _, p := range props {
			fmt.Fprintf(w, "    %s\n", p)
		}
	}
}

var flagLabels = []struct {
	flag bitmap.Flags
	name string
}{
	{bitmap.FlagHasAlpha, "alpha"},
	{bitmap.FlagColorSpaceRGB, "rgb"},
	{bitmap.FlagColorSpaceGRAY, "gray"},
	{bitmap.FlagHasRealDPI, "dpi"},
	{bitmap.FlagHasRealPixelSize, "pixel-size"},
	{bitmap.FlagReadOnly, "read-only"},
}

func flagNames(f bitmap.Flags) []string {
	var names []string
	for _, l := range flagLabels {
		if f.Has(l.flag) {
			names = append(names, l.name)
		}
	}
	if len(names) == 0 {
		return []string{"none"}
	}
	return names
}
