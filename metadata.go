package pngcodec

import (
	"github.com/gogpu/pngcodec/bitmap"
	"github.com/gogpu/pngcodec/internal/pngfile"
)

// chunkDenominator is the fixed scale of gAMA and cHRM values.
const chunkDenominator = 100000

// inchesPerMeter converts pixels per meter to dots per inch.
const inchesPerMeter = 0.0254

// attachMetadata sets the resolution and appends the metadata properties
// found in f. Properties are added in a fixed order and only for chunks
// present in the stream.
func attachMetadata(img *bitmap.Image, f *pngfile.File) {
	if p := f.Phys; p != nil && p.Unit == pngfile.UnitMeter {
		img.SetDPI(float64(p.X)*inchesPerMeter, float64(p.Y)*inchesPerMeter)
		img.AddFlags(bitmap.FlagHasRealDPI)
	}

	if icc := f.ICC; icc != nil {
		img.AddProperty(bitmap.ASCIIProperty(bitmap.TagICCProfileDescriptor, icc.Name))
		img.AddProperty(bitmap.ByteProperty(bitmap.TagICCProfile, icc.Compression))
	}

	if f.Gamma != nil {
		img.AddProperty(bitmap.RationalProperty(bitmap.TagGamma,
			bitmap.Rational{Num: *f.Gamma, Den: chunkDenominator}))
	}

	if c := f.Chroma; c != nil {
		img.AddProperty(bitmap.RationalProperty(bitmap.TagPrimaryChromaticities,
			fixed(c.RedX), fixed(c.RedY),
			fixed(c.GreenX), fixed(c.GreenY),
			fixed(c.BlueX), fixed(c.BlueY)))
		img.AddProperty(bitmap.RationalProperty(bitmap.TagWhitePoint,
			fixed(c.WhiteX), fixed(c.WhiteY)))
	}

	if p := f.Phys; p != nil {
		img.AddProperty(bitmap.ByteProperty(bitmap.TagPixelUnit, p.Unit))
		img.AddProperty(bitmap.LongProperty(bitmap.TagPixelPerUnitX, p.X))
		img.AddProperty(bitmap.LongProperty(bitmap.TagPixelPerUnitY, p.Y))
	}

	if len(f.Texts) > 0 {
		img.AddProperty(bitmap.ASCIIProperty(bitmap.TagExifUserComment, f.Texts[0].Text))
	}
}

func fixed(v uint32) bitmap.Rational {
	return bitmap.Rational{Num: v, Den: chunkDenominator}
}
