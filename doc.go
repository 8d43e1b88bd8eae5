// Package pngcodec decodes PNG streams into in-memory raster images and
// encodes them back.
//
// # Overview
//
// Decoding normalizes every PNG into one of a few canonical layouts held by
// a [bitmap.Image]:
//
//   - Palette and grayscale sources of up to 8 bits per sample become
//     1bppIndexed, 4bppIndexed or 8bppIndexed with a palette. 2-bit sources
//     are widened to 4 bits; grayscale sources get a synthesized ramp.
//   - Everything else becomes 4-byte B,G,R,A cells: 24bppRGB when opaque,
//     32bppPARGB with premultiplied alpha otherwise.
//
// Gamma, chromaticities, physical resolution, the ICC profile name and the
// first text comment are attached as metadata properties.
//
// Encoding accepts the indexed formats, 24bppRGB and the 32-bit formats and
// always writes non-interlaced, unfiltered data tagged as sRGB.
//
// # Quick Start
//
//	img, err := pngcodec.DecodeFile("in.png")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(img.Width(), img.Height(), img.Format())
//
//	err = pngcodec.EncodeFile("out.png", img)
//
// # Errors
//
// Errors match [ErrDecode] or [ErrEncode] and one kind: [ErrOutOfMemory],
// [ErrMalformedStream], [ErrUnsupportedPixelFormat], [ErrIOFailure] or
// [ErrInvalidParameter]. Test with [errors.Is].
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package pngcodec
