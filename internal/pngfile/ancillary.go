package pngfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	bst "github.com/mixcode/binarystruct"
	"golang.org/x/text/encoding/charmap"
)

// Color is one PLTE entry.
type Color struct {
	R, G, B uint8
}

// Transparency is the tRNS payload.
//
// For palette images Alpha holds one alpha value per leading palette entry.
// For gray and truecolor images the key fields hold the sample value that
// is fully transparent.
type Transparency struct {
	Alpha            []uint8
	Gray             uint16
	Red, Green, Blue uint16
}

// Chromaticities is the cHRM payload, CIE x/y times 100000.
type Chromaticities struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

// Physical is the pHYs payload.
type Physical struct {
	X, Y uint32
	Unit uint8
}

// ICCProfile is the iCCP payload with the profile decompressed.
type ICCProfile struct {
	Name        string
	Compression uint8
	Profile     []byte
}

// Text is one tEXt, zTXt or iTXt entry, converted to UTF-8.
type Text struct {
	Chunk   string
	Keyword string
	Text    string
}

// SRGBPerceptual is the perceptual rendering intent.
const SRGBPerceptual = 0

// maxTextLength bounds a decompressed zTXt/iTXt/iCCP payload.
const maxTextLength = 8 << 20

var latin1 = charmap.ISO8859_1.NewDecoder()

func parsePalette(data []byte, h Header) ([]Color, error) {
	switch h.ColorType {
	case ColorPalette, ColorRGB, ColorRGBA:
	default:
		return nil, FormatError("PLTE for a gray image")
	}
	n := len(data) / 3
	if n*3 != len(data) || n <= 0 || n > 256 {
		return nil, FormatError("bad PLTE length")
	}
	pal := make([]Color, n)
	for i := range pal {
		pal[i] = Color{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return pal, nil
}

func parseTransparency(data []byte, h Header) (*Transparency, error) {
	switch h.ColorType {
	case ColorPalette:
		if len(data) > 256 {
			return nil, FormatError("bad tRNS length")
		}
		alpha := make([]uint8, len(data))
		copy(alpha, data)
		return &Transparency{Alpha: alpha}, nil
	case ColorGray:
		var t struct{ Gray uint16 }
		if len(data) != 2 {
			return nil, FormatError("bad tRNS length")
		}
		if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &t); err != nil {
			return nil, err
		}
		return &Transparency{Gray: t.Gray}, nil
	case ColorRGB:
		var t struct{ Red, Green, Blue uint16 }
		if len(data) != 6 {
			return nil, FormatError("bad tRNS length")
		}
		if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &t); err != nil {
			return nil, err
		}
		return &Transparency{Red: t.Red, Green: t.Green, Blue: t.Blue}, nil
	default:
		return nil, FormatError("tRNS for an image with an alpha channel")
	}
}

func parseGamma(data []byte) (uint32, error) {
	var g uint32
	if len(data) != 4 {
		return 0, FormatError("bad gAMA length")
	}
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &g); err != nil {
		return 0, err
	}
	if g == 0 {
		return 0, FormatError("zero gamma")
	}
	return g, nil
}

func parseChromaticities(data []byte) (*Chromaticities, error) {
	var c Chromaticities
	if len(data) != 32 {
		return nil, FormatError("bad cHRM length")
	}
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func parsePhysical(data []byte) (*Physical, error) {
	var p Physical
	if len(data) != 9 {
		return nil, FormatError("bad pHYs length")
	}
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func parseSRGB(data []byte) (uint8, error) {
	if len(data) != 1 {
		return 0, FormatError("bad sRGB length")
	}
	if data[0] > 3 {
		return 0, FormatError("bad sRGB rendering intent")
	}
	return data[0], nil
}

// iccpHeader is the leading part of an iCCP chunk.
type iccpHeader struct {
	Name        string `binary:"zstring"`
	Compression uint8
}

func parseICCProfile(data []byte) (*ICCProfile, error) {
	var hdr iccpHeader
	n, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &hdr)
	if err != nil {
		return nil, FormatError("bad iCCP header")
	}
	if len(hdr.Name) == 0 || len(hdr.Name) > 79 {
		return nil, FormatError("bad iCCP profile name")
	}
	if hdr.Compression != 0 {
		return nil, UnsupportedError(fmt.Sprintf("iCCP compression method %d", hdr.Compression))
	}
	profile, err := inflate(data[n:])
	if err != nil {
		return nil, err
	}
	name, err := latin1.String(hdr.Name)
	if err != nil {
		return nil, err
	}
	return &ICCProfile{Name: name, Compression: hdr.Compression, Profile: profile}, nil
}

// splitKeyword splits a text chunk at its NUL-terminated keyword.
func splitKeyword(data []byte) (keyword, rest []byte, err error) {
	i := bytes.IndexByte(data, 0)
	if i <= 0 || i > 79 {
		return nil, nil, FormatError("bad text keyword")
	}
	return data[:i], data[i+1:], nil
}

func parseText(name string, data []byte) (Text, error) {
	key, rest, err := splitKeyword(data)
	if err != nil {
		return Text{}, err
	}
	keyword, err := latin1.String(string(key))
	if err != nil {
		return Text{}, err
	}
	t := Text{Chunk: name, Keyword: keyword}

	switch name {
	case chunkTEXT:
		t.Text, err = latin1.String(string(rest))
	case chunkZTXT:
		if len(rest) < 1 || rest[0] != 0 {
			return Text{}, UnsupportedError("zTXt compression method")
		}
		var body []byte
		if body, err = inflate(rest[1:]); err == nil {
			t.Text, err = latin1.String(string(body))
		}
	case chunkITXT:
		t.Text, err = parseInternationalText(rest)
	}
	if err != nil {
		return Text{}, err
	}
	return t, nil
}

// parseInternationalText decodes the part of an iTXt chunk after the keyword.
func parseInternationalText(rest []byte) (string, error) {
	if len(rest) < 2 {
		return "", FormatError("short iTXt")
	}
	compressed, method := rest[0], rest[1]
	rest = rest[2:]
	// Language tag and translated keyword.
	for range 2 {
		i := bytes.IndexByte(rest, 0)
		if i < 0 {
			return "", FormatError("unterminated iTXt field")
		}
		rest = rest[i+1:]
	}
	if compressed == 0 {
		return string(rest), nil
	}
	if method != 0 {
		return "", UnsupportedError("iTXt compression method")
	}
	body, err := inflate(rest)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// inflate decompresses a zlib stream held in memory.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, FormatError("bad zlib stream: " + err.Error())
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(io.LimitReader(zr, maxTextLength+1))
	if err != nil {
		return nil, FormatError("bad zlib stream: " + err.Error())
	}
	if len(out) > maxTextLength {
		return nil, UnsupportedError("compressed chunk too large")
	}
	return out, nil
}
