package pngcodec

import (
	"bytes"

	"github.com/gogpu/pngcodec/internal/pngfile"
)

// CodecFlags uses the GDI+ ImageCodecFlags values.
type CodecFlags uint32

// Codec flags.
const (
	CodecEncoder        CodecFlags = 0x00001
	CodecDecoder        CodecFlags = 0x00002
	CodecSupportBitmap  CodecFlags = 0x00004
	CodecSupportVector  CodecFlags = 0x00008
	CodecSeekableEncode CodecFlags = 0x00010
	CodecBlockingDecode CodecFlags = 0x00020
	CodecBuiltin        CodecFlags = 0x10000
	CodecSystem         CodecFlags = 0x20000
	CodecUser           CodecFlags = 0x40000
)

// CodecInfo describes the codec to an image codec registry.
type CodecInfo struct {
	CLSID             string
	FormatID          string
	CodecName         string
	FormatDescription string
	FilenameExtension string
	MimeType          string
	Flags             CodecFlags
	Version           uint32

	// SigPatterns and SigMasks identify the format from the first bytes of
	// a stream: data matches when data&mask == pattern for any pair.
	SigPatterns [][]byte
	SigMasks    [][]byte
}

// Info returns the descriptor of the built-in PNG codec.
func Info() CodecInfo {
	sig := []byte(pngfile.Signature)
	return CodecInfo{
		CLSID:             "557CF406-1A04-11D3-9A73-0000F81EF32E",
		FormatID:          "B96B3CAF-0728-11D3-9D7B-0000F81EF32E",
		CodecName:         "Built-in PNG",
		FormatDescription: "PNG",
		FilenameExtension: "*.PNG",
		MimeType:          "image/png",
		Flags:             CodecEncoder | CodecDecoder | CodecSupportBitmap | CodecBuiltin,
		Version:           1,
		SigPatterns:       [][]byte{sig},
		SigMasks:          [][]byte{bytes.Repeat([]byte{0xFF}, len(sig))},
	}
}

// Match reports whether header starts with one of the codec signatures.
func (c CodecInfo) Match(header []byte) bool {
	for i, pat := range c.SigPatterns {
		if len(header) < len(pat) || i >= len(c.SigMasks) {
			continue
		}
		mask := c.SigMasks[i]
		ok := true
		for j := range pat {
			if header[j]&mask[j] != pat[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
