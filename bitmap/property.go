package bitmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PropertyTag identifies a metadata item. Values follow GDI+ PropertyTag*.
type PropertyTag uint32

// Property tags produced by the PNG decoder.
const (
	TagGamma                 PropertyTag = 0x0301
	TagICCProfileDescriptor  PropertyTag = 0x0302
	TagWhitePoint            PropertyTag = 0x013E
	TagPrimaryChromaticities PropertyTag = 0x013F
	TagPixelUnit             PropertyTag = 0x5110
	TagPixelPerUnitX         PropertyTag = 0x5111
	TagPixelPerUnitY         PropertyTag = 0x5112
	TagICCProfile            PropertyTag = 0x8773
	TagExifUserComment       PropertyTag = 0x9286
)

func (t PropertyTag) String() string {
	switch t {
	case TagGamma:
		return "Gamma"
	case TagICCProfileDescriptor:
		return "ICCProfileDescriptor"
	case TagWhitePoint:
		return "WhitePoint"
	case TagPrimaryChromaticities:
		return "PrimaryChromaticities"
	case TagPixelUnit:
		return "PixelUnit"
	case TagPixelPerUnitX:
		return "PixelPerUnitX"
	case TagPixelPerUnitY:
		return "PixelPerUnitY"
	case TagICCProfile:
		return "ICCProfile"
	case TagExifUserComment:
		return "ExifUserComment"
	default:
		return fmt.Sprintf("0x%04X", uint32(t))
	}
}

// PropertyType describes how a property value is encoded.
type PropertyType uint16

// Property value types.
const (
	TypeByte      PropertyType = 1
	TypeASCII     PropertyType = 2
	TypeLong      PropertyType = 4
	TypeRational  PropertyType = 5
	TypeUndefined PropertyType = 7
)

func (t PropertyType) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeASCII:
		return "ASCII"
	case TypeLong:
		return "Long"
	case TypeRational:
		return "Rational"
	case TypeUndefined:
		return "Undefined"
	default:
		return fmt.Sprintf("PropertyType(%d)", uint16(t))
	}
}

// Rational is an unsigned fraction.
type Rational struct {
	Num, Den uint32
}

// Float64 returns the value of r, or 0 if the denominator is zero.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Property is a tagged metadata value. Multi-byte values are little-endian
// 32-bit words; ASCII values include a trailing NUL.
type Property struct {
	Tag   PropertyTag
	Type  PropertyType
	Value []byte
}

// ByteProperty returns a Byte property holding v.
func ByteProperty(tag PropertyTag, v ...byte) Property {
	return Property{Tag: tag, Type: TypeByte, Value: append([]byte(nil), v...)}
}

// ASCIIProperty returns a NUL-terminated ASCII property.
func ASCIIProperty(tag PropertyTag, s string) Property {
	v := make([]byte, 0, len(s)+1)
	v = append(v, s...)
	return Property{Tag: tag, Type: TypeASCII, Value: append(v, 0)}
}

// LongProperty returns a Long property holding v.
func LongProperty(tag PropertyTag, v ...uint32) Property {
	b := make([]byte, 0, 4*len(v))
	for _, x := range v {
		b = binary.LittleEndian.AppendUint32(b, x)
	}
	return Property{Tag: tag, Type: TypeLong, Value: b}
}

// RationalProperty returns a Rational property holding v.
func RationalProperty(tag PropertyTag, v ...Rational) Property {
	b := make([]byte, 0, 8*len(v))
	for _, r := range v {
		b = binary.LittleEndian.AppendUint32(b, r.Num)
		b = binary.LittleEndian.AppendUint32(b, r.Den)
	}
	return Property{Tag: tag, Type: TypeRational, Value: b}
}

// UndefinedProperty returns an opaque blob property holding a copy of v.
func UndefinedProperty(tag PropertyTag, v []byte) Property {
	return Property{Tag: tag, Type: TypeUndefined, Value: append([]byte(nil), v...)}
}

// Len returns the value length in bytes.
func (p Property) Len() int {
	return len(p.Value)
}

// Clone returns a copy with its own value buffer.
func (p Property) Clone() Property {
	p.Value = append([]byte(nil), p.Value...)
	return p
}

// ASCII returns the string value up to the first NUL.
func (p Property) ASCII() (string, bool) {
	if p.Type != TypeASCII {
		return "", false
	}
	v := p.Value
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	return string(v), true
}

// Longs decodes a Long property.
func (p Property) Longs() ([]uint32, bool) {
	if p.Type != TypeLong || len(p.Value)%4 != 0 {
		return nil, false
	}
	out := make([]uint32, len(p.Value)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(p.Value[4*i:])
	}
	return out, true
}

// Rationals decodes a Rational property.
func (p Property) Rationals() ([]Rational, bool) {
	if p.Type != TypeRational || len(p.Value)%8 != 0 {
		return nil, false
	}
	out := make([]Rational, len(p.Value)/8)
	for i := range out {
		out[i] = Rational{
			Num: binary.LittleEndian.Uint32(p.Value[8*i:]),
			Den: binary.LittleEndian.Uint32(p.Value[8*i+4:]),
		}
	}
	return out, true
}

// String formats the value for display.
func (p Property) String() string {
	switch p.Type {
	case TypeASCII:
		s, _ := p.ASCII()
		return fmt.Sprintf("%s=%q", p.Tag, s)
	case TypeLong:
		v, _ := p.Longs()
		return fmt.Sprintf("%s=%v", p.Tag, v)
	case TypeRational:
		v, _ := p.Rationals()
		return fmt.Sprintf("%s=%v", p.Tag, v)
	case TypeByte:
		return fmt.Sprintf("%s=%v", p.Tag, p.Value)
	default:
		return fmt.Sprintf("%s=<%d bytes>", p.Tag, len(p.Value))
	}
}
