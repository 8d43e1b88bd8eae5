package bitmap

import (
	"bytes"
	"testing"
)

func TestProperty_Layout(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		typ  PropertyType
		want []byte
	}{
		{
			name: "ascii",
			prop: ASCIIProperty(TagExifUserComment, "ab"),
			typ:  TypeASCII,
			want: []byte{'a', 'b', 0},
		},
		{
			name: "byte",
			prop: ByteProperty(TagPixelUnit, 1),
			typ:  TypeByte,
			want: []byte{1},
		},
		{
			name: "long",
			prop: LongProperty(TagPixelPerUnitX, 2835),
			typ:  TypeLong,
			want: []byte{0x13, 0x0B, 0, 0},
		},
		{
			name: "rational",
			prop: RationalProperty(TagGamma, Rational{45455, 100000}),
			typ:  TypeRational,
			want: []byte{0x8F, 0xB1, 0, 0, 0xA0, 0x86, 0x01, 0},
		},
		{
			name: "undefined",
			prop: UndefinedProperty(TagICCProfile, []byte{9, 8}),
			typ:  TypeUndefined,
			want: []byte{9, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prop.Type != tt.typ {
				t.Errorf("Type = %v, want %v", tt.prop.Type, tt.typ)
			}
			if !bytes.Equal(tt.prop.Value, tt.want) {
				t.Errorf("Value = %v, want %v", tt.prop.Value, tt.want)
			}
			if tt.prop.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", tt.prop.Len(), len(tt.want))
			}
		})
	}
}

func TestProperty_Accessors(t *testing.T) {
	s, ok := ASCIIProperty(TagICCProfileDescriptor, "sRGB").ASCII()
	if !ok || s != "sRGB" {
		t.Errorf("ASCII() = %q, %v", s, ok)
	}
	if _, ok := LongProperty(TagPixelPerUnitX, 1).ASCII(); ok {
		t.Error("ASCII() ok on a Long property")
	}

	longs, ok := LongProperty(TagPixelPerUnitX, 1, 0xFFFFFFFF).Longs()
	if !ok || len(longs) != 2 || longs[0] != 1 || longs[1] != 0xFFFFFFFF {
		t.Errorf("Longs() = %v, %v", longs, ok)
	}

	in := []Rational{{64000, 100000}, {33000, 100000}, {0, 0}}
	rs, ok := RationalProperty(TagPrimaryChromaticities, in...).Rationals()
	if !ok || len(rs) != 3 {
		t.Fatalf("Rationals() = %v, %v", rs, ok)
	}
	for i := range in {
		if rs[i] != in[i] {
			t.Errorf("Rationals()[%d] = %v, want %v", i, rs[i], in[i])
		}
	}
	if got := rs[0].Float64(); got != 0.64 {
		t.Errorf("Float64() = %v, want 0.64", got)
	}
	if got := rs[2].Float64(); got != 0 {
		t.Errorf("Float64() with zero denominator = %v, want 0", got)
	}
}

func TestProperty_ByteCopiesInput(t *testing.T) {
	src := []byte{1, 2}
	p := UndefinedProperty(TagICCProfile, src)
	src[0] = 9
	if p.Value[0] != 1 {
		t.Error("UndefinedProperty shares the caller's buffer")
	}
}

func TestPropertyTag_String(t *testing.T) {
	if got := TagWhitePoint.String(); got != "WhitePoint" {
		t.Errorf("String() = %q", got)
	}
	if got := PropertyTag(0x1234).String(); got != "0x1234" {
		t.Errorf("String() = %q", got)
	}
}
