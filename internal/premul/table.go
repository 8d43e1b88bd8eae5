// Package premul provides alpha premultiplication using a lookup table.
//
// The table maps every (channel, alpha) byte pair to its premultiplied
// channel value, replacing a multiply and a divide per channel with a
// single array lookup. It is built once at package initialization and is
// never written afterwards, so concurrent readers need no synchronization.
package premul

// table holds round(c * a / 255) at [c][a]. 64KB memory cost.
var table [256][256]uint8

func init() {
	for c := 0; c < 256; c++ {
		for a := 0; a < 256; a++ {
			// (x + 127) / 255 rounds to nearest: x/255 never has a .5 fraction.
			//nolint:gosec // G115: result is at most 255
			table[c][a] = uint8((c*a + 127) / 255)
		}
	}
}

// Lookup returns channel c premultiplied by alpha a.
//
// Lookup(c, 0) is 0 and Lookup(c, 255) is c for every c.
func Lookup(c, a uint8) uint8 {
	return table[c][a]
}

// Unmultiply reverses Lookup, rounding to nearest and clamping to 255.
// Unmultiply(c, 0) is 0.
func Unmultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	//nolint:gosec // G115: clamped to 255
	return uint8(min(v, 255))
}
