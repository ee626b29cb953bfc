package palette

import "fmt"

// Size is the number of colours in every palette produced by the extractor.
const Size = 4

// ColourHex is a single RGB colour encoded as "#RRGGBB" using uppercase hex
// digits.
type ColourHex string

// Palette is an ordered set of colours. The order matters: it is the base
// cycle for pattern generation and rotation.
type Palette []ColourHex

func rgbToHex(r, g, b byte) ColourHex {
	return ColourHex(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}

// Rotate returns a copy of the palette left-rotated by n positions.
func (p Palette) Rotate(n int) Palette {
	if len(p) == 0 {
		return Palette{}
	}
	n = ((n % len(p)) + len(p)) % len(p)
	rotated := make(Palette, 0, len(p))
	rotated = append(rotated, p[n:]...)
	rotated = append(rotated, p[:n]...)
	return rotated
}

// Strings returns the palette as plain strings for payloads and snapshots.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = string(c)
	}
	return out
}

func (p Palette) contains(c ColourHex) bool {
	for _, existing := range p {
		if existing == c {
			return true
		}
	}
	return false
}
