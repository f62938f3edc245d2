// Package keymap maps 1-based feature indices to grid codepoints and back.
//
// Codepoints start after the space character and skip '"' and '\\', so grid
// rows never need JSON escaping.
package keymap

const (
	// Blank is the printable placeholder written for cells without a feature.
	Blank int32 = 32

	quote     int32 = 34
	backslash int32 = 92
)

// ToCodepoint maps a 1-based feature index to its cell codepoint.
func ToCodepoint(index int32) int32 {
	v := index + Blank
	if v >= quote {
		v++
	}
	if v >= backslash {
		v++
	}
	return v
}

// ToIndex is the inverse of ToCodepoint.
func ToIndex(cp int32) int32 {
	if cp >= backslash {
		cp--
	}
	if cp >= quote {
		cp--
	}
	return cp - Blank
}

// IsCanonical reports whether cp is the codepoint of some index >= 1.
func IsCanonical(cp int32) bool {
	return cp > Blank && cp != quote && cp != backslash
}
