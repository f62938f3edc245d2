// Package glyph splits UTFGrid row strings into glyphs the same way libGD
// (and therefore MapServer) splits text before rendering it.
//
// The rules are a permissive UTF-8 variant: lead bytes announce sequences of
// up to six bytes, and any sequence whose continuation bytes do not match is
// emitted as a single raw byte instead of being rejected.
//
//	U-00000000 U-0000007F: 0xxxxxxx
//	U-00000080 U-000007FF: 110xxxxx 10xxxxxx
//	U-00000800 U-0000FFFF: 1110xxxx 10xxxxxx 10xxxxxx
//	U-00010000 U-001FFFFF: 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
//	U-00200000 U-03FFFFFF: 111110xx 10xxxxxx 10xxxxxx 10xxxxxx 10xxxxxx
//	U-04000000 U-7FFFFFFF: 1111110x 10xxxxxx 10xxxxxx 10xxxxxx 10xxxxxx 10xxxxxx
package glyph

// End is returned by Next when no glyph is left: the string is exhausted or
// positioned at a NUL byte.
const End = -1

// MaxBytes is the widest glyph Next can return.
const MaxBytes = 6

// Next returns the byte width of the glyph at the start of s, or End.
//
// Bytes past the end of s read as NUL, so a truncated multi-byte sequence
// falls back to a single-byte glyph.
func Next(s string) int {
	if len(s) == 0 || s[0] == 0 {
		return End
	}
	n := width(s[0])
	for i := 1; i < n; i++ {
		if !continuation(at(s, i)) {
			return 1
		}
	}
	return n
}

// Count returns the number of glyphs in s.
func Count(s string) int {
	count := 0
	for {
		n := Next(s)
		if n == End {
			return count
		}
		s = s[n:]
		count++
	}
}

// Split returns the raw glyphs of s in order.
func Split(s string) []string {
	var out []string
	it := Iterator{text: s}
	for {
		g, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, g)
	}
}

// width is the sequence length announced by a lead byte. Naked trail bytes
// 0x80..0xBF and the 0xFE/0xFF bytes stand for themselves.
func width(b byte) int {
	switch {
	case b < 0xC0:
		return 1
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF8:
		return 4
	case b < 0xFC:
		return 5
	case b < 0xFE:
		return 6
	}
	return 1
}

func continuation(b byte) bool { return b&0xC0 == 0x80 }

func at(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}
