// Package transcode converts between glyph bytes and the 32-bit codepoints
// stored in interaction grid cells.
package transcode

import "errors"

// MaxCodepoint is the first codepoint Append cannot pack (5-byte legacy limit).
const MaxCodepoint = 0x4000000

// ErrOverflow is returned by Append for codepoints outside [0, MaxCodepoint).
var ErrOverflow = errors.New("transcode: codepoint outside encodable range")

// lead-byte payload masks, indexed by sequence length.
var mask = [...]byte{0, 0x7F, 0x1F, 0x0F, 0x07, 0x03, 0x01}

// Decode computes the codepoint of a raw glyph as produced by the glyph
// package. A single byte is its own value, including fallback bytes above
// 0x7F. Glyphs longer than six bytes are not produced by the segmenter; only
// their first six bytes are considered.
func Decode(raw string) int32 {
	n := len(raw)
	switch {
	case n == 0:
		return 0
	case n == 1:
		return int32(raw[0])
	case n >= len(mask):
		n = len(mask) - 1
	}
	cp := int32(raw[0] & mask[n])
	for i := 1; i < n; i++ {
		cp = cp<<6 | int32(raw[i]&0x3F)
	}
	return cp
}

// Len returns the number of bytes Append writes for cp, or 0 when cp cannot
// be encoded.
func Len(cp int32) int {
	switch {
	case cp < 0:
		return 0
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	case cp < 0x200000:
		return 4
	case cp < MaxCodepoint:
		return 5
	}
	return 0
}

// Append packs cp with the UTF-8 bit layout and appends it to dst.
// Codepoints from 0x200000 use the legacy 5-byte form.
func Append(dst []byte, cp int32) ([]byte, error) {
	switch Len(cp) {
	case 1:
		return append(dst, byte(cp)), nil
	case 2:
		return append(dst,
			0xC0|byte(cp>>6),
			0x80|byte(cp&0x3F)), nil
	case 3:
		return append(dst,
			0xE0|byte(cp>>12),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F)), nil
	case 4:
		return append(dst,
			0xF0|byte(cp>>18),
			0x80|byte(cp>>12&0x3F),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F)), nil
	case 5:
		return append(dst,
			0xF8|byte(cp>>24),
			0x80|byte(cp>>18&0x3F),
			0x80|byte(cp>>12&0x3F),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F)), nil
	}
	return dst, ErrOverflow
}
