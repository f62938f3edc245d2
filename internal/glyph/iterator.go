package glyph

// Iterator walks a string glyph by glyph.
type Iterator struct {
	text  string
	index int
}

// NewIterator returns an Iterator positioned at the start of text.
func NewIterator(text string) *Iterator {
	return &Iterator{text: text}
}

// Next returns the raw bytes of the next glyph. ok is false once the end of
// the string (or a NUL byte) is reached; the iterator then stays there.
func (it *Iterator) Next() (raw string, ok bool) {
	rest := it.text[it.index:]
	n := Next(rest)
	if n == End {
		return "", false
	}
	it.index += n
	return rest[:n], true
}

// Offset is the byte offset of the next glyph.
func (it *Iterator) Offset() int { return it.index }

// Rest returns the unread part of the string.
func (it *Iterator) Rest() string {
	return it.text[it.index:]
}
