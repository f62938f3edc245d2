// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// format.go — image-format descriptor for UTFGrid tiles: name, file
// extension, MIME type and blank-tile generation.

package mapcache

// FormatType identifies the family of an image format. The zero value is
// unknown.
type FormatType int

const (
	FormatUTFGrid FormatType = iota + 1
)

func (t FormatType) String() string {
	if t == FormatUTFGrid {
		return "utfgrid"
	}
	return "unknown"
}

// Format describes how tiles of one image format are named and served.
type Format struct {
	Name      string
	Extension string
	MimeType  string
	Type      FormatType
}

// NewUTFGridFormat returns the descriptor for UTFGrid tiles.
func NewUTFGridFormat(name string) *Format {
	return &Format{
		Name:      name,
		Extension: "json",
		MimeType:  "application/json",
		Type:      FormatUTFGrid,
	}
}

// CreateEmpty returns an encoded width x height tile in which no cell
// references a feature. A nil c uses a default Codec.
func (f *Format) CreateEmpty(c *Codec, width, height int) ([]byte, error) {
	if c == nil {
		c = New(Config{})
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return c.Marshal(g, nil)
}
