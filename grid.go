// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// grid.go — in-memory interaction grid (row-major cell codepoints) and the
// ordered feature table whose positions the cells refer to.

package mapcache

import (
	"encoding/json"
	"fmt"

	"github.com/fblackburn/mapcache/internal/keymap"
	"github.com/fblackburn/mapcache/internal/transcode"
)

// Grid is a row-major matrix of cell codepoints. A cell holding 0 (or the
// blank placeholder 32) has no feature; any other value is the codepoint of
// a 1-based feature index.
type Grid struct {
	Width  int
	Height int
	Cells  []int32
}

// NewGrid returns a Width x Height grid with no features.
func NewGrid(width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{Width: width, Height: height, Cells: make([]int32, width*height)}, nil
}

// At returns the codepoint stored at column x, row y.
func (g *Grid) At(x, y int) int32 { return g.Cells[y*g.Width+x] }

// Set stores a raw codepoint at column x, row y.
func (g *Grid) Set(x, y int, cp int32) { g.Cells[y*g.Width+x] = cp }

// SetFeature points the cell at column x, row y to a 1-based feature index.
// Index 0 clears the cell.
func (g *Grid) SetFeature(x, y int, index int) {
	if index == 0 {
		g.Set(x, y, 0)
		return
	}
	g.Set(x, y, keymap.ToCodepoint(int32(index)))
}

// Feature returns the 1-based feature index referenced at column x, row y,
// or 0 for a blank cell. Non-canonical codepoints return -1.
func (g *Grid) Feature(x, y int) int {
	return cellIndex(g.At(x, y))
}

// Row returns the cells of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []int32 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]int32, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// Validate checks that g is rectangular and that every non-blank cell
// resolves to a feature of t. Cells no glyph can carry fail with
// ErrCodepointOverflow before the table is consulted.
func (g *Grid) Validate(t FeatureTable) error {
	if g.Width < 0 || g.Height < 0 || len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d with %d cells", ErrInvalidDimensions, g.Width, g.Height, len(g.Cells))
	}
	for i, cp := range g.Cells {
		if transcode.Len(cp) == 0 {
			return fmt.Errorf("%w: cell (%d,%d) codepoint %#x", ErrCodepointOverflow, i%g.Width, i/g.Width, cp)
		}
		idx := cellIndex(cp)
		if idx < 0 || idx > len(t) {
			return fmt.Errorf("%w: cell (%d,%d) codepoint %d", ErrCompactionInvariant, i%g.Width, i/g.Width, cp)
		}
	}
	return nil
}

// cellIndex decodes a cell codepoint to its 1-based feature index: 0 for the
// raw sentinel and the blank placeholder, -1 for codepoints no index maps to.
func cellIndex(cp int32) int {
	switch {
	case cp == 0 || cp == keymap.Blank:
		return 0
	case keymap.IsCanonical(cp):
		return int(keymap.ToIndex(cp))
	}
	return -1
}

// FeatureEntry is one feature of a grid: its key and JSON payload.
type FeatureEntry struct {
	Key     string
	Payload json.RawMessage
}

// FeatureTable is the ordered feature list; position i is feature index i+1.
type FeatureTable []FeatureEntry

// Append adds a feature and returns its 1-based index.
func (t *FeatureTable) Append(key string, payload json.RawMessage) int {
	*t = append(*t, FeatureEntry{Key: key, Payload: payload})
	return len(*t)
}

// Lookup returns the feature at a 1-based index.
func (t FeatureTable) Lookup(index int) (FeatureEntry, bool) {
	if index < 1 || index > len(t) {
		return FeatureEntry{}, false
	}
	return t[index-1], true
}
