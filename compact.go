package mapcache

import "github.com/fblackburn/mapcache/internal/keymap"

// Compact drops the features no cell of g references and renumbers the
// survivors densely, keeping their relative order. g is rewritten in place
// to the new numbering and blank cells are normalised to 0.
//
// Compact validates g against t first; on error g is left untouched.
func Compact(g *Grid, t FeatureTable) (FeatureTable, error) {
	if err := g.Validate(t); err != nil {
		return nil, err
	}

	used := make([]bool, len(t))
	for _, cp := range g.Cells {
		if idx := cellIndex(cp); idx > 0 {
			used[idx-1] = true
		}
	}

	// remap[old index] is the cell codepoint of the feature's new position;
	// remap[0] stays 0 so blank cells collapse to the raw sentinel.
	remap := make([]int32, len(t)+1)
	kept := make(FeatureTable, 0, len(t))
	for i, entry := range t {
		if !used[i] {
			continue
		}
		kept = append(kept, entry)
		remap[i+1] = keymap.ToCodepoint(int32(len(kept)))
	}

	for i, cp := range g.Cells {
		g.Cells[i] = remap[cellIndex(cp)]
	}
	return kept, nil
}
