package mapcache_test

import (
	"testing"

	"github.com/fblackburn/mapcache"
	"github.com/fblackburn/mapcache/internal/keymap"
	"github.com/fblackburn/mapcache/internal/transcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featureTable(keys ...string) mapcache.FeatureTable {
	t := make(mapcache.FeatureTable, len(keys))
	for i, k := range keys {
		t[i] = mapcache.FeatureEntry{Key: k}
	}
	return t
}

func keysOf(t mapcache.FeatureTable) []string {
	out := make([]string, len(t))
	for i, f := range t {
		out[i] = f.Key
	}
	return out
}

func TestCompact_KeepsReferencedInOrder(t *testing.T) {
	g, err := mapcache.NewGrid(4, 1)
	require.NoError(t, err)
	g.SetFeature(0, 0, 4)
	g.SetFeature(1, 0, 2)
	g.SetFeature(2, 0, 4)

	kept, err := mapcache.Compact(g, featureTable("a", "b", "c", "d", "e"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, keysOf(kept))
	assert.Equal(t, []int32{keymap.ToCodepoint(2), keymap.ToCodepoint(1), keymap.ToCodepoint(2), 0}, g.Cells)
}

func TestCompact_NoSwapAliasing(t *testing.T) {
	// Feature 3 moves to slot 1 while feature 1 is dropped, and feature 5
	// moves to slot 2 where feature 2's old codepoint lived: every cell must
	// be rewritten exactly once.
	g, err := mapcache.NewGrid(3, 2)
	require.NoError(t, err)
	g.SetFeature(0, 0, 3)
	g.SetFeature(1, 0, 5)
	g.SetFeature(2, 0, 3)
	g.SetFeature(0, 1, 5)

	kept, err := mapcache.Compact(g, featureTable("a", "b", "c", "d", "e"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "e"}, keysOf(kept))
	assert.Equal(t, 1, g.Feature(0, 0))
	assert.Equal(t, 2, g.Feature(1, 0))
	assert.Equal(t, 1, g.Feature(2, 0))
	assert.Equal(t, 2, g.Feature(0, 1))
	assert.Equal(t, 0, g.Feature(1, 1))
}

func TestCompact_BlankPlaceholderBecomesZero(t *testing.T) {
	g := &mapcache.Grid{Width: 2, Height: 1, Cells: []int32{keymap.Blank, keymap.ToCodepoint(1)}}
	kept, err := mapcache.Compact(g, featureTable("a"))
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.Equal(t, []int32{0, keymap.ToCodepoint(1)}, g.Cells)
}

func TestCompact_AllUnused(t *testing.T) {
	g, err := mapcache.NewGrid(3, 3)
	require.NoError(t, err)
	kept, err := mapcache.Compact(g, featureTable("a", "b"))
	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.NotNil(t, kept)
}

func TestCompact_RejectsUnknownCodepoints(t *testing.T) {
	cases := map[string]int32{
		"quote":        '"',
		"backslash":    '\\',
		"control":      7,
		"out of table": keymap.ToCodepoint(3),
	}
	for name, cp := range cases {
		t.Run(name, func(t *testing.T) {
			g := &mapcache.Grid{Width: 2, Height: 1, Cells: []int32{keymap.ToCodepoint(1), cp}}
			_, err := mapcache.Compact(g, featureTable("a", "b"))
			require.ErrorIs(t, err, mapcache.ErrCompactionInvariant)
			assert.Equal(t, []int32{keymap.ToCodepoint(1), cp}, g.Cells)
		})
	}
}

func TestCompact_RejectsUnencodableCodepoints(t *testing.T) {
	for _, cp := range []int32{-40, transcode.MaxCodepoint, 0x7FFFFFFF} {
		g := &mapcache.Grid{Width: 3, Height: 1, Cells: []int32{keymap.ToCodepoint(1), 0, cp}}
		_, err := mapcache.Compact(g, featureTable("a", "b"))
		require.ErrorIs(t, err, mapcache.ErrCodepointOverflow)
		assert.Contains(t, err.Error(), "cell (2,0)")
		assert.Equal(t, []int32{keymap.ToCodepoint(1), 0, cp}, g.Cells)
	}
}

func TestCompact_Idempotent(t *testing.T) {
	g, err := mapcache.NewGrid(8, 8)
	require.NoError(t, err)
	for i := 0; i < 64; i += 3 {
		g.SetFeature(i%8, i/8, 1+i%10)
	}
	tbl := featureTable("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")

	once, err := mapcache.Compact(g, tbl)
	require.NoError(t, err)
	cells := append([]int32(nil), g.Cells...)

	twice, err := mapcache.Compact(g, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, cells, g.Cells)
}
