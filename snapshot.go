package mapcache

import (
	"fmt"

	"github.com/fblackburn/mapcache/internal/metrics"
)

const snapshotVersion = 1

// snapshot is the codec-neutral shape of a decoded grid and its table.
type snapshot struct {
	Version  int               `json:"v" msgpack:"v"`
	Width    int               `json:"w" msgpack:"w"`
	Height   int               `json:"h" msgpack:"h"`
	Cells    []int32           `json:"cells" msgpack:"cells"`
	Features []snapshotFeature `json:"features" msgpack:"features"`
}

type snapshotFeature struct {
	Key     string `json:"key" msgpack:"key"`
	Payload []byte `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// MarshalSnapshot serialises g and t with the configured SnapshotCodec.
// Unlike Encode it neither compacts nor rewrites g: cells are stored exactly
// as decoded, so UnmarshalSnapshot restores the same grid without running
// the glyph decoder again.
func (c *Codec) MarshalSnapshot(g *Grid, t FeatureTable) ([]byte, error) {
	start := c.cfg.Clock.Now()
	b, err := c.marshalSnapshot(g, t)
	c.observe(metrics.OpSnapshot, start, err)
	if err != nil {
		return nil, err
	}
	c.stats.Snapshots.Add(1)
	return b, nil
}

func (c *Codec) marshalSnapshot(g *Grid, t FeatureTable) ([]byte, error) {
	if g == nil || len(g.Cells) != g.Width*g.Height {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotEncode, ErrInvalidDimensions)
	}
	s := snapshot{
		Version:  snapshotVersion,
		Width:    g.Width,
		Height:   g.Height,
		Cells:    g.Cells,
		Features: make([]snapshotFeature, len(t)),
	}
	for i, f := range t {
		s.Features[i] = snapshotFeature{Key: f.Key, Payload: f.Payload}
	}
	b, err := c.cfg.SnapshotCodec.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrSnapshotEncode, c.cfg.SnapshotCodec.Name(), err)
	}
	return b, nil
}

// UnmarshalSnapshot restores a grid and table written by MarshalSnapshot
// with the same SnapshotCodec.
func (c *Codec) UnmarshalSnapshot(data []byte) (*Grid, FeatureTable, error) {
	start := c.cfg.Clock.Now()
	g, t, err := c.unmarshalSnapshot(data)
	c.observe(metrics.OpRestore, start, err)
	if err != nil {
		return nil, nil, err
	}
	return g, t, nil
}

func (c *Codec) unmarshalSnapshot(data []byte) (*Grid, FeatureTable, error) {
	var s snapshot
	if err := c.cfg.SnapshotCodec.Unmarshal(data, &s); err != nil {
		return nil, nil, fmt.Errorf("%w (%s): %v", ErrSnapshotDecode, c.cfg.SnapshotCodec.Name(), err)
	}
	if s.Version != snapshotVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotDecode, s.Version)
	}
	if s.Width < 0 || s.Height < 0 || len(s.Cells) != s.Width*s.Height {
		return nil, nil, fmt.Errorf("%w: %dx%d with %d cells", ErrSnapshotDecode, s.Width, s.Height, len(s.Cells))
	}
	cells := s.Cells
	if cells == nil {
		cells = []int32{}
	}
	t := make(FeatureTable, len(s.Features))
	for i, f := range s.Features {
		t[i] = FeatureEntry{Key: f.Key, Payload: f.Payload}
	}
	return &Grid{Width: s.Width, Height: s.Height, Cells: cells}, t, nil
}
