// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// codec.go — UTFGrid codec entry point: configuration, decode (wire → grid
// and feature table), encode (compaction then grid → wire), and the JSON
// byte-level wrappers around both.

package mapcache

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fblackburn/mapcache/internal/clock"
	"github.com/fblackburn/mapcache/internal/codec"
	"github.com/fblackburn/mapcache/internal/glyph"
	"github.com/fblackburn/mapcache/internal/keymap"
	"github.com/fblackburn/mapcache/internal/metrics"
	"github.com/fblackburn/mapcache/internal/transcode"
)

// Re-export types so callers only import this package.
type MetricsRecorder = metrics.Recorder
type SnapshotCodec = codec.Codec
type Clock = clock.Clock

// SnapshotCodecByName returns the snapshot codec named "msgpack" or "json".
func SnapshotCodecByName(name string) (SnapshotCodec, error) {
	return codec.ByName(name)
}

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// Config contains all Codec configuration. The zero value is usable.
type Config struct {
	Logger  Logger
	Metrics MetricsRecorder
	Clock   Clock

	// SnapshotCodec serialises MarshalSnapshot output (default MessagePack).
	SnapshotCodec SnapshotCodec
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.SnapshotCodec == nil {
		c.SnapshotCodec = codec.Default
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type codecStats struct {
	Decodes         atomic.Int64
	Encodes         atomic.Int64
	Snapshots       atomic.Int64
	Errors          atomic.Int64
	FeaturesDropped atomic.Int64
}

// Stats is the snapshot returned by Codec.Stats().
type Stats struct {
	Decodes         int64
	Encodes         int64
	Snapshots       int64
	Errors          int64
	FeaturesDropped int64
}

// ────────────────────────────────────────────────────────────────────────────
// Codec
// ────────────────────────────────────────────────────────────────────────────

// Codec converts between interaction grids and UTFGrid documents.
//
// A Codec holds no per-call state: one instance may encode and decode
// different tiles from many goroutines at once. The Grid passed to a single
// call must not be shared with another call.
type Codec struct {
	cfg     Config
	stats   codecStats
	logger  Logger
	metrics MetricsRecorder
}

// New creates a Codec from the provided Config.
func New(cfg Config) *Codec {
	cfg.defaults()
	return &Codec{cfg: cfg, logger: cfg.Logger, metrics: cfg.Metrics}
}

// Stats returns a snapshot of the codec's counters.
func (c *Codec) Stats() Stats {
	return Stats{
		Decodes:         c.stats.Decodes.Load(),
		Encodes:         c.stats.Encodes.Load(),
		Snapshots:       c.stats.Snapshots.Load(),
		Errors:          c.stats.Errors.Load(),
		FeaturesDropped: c.stats.FeaturesDropped.Load(),
	}
}

// Decode builds a grid and feature table from a wire document. Cells keep
// the decoded codepoints verbatim; the table follows the order of the "data"
// members, and the "keys" array is not consulted.
func (c *Codec) Decode(w *Wire) (*Grid, FeatureTable, error) {
	start := c.cfg.Clock.Now()
	g, t, err := c.decode(w)
	c.observe(metrics.OpDecode, start, err)
	if err != nil {
		return nil, nil, err
	}
	c.stats.Decodes.Add(1)
	c.metrics.RecordCells(metrics.OpDecode, len(g.Cells))
	c.logger.Debug("utfgrid decoded", "width", g.Width, "height", g.Height, "features", len(t))
	return g, t, nil
}

func (c *Codec) decode(w *Wire) (*Grid, FeatureTable, error) {
	if w == nil {
		return nil, nil, fmt.Errorf("%w: nil document", ErrMalformedWire)
	}
	g, err := decodeRows(w.Grid)
	if err != nil {
		return nil, nil, err
	}
	t := make(FeatureTable, 0, len(w.Data))
	for _, d := range w.Data {
		t = append(t, FeatureEntry{Key: d.Key, Payload: d.Value})
	}
	return g, t, nil
}

// decodeRows sizes the grid from the glyph count of the first row and
// requires every other row to split into exactly that many glyphs.
func decodeRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{Cells: []int32{}}, nil
	}
	width := glyph.Count(rows[0])
	g := &Grid{Width: width, Height: len(rows), Cells: make([]int32, width*len(rows))}
	for y, row := range rows {
		it := glyph.NewIterator(row)
		cells := g.Row(y)
		for x := range cells {
			raw, ok := it.Next()
			if !ok {
				return nil, &RowWidthError{Row: y, Want: width, Got: x}
			}
			cells[x] = transcode.Decode(raw)
		}
		if extra := glyph.Count(it.Rest()); extra > 0 {
			return nil, &RowWidthError{Row: y, Want: width, Got: width + extra}
		}
	}
	return g, nil
}

// Encode compacts the feature table and serialises the grid. g is rewritten
// in place by the compaction and should not be reused with t afterwards.
func (c *Codec) Encode(g *Grid, t FeatureTable) (*Wire, error) {
	start := c.cfg.Clock.Now()
	w, kept, err := c.encode(g, t)
	c.observe(metrics.OpEncode, start, err)
	if err != nil {
		return nil, err
	}
	dropped := len(t) - kept
	c.stats.Encodes.Add(1)
	c.stats.FeaturesDropped.Add(int64(dropped))
	c.metrics.RecordCells(metrics.OpEncode, len(g.Cells))
	c.metrics.RecordCompaction(len(t), kept)
	c.logger.Debug("utfgrid encoded", "width", g.Width, "height", g.Height, "features", kept, "dropped", dropped)
	return w, nil
}

func (c *Codec) encode(g *Grid, t FeatureTable) (*Wire, int, error) {
	if g == nil {
		return nil, 0, fmt.Errorf("%w: nil grid", ErrInvalidDimensions)
	}
	kept, err := Compact(g, t)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]string, g.Height)
	buf := make([]byte, 0, g.Width)
	for y := range rows {
		buf = buf[:0]
		for x, cp := range g.Row(y) {
			if cp == 0 {
				cp = keymap.Blank
			}
			if buf, err = transcode.Append(buf, cp); err != nil {
				return nil, 0, fmt.Errorf("%w: cell (%d,%d) codepoint %#x", ErrCodepointOverflow, x, y, cp)
			}
		}
		rows[y] = string(buf)
	}

	keys := make([]string, 1, len(kept)+1)
	data := make([]DataEntry, 0, len(kept))
	seen := make(map[string]int, len(kept))
	for _, f := range kept {
		if len(f.Payload) > 0 && !json.Valid(f.Payload) {
			return nil, 0, fmt.Errorf("%w: payload for key %q is not valid JSON", ErrMalformedWire, f.Key)
		}
		keys = append(keys, f.Key)
		if i, dup := seen[f.Key]; dup {
			data[i].Value = f.Payload
			continue
		}
		seen[f.Key] = len(data)
		data = append(data, DataEntry{Key: f.Key, Value: f.Payload})
	}
	return &Wire{Grid: rows, Keys: keys, Data: data}, len(kept), nil
}

// Unmarshal parses UTFGrid JSON bytes and decodes them.
func (c *Codec) Unmarshal(data []byte) (*Grid, FeatureTable, error) {
	start := c.cfg.Clock.Now()
	var w Wire
	if err := w.UnmarshalJSON(data); err != nil {
		c.observe(metrics.OpDecode, start, err)
		return nil, nil, err
	}
	return c.Decode(&w)
}

// Marshal encodes g and t to UTFGrid JSON bytes. See Encode.
func (c *Codec) Marshal(g *Grid, t FeatureTable) ([]byte, error) {
	w, err := c.Encode(g, t)
	if err != nil {
		return nil, err
	}
	return w.MarshalJSON()
}

// observe records latency for every call and error counters for failures.
func (c *Codec) observe(op string, start time.Time, err error) {
	c.metrics.RecordLatency(op, clock.Since(c.cfg.Clock, start))
	if err == nil {
		return
	}
	c.stats.Errors.Add(1)
	c.metrics.RecordError(op, errorKind(err))
	c.logger.Warn("utfgrid "+op+" failed", "error", err)
}
