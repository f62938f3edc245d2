// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the UTFGrid codec,
// covering malformed wire documents, ragged grids, unencodable codepoints,
// feature-table inconsistencies, and snapshot failures.

// Package mapcache implements the MapCache UTFGrid tile format: a codec
// between interaction grids (per-cell feature references plus a feature
// table) and the JSON wire format map clients use for hit-testing.
package mapcache

import (
	"errors"
	"fmt"
)

// Wire errors
var (
	ErrMalformedWire    = errors.New("mapcache: malformed utfgrid document")
	ErrRowWidthMismatch = errors.New("mapcache: grid row width mismatch")
)

// Grid errors
var (
	ErrCodepointOverflow   = errors.New("mapcache: grid codepoint outside encodable range")
	ErrCompactionInvariant = errors.New("mapcache: grid references an unknown feature")
	ErrInvalidDimensions   = errors.New("mapcache: invalid grid dimensions")
)

// Snapshot errors
var (
	ErrSnapshotEncode = errors.New("mapcache: failed to encode grid snapshot")
	ErrSnapshotDecode = errors.New("mapcache: failed to decode grid snapshot")
)

// RowWidthError reports a grid row whose glyph count differs from the first
// row's. It matches ErrRowWidthMismatch under errors.Is.
type RowWidthError struct {
	Row  int
	Want int
	Got  int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("%s: row %d has %d glyphs, want %d", ErrRowWidthMismatch, e.Row, e.Got, e.Want)
}

// Is reports whether target is ErrRowWidthMismatch.
func (e *RowWidthError) Is(target error) bool { return target == ErrRowWidthMismatch }

// errorKind names the sentinel behind err for metrics labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedWire):
		return "malformed_wire"
	case errors.Is(err, ErrRowWidthMismatch):
		return "row_width"
	case errors.Is(err, ErrCodepointOverflow):
		return "codepoint_overflow"
	case errors.Is(err, ErrCompactionInvariant):
		return "compaction_invariant"
	case errors.Is(err, ErrInvalidDimensions):
		return "invalid_dimensions"
	case errors.Is(err, ErrSnapshotEncode), errors.Is(err, ErrSnapshotDecode):
		return "snapshot"
	}
	return "unknown"
}
