// Package metrics provides the Recorder interface and a noop implementation.
package metrics

import "time"

// Operation names passed to a Recorder.
const (
	OpDecode   = "decode"
	OpEncode   = "encode"
	OpSnapshot = "snapshot"
	OpRestore  = "restore"
)

// Recorder is the interface for recording codec metrics. Implementations
// must be safe for concurrent use; tiles are usually encoded in parallel.
type Recorder interface {
	RecordLatency(op string, d time.Duration)
	RecordError(op, kind string)
	RecordCells(op string, n int)
	RecordCompaction(before, after int)
}

// Noop is a Recorder that discards all data.
type Noop struct{}

func (Noop) RecordLatency(op string, d time.Duration) {}
func (Noop) RecordError(op, kind string)              {}
func (Noop) RecordCells(op string, n int)             {}
func (Noop) RecordCompaction(before, after int)       {}
