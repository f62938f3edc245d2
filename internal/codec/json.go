// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// json.go — JSON snapshot codec wrapping encoding/json; the human-readable
// alternative to MsgPack, used when snapshots are inspected by hand.

package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is a snapshot codec using standard library encoding/json.
type JSON struct{}

// Marshal serializes v to JSON bytes.
func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON bytes into v. Numbers are kept as json.Number
// so that feature payloads survive a round trip without float rounding.
func (JSON) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }
