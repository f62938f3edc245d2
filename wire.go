// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// wire.go — the UTFGrid JSON document ({"grid","keys","data"}) as an
// order-preserving value tree, with byte-exact handling of grid row strings.

package mapcache

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DataEntry is one member of the wire "data" object.
type DataEntry struct {
	Key   string
	Value json.RawMessage
}

// Wire is a UTFGrid document. Data keeps the members of the "data" object in
// the order they were encountered; Keys is carried but not used to order
// features when decoding.
type Wire struct {
	Grid []string
	Keys []string
	Data []DataEntry
}

// UnmarshalJSON parses a UTFGrid document. "grid" must be an array of
// strings and "data" an object; "keys" is optional. Grid rows are unescaped
// byte for byte, so sequences that are not valid UTF-8 reach the glyph
// segmenter unchanged. A key repeated in "data" keeps its first position and
// its last value.
func (w *Wire) UnmarshalJSON(b []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWire, err)
	}
	if top == nil {
		return fmt.Errorf("%w: document is not an object", ErrMalformedWire)
	}

	rawGrid, ok := top["grid"]
	if !ok {
		return fmt.Errorf("%w: missing grid", ErrMalformedWire)
	}
	rows, err := parseRows(rawGrid)
	if err != nil {
		return err
	}

	rawData, ok := top["data"]
	if !ok {
		return fmt.Errorf("%w: missing data", ErrMalformedWire)
	}
	data, err := parseOrderedObject(rawData)
	if err != nil {
		return err
	}

	var keys []string
	if rawKeys, ok := top["keys"]; ok {
		if err := json.Unmarshal(rawKeys, &keys); err != nil {
			return fmt.Errorf("%w: keys: %v", ErrMalformedWire, err)
		}
	}

	*w = Wire{Grid: rows, Keys: keys, Data: data}
	return nil
}

// MarshalJSON writes the document as {"grid":…,"keys":…,"data":…}. Row and
// key strings are written verbatim apart from the escapes JSON requires;
// payloads are compacted and must be valid JSON (empty payloads become null).
func (w *Wire) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"grid":[`)
	for i, row := range w.Grid {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeQuoted(&buf, row)
	}
	buf.WriteString(`],"keys":[`)
	for i, key := range w.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeQuoted(&buf, key)
	}
	buf.WriteString(`],"data":{`)
	for i, d := range w.Data {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeQuoted(&buf, d.Key)
		buf.WriteByte(':')
		if len(d.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if err := json.Compact(&buf, d.Value); err != nil {
			return nil, fmt.Errorf("%w: payload for key %q: %v", ErrMalformedWire, d.Key, err)
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Lookup returns the payload stored under key in Data.
func (w *Wire) Lookup(key string) (json.RawMessage, bool) {
	for _, d := range w.Data {
		if d.Key == key {
			return d.Value, true
		}
	}
	return nil, false
}

func parseRows(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: grid is not an array: %v", ErrMalformedWire, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: grid is null", ErrMalformedWire)
	}
	rows := make([]string, len(items))
	for i, item := range items {
		row, err := unquote(item)
		if err != nil {
			return nil, fmt.Errorf("%w: grid row %d: %v", ErrMalformedWire, i, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// parseOrderedObject walks a JSON object with the token API so members come
// back in document order. Member names are cut from the raw input and
// unquoted byte for byte; Token would fold invalid UTF-8 and lone surrogates
// into U+FFFD and merge distinct keys.
func parseOrderedObject(raw json.RawMessage) ([]DataEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedWire, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: data is not an object", ErrMalformedWire)
	}

	entries := []DataEntry{}
	seen := make(map[string]int)
	for dec.More() {
		start := dec.InputOffset()
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: data: %v", ErrMalformedWire, err)
		}
		key, err := unquote(bytes.TrimLeft(raw[start:dec.InputOffset()], ", \t\r\n"))
		if err != nil {
			return nil, fmt.Errorf("%w: data key: %v", ErrMalformedWire, err)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: data[%q]: %v", ErrMalformedWire, key, err)
		}
		if i, dup := seen[key]; dup {
			entries[i].Value = value
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, DataEntry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedWire, err)
	}
	return entries, nil
}
