// Package codec provides the byte codecs used to serialise grid snapshots.
package codec

import "fmt"

// Codec encodes and decodes snapshot values.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// Default is the snapshot codec used when none is configured.
var Default Codec = MsgPack{}

// ByName returns the codec registered under name ("json" or "msgpack").
func ByName(name string) (Codec, error) {
	switch name {
	case "", MsgPack{}.Name():
		return MsgPack{}, nil
	case JSON{}.Name():
		return JSON{}, nil
	}
	return nil, fmt.Errorf("codec: unknown codec %q", name)
}
