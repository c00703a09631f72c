package state

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Bundle is a flat key/value store for view state. Values are kept as
// strings; typed getters fall back to the given default when a key is
// missing or does not parse.
type Bundle struct {
	values map[string]string
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{values: make(map[string]string)}
}

func (b *Bundle) set(key, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	b.values[key] = value
}

// PutString stores s under key.
func (b *Bundle) PutString(key, s string) { b.set(key, s) }

// PutInt stores v under key.
func (b *Bundle) PutInt(key string, v int) { b.set(key, strconv.Itoa(v)) }

// PutBool stores v under key.
func (b *Bundle) PutBool(key string, v bool) { b.set(key, strconv.FormatBool(v)) }

// PutFloat32 stores v with the shortest representation that reads back to
// the same float32.
func (b *Bundle) PutFloat32(key string, v float32) {
	b.set(key, strconv.FormatFloat(float64(v), 'g', -1, 32))
}

// Has reports whether key is present.
func (b *Bundle) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// String returns the value for key, or def.
func (b *Bundle) String(key, def string) string {
	if v, ok := b.values[key]; ok {
		return v
	}
	return def
}

// Int returns the integer for key, or def.
func (b *Bundle) Int(key string, def int) int {
	v, ok := b.values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns the boolean for key, or def.
func (b *Bundle) Bool(key string, def bool) bool {
	v, ok := b.values[key]
	if !ok {
		return def
	}
	t, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return t
}

// Float32 returns the float for key parsed at 32-bit precision, or def.
func (b *Bundle) Float32(key string, def float32) float32 {
	v, ok := b.values[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

// Keys returns the stored keys in sorted order.
func (b *Bundle) Keys() []string {
	return slices.Sorted(maps.Keys(b.values))
}

// Len returns the number of stored keys.
func (b *Bundle) Len() int {
	return len(b.values)
}

// MarshalYAML implements yaml.Marshaler.
func (b *Bundle) MarshalYAML() (any, error) {
	if b.values == nil {
		return map[string]string{}, nil
	}
	return b.values, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Scalars of any type are kept
// as their literal text.
func (b *Bundle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("state: bundle must be a mapping, got line %d", node.Line)
	}
	values := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("state: value for %q must be a scalar (line %d)", k.Value, v.Line)
		}
		values[k.Value] = v.Value
	}
	b.values = values
	return nil
}

// Encode serialises b as YAML.
func (b *Bundle) Encode() ([]byte, error) {
	return yaml.Marshal(b)
}

// DecodeBundle parses YAML produced by Bundle.Encode.
func DecodeBundle(data []byte) (*Bundle, error) {
	b := NewBundle()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("state: decode bundle: %w", err)
	}
	return b, nil
}
