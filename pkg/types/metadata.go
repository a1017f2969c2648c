// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Well-known metadata keys.
const (
	// KeyFilename holds the normalized repository path of the source file.
	KeyFilename = "filename"

	// KeyStart holds the index of the first paragraph in a chunk.
	KeyStart = "start"

	// KeyContent holds a document body or a chunk's joined paragraphs.
	KeyContent = "content"
)

// Metadata is an ordered, string-keyed map of loosely typed values. It holds
// front-matter fields and the records derived from them. Keys keep their
// first insertion position; Set on an existing key replaces the value in
// place.
//
// The zero value is an empty map ready to use. A nil *Metadata behaves as
// an empty map for reads.
type Metadata struct {
	keys   []string
	values map[string]any
}

// NewMetadata returns an empty Metadata with room for n keys.
func NewMetadata(n int) *Metadata {
	return &Metadata{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the value for key and whether it was present.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// String returns the value for key if it is a string, or "" otherwise.
func (m *Metadata) String(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key.
func (m *Metadata) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Metadata) Delete(key string) {
	m.Pop(key)
}

// Pop removes key and returns its value and whether it was present.
func (m *Metadata) Pop(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Clone returns a shallow copy. Top-level keys of the copy can be modified
// without affecting m; nested sequences and maps are shared.
func (m *Metadata) Clone() *Metadata {
	c := NewMetadata(m.Len())
	if m == nil {
		return c
	}
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// Range calls fn for each key in order until fn returns false.
func (m *Metadata) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes m as a JSON object with keys in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes m as a YAML mapping with keys in insertion order.
func (m *Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// MetadataFromNode builds Metadata from a decoded YAML document or mapping
// node, preserving key order. An empty document yields empty Metadata.
// Any other node kind is an error.
func MetadataFromNode(node *yaml.Node) (*Metadata, error) {
	if node == nil || node.Kind == 0 {
		return NewMetadata(0), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewMetadata(0), nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return NewMetadata(0), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is a %s, not a mapping", kindName(node.Kind))
	}

	m := NewMetadata(len(node.Content) / 2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoding field %q: %w", keyNode.Value, err)
		}
		m.Set(keyNode.Value, value)
	}
	return m, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}
