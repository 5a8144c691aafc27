package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaulter is implemented by values that carry defaults for omitted keys.
type defaulter interface {
	applyDefaults()
}

// Ordered is a string-keyed mapping that remembers insertion order.
// The zero value is an empty mapping ready to use.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Keys returns the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	return o.keys
}

// Len returns the number of entries.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Ordered[V]) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (o *Ordered[V]) Set(key string, v V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// UnmarshalYAML decodes a YAML mapping, keeping document order.
// A null value decodes to the defaults of V when V provides them.
func (o *Ordered[V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}

	o.keys = nil
	o.values = make(map[string]V, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}

		var v V
		if d, ok := any(&v).(defaulter); ok {
			d.applyDefaults()
		}
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		o.Set(key, v)
	}

	return nil
}
