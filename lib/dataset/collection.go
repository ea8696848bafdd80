// Copyright 2026 The Spectra Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is an insertion-ordered mapping from content label to
// payload. Key order is part of a dataset's contract: it reflects the
// dataset's documented grouping (for example "before"/"after"
// variants) and is stable across runs, which downstream consumers and
// equality-based tests rely on.
//
// The zero value is ready to use. Collection is not safe for
// concurrent mutation.
type Collection struct {
	keys   []string
	values map[string]any
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{values: make(map[string]any)}
}

// Set stores value under label, appending the label to the key order
// if it is new. Re-setting an existing label keeps its position.
func (c *Collection) Set(label string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, exists := c.values[label]; !exists {
		c.keys = append(c.keys, label)
	}
	c.values[label] = value
}

// Get returns the payload stored under label and whether it exists.
func (c *Collection) Get(label string) (any, bool) {
	value, ok := c.values[label]
	return value, ok
}

// Keys returns the labels in insertion order. The returned slice is a
// copy; mutating it does not affect the Collection.
func (c *Collection) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of labels.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Sub returns the nested Collection stored under label, or an error
// if the label is missing or holds a different payload type. Intended
// for tests and callers navigating nested datasets.
func (c *Collection) Sub(label string) (*Collection, error) {
	value, ok := c.values[label]
	if !ok {
		return nil, fmt.Errorf("collection has no label %q", label)
	}
	sub, ok := value.(*Collection)
	if !ok {
		return nil, fmt.Errorf("label %q holds %T, not a nested collection", label, value)
	}
	return sub, nil
}

// MarshalJSON renders the Collection as a JSON object whose member
// order matches the insertion order. Standard library maps would
// sort keys; the explicit encoder preserves the dataset's grouping.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buffer.Write(name)
		buffer.WriteByte(':')
		value, err := json.Marshal(c.values[key])
		if err != nil {
			return nil, fmt.Errorf("marshaling label %q: %w", key, err)
		}
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
