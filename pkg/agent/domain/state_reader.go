// ABOUTME: Immutable StateReader over a snapshot of key/value settings
// ABOUTME: The server publishes configuration to tools through it

package domain

import "sort"

type staticState struct {
	values map[string]interface{}
}

// NewStateReader returns a read-only view over a copy of values.
func NewStateReader(values map[string]interface{}) StateReader {
	copied := make(map[string]interface{}, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &staticState{values: copied}
}

func (s *staticState) Get(key string) (interface{}, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *staticState) Values() map[string]interface{} {
	copied := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		copied[k] = v
	}
	return copied
}

func (s *staticState) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in sorted order.
func (s *staticState) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the string stored under key, if any.
func GetString(state StateReader, key string) (string, bool) {
	if state == nil {
		return "", false
	}
	v, ok := state.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt returns the integer stored under key, accepting the numeric
// types produced by YAML and JSON decoding.
func GetInt(state StateReader, key string) (int, bool) {
	if state == nil {
		return 0, false
	}
	v, ok := state.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
