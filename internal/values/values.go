// Package values provides structural helpers for the JSON-like value trees
// carried in node attributes and component props.
package values

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrEmptyPath indicates a write was requested without a target segment.
	ErrEmptyPath = errors.New("values: empty path")
	// ErrPathUnreachable indicates a path walks through a value that is not a container.
	ErrPathUnreachable = errors.New("values: path unreachable")
)

// Clone returns a deep copy of a value tree made of maps, slices and scalars.
// Scalars (strings, numbers, bools, nil) are shared since they are immutable.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		return CloneSlice(typed)
	case []string:
		return append([]string(nil), typed...)
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for i := range typed {
			out[i] = CloneMap(typed[i])
		}
		return out
	case json.RawMessage:
		cp := make([]byte, len(typed))
		copy(cp, typed)
		return json.RawMessage(cp)
	case []byte:
		cp := make([]byte, len(typed))
		copy(cp, typed)
		return cp
	default:
		return value
	}
}

// CloneMap deep-copies an object. A nil input yields nil.
func CloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = Clone(value)
	}
	return out
}

// CloneSlice deep-copies an array. A nil input yields nil.
func CloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		out[i] = Clone(value)
	}
	return out
}

// AsSlice deep-copies any slice or array value into []any, so typed slices
// built in Go (for example []int) read the same as decoded JSON arrays.
// Byte slices and non-sequence values report false.
func AsSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case nil, []byte, json.RawMessage:
		return nil, false
	case []any:
		return CloneSlice(typed), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = Clone(rv.Index(i).Interface())
	}
	return out, true
}

// Get resolves path against root. Object segments are strings and array
// segments are ints.
func Get(root any, path []any) (any, bool) {
	current := root
	for _, segment := range path {
		next, ok := step(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at path inside root. The object addressed by every segment
// but the last is looked up (missing or null objects along the way are
// created) and the final segment is assigned on it.
func Set(root map[string]any, path []any, value any) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	var parent any = root
	for i, segment := range path[:len(path)-1] {
		next, ok := step(parent, segment)
		if !ok || next == nil {
			created := map[string]any{}
			if err := assign(parent, segment, created); err != nil {
				return fmt.Errorf("%w: segment %d (%v)", err, i, segment)
			}
			next = created
		}
		parent = next
	}

	last := path[len(path)-1]
	if err := assign(parent, last, value); err != nil {
		return fmt.Errorf("%w: segment %d (%v)", err, len(path)-1, last)
	}
	return nil
}

func step(current any, segment any) (any, bool) {
	switch container := current.(type) {
	case map[string]any:
		key, ok := segment.(string)
		if !ok {
			return nil, false
		}
		value, ok := container[key]
		return value, ok
	case []any:
		idx, ok := segment.(int)
		if !ok || idx < 0 || idx >= len(container) {
			return nil, false
		}
		return container[idx], true
	default:
		return nil, false
	}
}

func assign(container any, segment any, value any) error {
	switch typed := container.(type) {
	case map[string]any:
		key, ok := segment.(string)
		if !ok {
			return ErrPathUnreachable
		}
		typed[key] = value
		return nil
	case []any:
		idx, ok := segment.(int)
		if !ok || idx < 0 || idx >= len(typed) {
			return ErrPathUnreachable
		}
		typed[idx] = value
		return nil
	default:
		return ErrPathUnreachable
	}
}
