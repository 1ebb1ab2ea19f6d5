package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PropPath locates a value inside a component's props object. Segments are
// object keys (string) or array indexes (int).
type PropPath []any

// ParsePropPath validates a raw attribute value as a property path. Only
// arrays whose segments are all strings or integral numbers qualify; anything
// else reports false so callers can treat the value as "not a reference".
func ParsePropPath(value any) (PropPath, bool) {
	switch typed := value.(type) {
	case PropPath:
		return parseSegments(typed)
	case []any:
		return parseSegments(typed)
	case []string:
		out := make(PropPath, len(typed))
		for i, segment := range typed {
			out[i] = segment
		}
		return out, true
	case []int:
		out := make(PropPath, len(typed))
		for i, segment := range typed {
			out[i] = segment
		}
		return out, true
	default:
		return nil, false
	}
}

func parseSegments(segments []any) (PropPath, bool) {
	out := make(PropPath, 0, len(segments))
	for _, segment := range segments {
		normalized, ok := normalizeSegment(segment)
		if !ok {
			return nil, false
		}
		out = append(out, normalized)
	}
	return out, true
}

func normalizeSegment(segment any) (any, bool) {
	switch v := segment.(type) {
	case string:
		return v, true
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return integral(f)
	default:
		return nil, false
	}
}

func integral(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	return int(f), true
}

// Concat returns a new path made of p followed by segments. The receiver is
// never aliased by the result.
func (p PropPath) Concat(segments ...any) PropPath {
	out := make(PropPath, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

// Equal reports whether both paths hold the same segments.
func (p PropPath) Equal(other PropPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Last returns the final segment, or nil for an empty path.
func (p PropPath) Last() any {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// String renders the path with dot separators, e.g. "items.0.body".
func (p PropPath) String() string {
	parts := make([]string, len(p))
	for i, segment := range p {
		switch v := segment.(type) {
		case int:
			parts[i] = strconv.Itoa(v)
		case string:
			parts[i] = v
		}
	}
	return strings.Join(parts, ".")
}
