package chart

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// OptionTree is the declarative configuration consumed by the rendering engine.
// Values are scalars, nested mappings or sequences.
type OptionTree map[string]any

// Clone returns a deep copy of the tree.
func (t OptionTree) Clone() OptionTree {
	if t == nil {
		return nil
	}
	out := make(OptionTree, len(t))
	for key, value := range t {
		out[key] = cloneValue(value)
	}
	return out
}

// Lookup resolves a dotted path such as "series.0.itemStyle.color".
func (t OptionTree) Lookup(path string) (any, bool) {
	var current any = map[string]any(t)
	if path == "" {
		return current, t != nil
	}
	for _, part := range strings.Split(path, ".") {
		if m, ok := asMapping(current); ok {
			next, exists := m[part]
			if !exists {
				return nil, false
			}
			current = next
			continue
		}
		items, ok := asSequence(current)
		if !ok {
			return nil, false
		}
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 || idx >= len(items) {
			return nil, false
		}
		current = items[idx]
	}
	return current, true
}

// Hash returns a deterministic digest of the tree contents.
func (t OptionTree) Hash() string {
	if len(t) == 0 {
		return "empty"
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func asMapping(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, val != nil
	case OptionTree:
		return map[string]any(val), val != nil
	default:
		return nil, false
	}
}

func asSequence(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	case []OptionTree:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case OptionTree:
		return val.Clone()
	case map[string]any:
		if val == nil {
			return val
		}
		return cloneMap(val)
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i, item := range val {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []float64:
		return append([]float64(nil), val...)
	case []int:
		return append([]int(nil), val...)
	default:
		return val
	}
}
