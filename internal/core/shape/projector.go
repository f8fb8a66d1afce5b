package shape

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an order-preserving JSON object produced by projection.
type Record = orderedmap.OrderedMap[string, any]

// NewRecord creates an empty record.
func NewRecord() *Record {
	return orderedmap.New[string, any]()
}

// Projector reduces provider objects to the fields a caller asked for.
type Projector struct {
	// AlwaysInclude keys are copied whenever present, requested or not.
	AlwaysInclude []string
	// Fallback parents are copied whole when a requested parent.child path
	// references them but the per-field pass added nothing under that key.
	Fallback []string
}

// Project builds a record from source following paths in order.
// Missing keys, null parents and non-object parents are skipped silently.
func (p Projector) Project(source map[string]any, paths []FieldPath) *Record {
	out := NewRecord()

	for _, path := range paths {
		if !path.IsNested() {
			if v, ok := source[path.Parent]; ok {
				out.Set(path.Parent, v)
			}
			continue
		}

		parent, ok := source[path.Parent]
		if !ok || parent == nil {
			continue
		}
		nested, exists := out.Get(path.Parent)
		if !exists {
			nested = NewRecord()
			out.Set(path.Parent, nested)
		}

		obj, isObj := parent.(map[string]any)
		if !isObj {
			continue
		}
		child, ok := obj[path.Child]
		if !ok {
			continue
		}
		// A top-level path for the same key may have stored the whole
		// object already; the per-field result only extends records.
		if rec, isRec := nested.(*Record); isRec {
			rec.Set(path.Child, child)
		}
	}

	for _, key := range p.AlwaysInclude {
		if v, ok := source[key]; ok {
			out.Set(key, v)
		}
	}

	for _, key := range p.Fallback {
		if !referencesParent(paths, key) {
			continue
		}
		if _, done := out.Get(key); done {
			continue
		}
		if v, ok := source[key]; ok {
			out.Set(key, v)
		}
	}

	return out
}

// ProjectList projects every element of items. Elements that are not
// objects project to empty records, keeping positions aligned.
func (p Projector) ProjectList(items []any, paths []FieldPath) []*Record {
	out := make([]*Record, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		out = append(out, p.Project(obj, paths))
	}
	return out
}

// Object returns source[key] as an object, or nil when absent or not an object.
func Object(source map[string]any, key string) map[string]any {
	obj, _ := source[key].(map[string]any)
	return obj
}

// ListOf returns source[key] as a list, or nil when absent or not a list.
func ListOf(source map[string]any, key string) []any {
	list, _ := source[key].([]any)
	return list
}

// ValueOr returns source[key] when present, otherwise def.
func ValueOr(source map[string]any, key string, def any) any {
	if v, ok := source[key]; ok {
		return v
	}
	return def
}

func referencesParent(paths []FieldPath, parent string) bool {
	for _, p := range paths {
		if p.IsNested() && p.Parent == parent {
			return true
		}
	}
	return false
}

// StringOr returns source[key] as a string, or "" when absent or not a string.
func StringOr(source map[string]any, key string) string {
	s, _ := source[key].(string)
	return s
}

// IntOr returns source[key] as an int. JSON numbers decode as float64; the
// provider clients return int64 for counts.
func IntOr(source map[string]any, key string) int {
	switch n := source[key].(type) {
	case float64:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
