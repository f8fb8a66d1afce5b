// Package values converts loosely typed configuration values.
//
// TOML decodes integers as int64 and arrays as []any, while values set at
// runtime keep their Go types. Both config stores read through these helpers
// so a key behaves the same whichever store holds it.
package values

// String returns v as a string, or "" when it is not one.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int, or 0 when it is not numeric.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float returns v as a float64, or 0 when it is not numeric.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns v as a bool, or false when it is not one.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// StringSlice returns the string elements of v, or nil when it is not a list.
func StringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Reader adds the typed accessors of driven.ConfigStore to a raw lookup.
// Stores embed it and bind Lookup to their own Get.
type Reader struct {
	Lookup func(key string) (any, bool)
}

func (r Reader) value(key string) any {
	v, _ := r.Lookup(key)
	return v
}

// GetString reads key as a string.
func (r Reader) GetString(key string) string { return String(r.value(key)) }

// GetInt reads key as an int.
func (r Reader) GetInt(key string) int { return Int(r.value(key)) }

// GetFloat reads key as a float64.
func (r Reader) GetFloat(key string) float64 { return Float(r.value(key)) }

// GetBool reads key as a bool.
func (r Reader) GetBool(key string) bool { return Bool(r.value(key)) }

// GetStringSlice reads key as a list of strings.
func (r Reader) GetStringSlice(key string) []string { return StringSlice(r.value(key)) }
