package shape

import "strings"

// FieldPath addresses a top-level key or one key inside a top-level object.
type FieldPath struct {
	Parent string
	// Child is the key inside Parent. Only one level is addressed: in
	// "a.b.c" the child is the literal key "b.c".
	Child string
	// Nested is true when the path contained a dot.
	Nested bool
}

// ParseFieldPath splits s at its first dot.
func ParseFieldPath(s string) FieldPath {
	parent, child, ok := strings.Cut(s, ".")
	if !ok {
		return FieldPath{Parent: s}
	}
	return FieldPath{Parent: parent, Child: child, Nested: true}
}

// ParseFieldPaths parses a caller's field list, keeping its order.
func ParseFieldPaths(fields []string) []FieldPath {
	paths := make([]FieldPath, len(fields))
	for i, f := range fields {
		paths[i] = ParseFieldPath(f)
	}
	return paths
}

// IsNested returns true for parent.child paths.
func (f FieldPath) IsNested() bool {
	return f.Nested
}

func (f FieldPath) String() string {
	if !f.Nested {
		return f.Parent
	}
	return f.Parent + "." + f.Child
}

// TopLevelPaths treats every field as a literal top-level key, dots included.
// Used for responses whose objects are flat.
func TopLevelPaths(fields []string) []FieldPath {
	paths := make([]FieldPath, len(fields))
	for i, f := range fields {
		paths[i] = FieldPath{Parent: f}
	}
	return paths
}
