package shape

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParameterSet is an ordered mapping of parameter name to value.
// A name that was never set is absent; a name set to nil is an explicit null.
type ParameterSet struct {
	values *orderedmap.OrderedMap[string, any]
}

// NewParameterSet creates an empty parameter set.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: orderedmap.New[string, any]()}
}

// Set marks name as present with value. Setting an existing name replaces
// its value but keeps its original position.
func (p *ParameterSet) Set(name string, value any) *ParameterSet {
	p.values.Set(name, value)
	return p
}

// Get returns the value for name and whether it is present.
func (p *ParameterSet) Get(name string) (any, bool) {
	return p.values.Get(name)
}

// Len returns the number of present parameters.
func (p *ParameterSet) Len() int {
	return p.values.Len()
}

// Names returns present parameter names in insertion order.
func (p *ParameterSet) Names() []string {
	names := make([]string, 0, p.values.Len())
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MarshalJSON renders the parameters in insertion order.
func (p *ParameterSet) MarshalJSON() ([]byte, error) {
	return p.values.MarshalJSON()
}

// ParametersFromStruct builds a ParameterSet from a tool input struct.
//
// Field names come from the json tag. Nil pointers, slices and maps are
// absent; non-nil pointers are dereferenced. Plain value fields are always
// present. Fields tagged `param:"-"` or `json:"-"` are skipped.
func ParametersFromStruct(v any) (*ParameterSet, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("parameters from nil %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("parameters from %T: not a struct", v)
	}

	params := NewParameterSet()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || field.Tag.Get("param") == "-" {
			continue
		}
		name := jsonName(field)
		if name == "" {
			continue
		}

		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.Pointer:
			if fv.IsNil() {
				continue
			}
			params.Set(name, fv.Elem().Interface())
		case reflect.Slice, reflect.Map, reflect.Interface:
			if fv.IsNil() {
				continue
			}
			params.Set(name, fv.Interface())
		default:
			params.Set(name, fv.Interface())
		}
	}
	return params, nil
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
