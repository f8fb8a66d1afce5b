package shape

import (
	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// Member maps one flat parameter to a field inside a group object.
type Member struct {
	Param string
	Field string
}

// GroupSpec collapses several flat parameters into one nested object under
// Key. The object is built only if at least one member is present, and holds
// only the present members.
type GroupSpec struct {
	Key     string
	Members []Member
}

// RangeGroup declares the common min/max pair: key_min and key_max become
// {"min": ..., "max": ...} under key.
func RangeGroup(key string) GroupSpec {
	return GroupSpec{
		Key: key,
		Members: []Member{
			{Param: key + "_min", Field: "min"},
			{Param: key + "_max", Field: "max"},
		},
	}
}

// Pagination describes the provider's page parameters. Both are always
// emitted; the page size is clamped to MaxSize.
type Pagination struct {
	PageParam   string
	SizeParam   string
	DefaultPage int
	DefaultSize int
	MaxSize     int
}

// Assembler converts a ParameterSet into a request payload.
type Assembler struct {
	Groups     []GroupSpec
	Pagination *Pagination
}

// Assemble builds the payload. Parameters not claimed by a group or by
// pagination are copied under their own name, unchanged.
func (a Assembler) Assemble(params *ParameterSet) domain.Payload {
	payload := domain.Payload{}
	claimed := make(map[string]bool)

	if pg := a.Pagination; pg != nil {
		claimed[pg.PageParam] = true
		claimed[pg.SizeParam] = true

		payload[pg.PageParam] = intParam(params, pg.PageParam, pg.DefaultPage)
		payload[pg.SizeParam] = min(intParam(params, pg.SizeParam, pg.DefaultSize), pg.MaxSize)
	}

	for _, group := range a.Groups {
		var obj map[string]any
		for _, m := range group.Members {
			claimed[m.Param] = true
			v, ok := params.Get(m.Param)
			if !ok {
				continue
			}
			if obj == nil {
				obj = make(map[string]any, len(group.Members))
			}
			obj[m.Field] = v
		}
		if obj != nil {
			payload[group.Key] = obj
		}
	}

	for _, name := range params.Names() {
		if claimed[name] {
			continue
		}
		v, _ := params.Get(name)
		payload[name] = v
	}

	return payload
}

// intParam returns the integer value of name, or def when it is absent or
// not a number.
func intParam(params *ParameterSet, name string, def int) int {
	v, ok := params.Get(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}
