package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func keys(r *Record) []string {
	var out []string
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func samplePerson() map[string]any {
	return map[string]any{
		"id":         "p1",
		"first_name": "Tim",
		"title":      "CEO",
		"email":      nil,
		"organization": map[string]any{
			"name":         "Apollo",
			"website_url":  "https://apollo.io",
			"has_industry": true,
		},
		"contact":            nil,
		"phone_numbers":      []any{"+1"},
		"employment_history": []any{map[string]any{"title": "CTO"}},
		"tags":               []any{"a"},
	}
}

func TestParseFieldPath(t *testing.T) {
	tests := []struct {
		in   string
		want FieldPath
	}{
		{in: "title", want: FieldPath{Parent: "title"}},
		{in: "organization.name", want: FieldPath{Parent: "organization", Child: "name", Nested: true}},
		{in: "a.b.c", want: FieldPath{Parent: "a", Child: "b.c", Nested: true}},
		{in: "organization.", want: FieldPath{Parent: "organization", Nested: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseFieldPath(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestProjector_TopLevelAndNested(t *testing.T) {
	paths := ParseFieldPaths([]string{"title", "organization.name", "first_name", "organization.website_url", "missing"})

	got := Projector{}.Project(samplePerson(), paths)

	assert.Equal(t, []string{"title", "organization", "first_name"}, keys(got))
	assert.JSONEq(t, `{
		"title": "CEO",
		"organization": {"name": "Apollo", "website_url": "https://apollo.io"},
		"first_name": "Tim"
	}`, mustJSON(t, got))

	org, _ := got.Get("organization")
	assert.Equal(t, []string{"name", "website_url"}, keys(org.(*Record)), "children keep request order")
}

func TestProjector_NestedSkips(t *testing.T) {
	source := map[string]any{
		"contact": nil,
		"scalar":  "x",
		"list":    []any{1},
		"obj":     map[string]any{"a": 1},
	}
	paths := ParseFieldPaths([]string{"contact.email", "scalar.x", "list.0", "obj.b", "nope.a", "obj.a.deep"})

	got := Projector{}.Project(source, paths)

	assert.JSONEq(t, `{"scalar": {}, "list": {}, "obj": {}}`, mustJSON(t, got))
}

func TestProjector_NeverInventsKeys(t *testing.T) {
	source := samplePerson()
	paths := ParseFieldPaths([]string{
		"id", "nope", "organization.name", "organization.nope", "contact.id", "x.y", "tags",
	})

	got := Projector{AlwaysInclude: []string{"phone_numbers", "contact_emails"}}.Project(source, paths)

	for pair := got.Oldest(); pair != nil; pair = pair.Next() {
		require.Contains(t, source, pair.Key)
		if rec, ok := pair.Value.(*Record); ok {
			parent := source[pair.Key].(map[string]any)
			for child := rec.Oldest(); child != nil; child = child.Next() {
				assert.Contains(t, parent, child.Key)
			}
		}
	}
}

func TestProjector_FlatRoundTrip(t *testing.T) {
	source := map[string]any{"name": "Acme", "website_url": "acme.io", "founded_year": float64(1999), "blog_url": nil}
	fields := make([]string, 0, len(source))
	for k := range source {
		fields = append(fields, k)
	}

	got := Projector{}.Project(source, ParseFieldPaths(fields))

	assert.JSONEq(t, mustJSON(t, source), mustJSON(t, got))
}

func TestProjector_AlwaysInclude(t *testing.T) {
	p := Projector{AlwaysInclude: []string{"employment_history", "contact_emails", "phone_numbers"}}

	got := p.Project(samplePerson(), nil)

	assert.Equal(t, []string{"employment_history", "phone_numbers"}, keys(got))
}

func TestProjector_Fallback(t *testing.T) {
	p := Projector{Fallback: []string{"contact", "organization"}}

	t.Run("null parent is copied whole", func(t *testing.T) {
		got := p.Project(samplePerson(), ParseFieldPaths([]string{"contact.email"}))
		assert.JSONEq(t, `{"contact": null}`, mustJSON(t, got))
	})

	t.Run("per-field result is authoritative", func(t *testing.T) {
		got := p.Project(samplePerson(), ParseFieldPaths([]string{"organization.name"}))
		assert.JSONEq(t, `{"organization": {"name": "Apollo"}}`, mustJSON(t, got))
	})

	t.Run("unreferenced parent is not added", func(t *testing.T) {
		got := p.Project(samplePerson(), ParseFieldPaths([]string{"title"}))
		assert.JSONEq(t, `{"title": "CEO"}`, mustJSON(t, got))
	})

	t.Run("absent parent stays absent", func(t *testing.T) {
		got := p.Project(map[string]any{"id": 1}, ParseFieldPaths([]string{"contact.email"}))
		assert.Equal(t, 0, got.Len())
	})
}

func TestProjector_TopLevelThenNestedSameKey(t *testing.T) {
	paths := ParseFieldPaths([]string{"organization", "organization.name"})

	got := Projector{}.Project(samplePerson(), paths)

	org, ok := got.Get("organization")
	require.True(t, ok)
	assert.Equal(t, samplePerson()["organization"], org, "whole object is kept")
}

func TestProjector_ProjectList(t *testing.T) {
	items := []any{
		map[string]any{"name": "A", "x": 1},
		"not an object",
		map[string]any{"x": 2},
	}

	got := Projector{}.ProjectList(items, ParseFieldPaths([]string{"name"}))

	require.Len(t, got, 3)
	assert.JSONEq(t, `[{"name": "A"}, {}, {}]`, mustJSON(t, got))
}

func TestHelpers(t *testing.T) {
	source := map[string]any{"obj": map[string]any{}, "list": []any{1}, "s": "x"}

	assert.NotNil(t, Object(source, "obj"))
	assert.Nil(t, Object(source, "s"))
	assert.Len(t, ListOf(source, "list"), 1)
	assert.Nil(t, ListOf(source, "obj"))
	assert.Equal(t, "x", ValueOr(source, "s", "d"))
	assert.Equal(t, map[string]any{}, ValueOr(source, "missing", map[string]any{}))
}

func TestTopLevelPaths(t *testing.T) {
	source := map[string]any{"name": "Acme", "a.b": 1, "a": map[string]any{"b": 2}}

	got := Projector{}.Project(source, TopLevelPaths([]string{"a.b", "name"}))

	assert.Equal(t, []string{"a.b", "name"}, keys(got))
	v, _ := got.Get("a.b")
	assert.Equal(t, 1, v)
}
