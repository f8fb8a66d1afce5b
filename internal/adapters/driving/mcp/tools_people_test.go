package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/core/shape"
)

func ptr[T any](v T) *T { return &v }

// resultText returns the single text block of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func newPeopleServer(t *testing.T, people *mockPeopleService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{People: people})
	require.NoError(t, err)
	return server
}

func TestHandleSearchPeople_PassesOnlyGivenParameters(t *testing.T) {
	record := shape.NewRecord()
	record.Set("name", "Ada Lovelace")
	people := &mockPeopleService{
		people: &driving.PeopleSearchResult{TotalEntries: 1, People: []*shape.Record{record}},
	}
	server := newPeopleServer(t, people)

	res, out, err := server.handleSearchPeople(context.Background(), nil, SearchPeopleInput{
		PersonFields:    []string{"name"},
		PersonTitles:    []string{"cto"},
		RevenueRangeMin: ptr(1000),
		PerPage:         ptr(10),
	})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, res.IsError)

	require.NotNil(t, people.params)
	assert.Equal(t, []string{"person_titles", "revenue_range_min", "per_page"}, people.params.Names())
	assert.Equal(t, []string{"name"}, people.fields)
	assert.NotContains(t, people.params.Names(), "person_fields")

	assert.JSONEq(t, `{"total_entries": 1, "people": [{"name": "Ada Lovelace"}]}`, resultText(t, res))
}

func TestHandleSearchPeople_EmptyListIsPresent(t *testing.T) {
	people := &mockPeopleService{people: &driving.PeopleSearchResult{People: []*shape.Record{}}}
	server := newPeopleServer(t, people)

	_, _, err := server.handleSearchPeople(context.Background(), nil, SearchPeopleInput{
		PersonLocations: []string{},
	})
	require.NoError(t, err)
	assert.Contains(t, people.params.Names(), "person_locations")
	assert.Nil(t, people.fields)
}

func TestHandleEnrichPerson(t *testing.T) {
	record := shape.NewRecord()
	record.Set("email", "ada@example.com")
	people := &mockPeopleService{person: &driving.PersonResult{Person: record}}
	server := newPeopleServer(t, people)

	res, _, err := server.handleEnrichPerson(context.Background(), nil, EnrichPersonInput{
		Email:        ptr("ada@example.com"),
		PersonFields: []string{"email"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	v, ok := people.params.Get("email")
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", v)

	reveal, ok := people.params.Get("reveal_personal_emails")
	require.True(t, ok, "plain bool parameters are always sent")
	assert.Equal(t, false, reveal)

	assert.JSONEq(t, `{"person": {"email": "ada@example.com"}}`, resultText(t, res))
}

func TestHandleEnrichPerson_NilPerson(t *testing.T) {
	people := &mockPeopleService{person: &driving.PersonResult{}}
	server := newPeopleServer(t, people)

	res, _, err := server.handleEnrichPerson(context.Background(), nil, EnrichPersonInput{ID: ptr("p1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"person": null}`, resultText(t, res))
}

func TestHandleSearchCompanies(t *testing.T) {
	people := &mockPeopleService{companies: &driving.CompanySearchResult{
		Pagination:    map[string]any{"page": 1},
		Organizations: []*shape.Record{},
	}}
	server := newPeopleServer(t, people)

	res, _, err := server.handleSearchCompanies(context.Background(), nil, SearchCompaniesInput{
		OrganizationFields: []string{"name", "website_url"},
		QOrganizationName:  ptr("acme"),
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []string{"q_organization_name"}, people.params.Names())
	assert.Equal(t, []string{"name", "website_url"}, people.fields)
	assert.JSONEq(t, `{"pagination": {"page": 1}, "organizations": []}`, resultText(t, res))
}

func TestPeopleTools_ErrorResults(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "provider error",
			err:  &domain.ProviderError{Provider: "Apollo", StatusCode: 401, Reason: "401 Unauthorized: invalid api key"},
			want: `{"error": "Apollo API error: 401 Unauthorized: invalid api key"}`,
		},
		{
			name: "missing configuration",
			err:  domain.ErrConfigMissing,
			want: `{"error": "` + domain.ErrConfigMissing.Error() + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := &mockPeopleService{err: tt.err}
			server := newPeopleServer(t, people)

			res, out, err := server.handleSearchPeople(context.Background(), nil, SearchPeopleInput{})
			require.NoError(t, err, "failures are results, not protocol errors")
			assert.Nil(t, out)
			assert.True(t, res.IsError)
			assert.JSONEq(t, tt.want, resultText(t, res))

			var payload map[string]string
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
			assert.Len(t, payload, 1)
		})
	}
}
