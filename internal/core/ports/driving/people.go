package driving

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/shape"
)

// PeopleSearchResult is the projected people search response.
type PeopleSearchResult struct {
	TotalEntries any             `json:"total_entries"`
	People       []*shape.Record `json:"people"`
}

// PersonResult is the projected enrichment response.
type PersonResult struct {
	Person *shape.Record `json:"person"`
}

// CompanySearchResult is the projected company search response.
type CompanySearchResult struct {
	Pagination    any             `json:"pagination"`
	Organizations []*shape.Record `json:"organizations"`
}

// PeopleService searches and enriches people and companies.
// Each method takes the caller's parameters and the fields to return.
type PeopleService interface {
	SearchPeople(ctx context.Context, params *shape.ParameterSet, fields []string) (*PeopleSearchResult, error)
	EnrichPerson(ctx context.Context, params *shape.ParameterSet, fields []string) (*PersonResult, error)
	SearchCompanies(ctx context.Context, params *shape.ParameterSet, fields []string) (*CompanySearchResult, error)
}
