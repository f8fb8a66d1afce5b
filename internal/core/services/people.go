package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/core/shape"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// Ensure PeopleService implements the interface.
var _ driving.PeopleService = (*PeopleService)(nil)

// Default field lists used when the caller does not pass one.
var (
	DefaultPersonSearchFields = []string{"first_name", "last_name_obfuscated", "title", "organization.name"}
	DefaultPersonEnrichFields = []string{"first_name", "last_name", "title", "email", "organization.name"}
	DefaultCompanyFields      = []string{"name", "website_url"}
)

var apolloPagination = &shape.Pagination{
	PageParam:   "page",
	SizeParam:   "per_page",
	DefaultPage: 1,
	DefaultSize: 25,
	MaxSize:     100,
}

var peopleSearchAssembler = shape.Assembler{
	Groups: []shape.GroupSpec{
		shape.RangeGroup("revenue_range"),
		shape.RangeGroup("organization_num_jobs_range"),
		shape.RangeGroup("organization_job_posted_at_range"),
	},
	Pagination: apolloPagination,
}

var companySearchAssembler = shape.Assembler{
	Groups: []shape.GroupSpec{
		shape.RangeGroup("revenue_range"),
		shape.RangeGroup("latest_funding_amount_range"),
		shape.RangeGroup("total_funding_range"),
		shape.RangeGroup("latest_funding_date_range"),
		shape.RangeGroup("organization_num_jobs_range"),
		shape.RangeGroup("organization_job_posted_at_range"),
	},
	Pagination: apolloPagination,
}

// Enrichment parameters are flat query parameters.
var enrichAssembler = shape.Assembler{}

var enrichProjector = shape.Projector{
	AlwaysInclude: []string{"employment_history", "contact_emails", "phone_numbers"},
	Fallback:      []string{"contact", "organization"},
}

// PeopleService searches and enriches people and companies, returning only
// the requested fields of each provider object.
type PeopleService struct {
	provider driven.PeopleProvider
}

// NewPeopleService creates a new people service.
func NewPeopleService(provider driven.PeopleProvider) *PeopleService {
	return &PeopleService{provider: provider}
}

// SearchPeople runs a people search. A nil fields list selects the defaults;
// an empty one returns empty person objects.
func (s *PeopleService) SearchPeople(
	ctx context.Context, params *shape.ParameterSet, fields []string,
) (*driving.PeopleSearchResult, error) {
	fields = fieldsOrDefault(fields, DefaultPersonSearchFields)
	payload := peopleSearchAssembler.Assemble(params)
	logRequest("search_people", payload, fields)

	data, err := s.provider.SearchPeople(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}

	result := &driving.PeopleSearchResult{
		TotalEntries: shape.ValueOr(data, "total_entries", map[string]any{}),
		People:       shape.Projector{}.ProjectList(shape.ListOf(data, "people"), shape.ParseFieldPaths(fields)),
	}
	logResponse("search_people", result)
	return result, nil
}

// EnrichPerson matches a single person. Personal emails are only requested
// when reveal_personal_emails is true.
func (s *PeopleService) EnrichPerson(
	ctx context.Context, params *shape.ParameterSet, fields []string,
) (*driving.PersonResult, error) {
	fields = fieldsOrDefault(fields, DefaultPersonEnrichFields)
	payload := enrichAssembler.Assemble(params)
	if reveal, _ := payload["reveal_personal_emails"].(bool); reveal {
		payload["reveal_personal_emails"] = "true"
	} else {
		delete(payload, "reveal_personal_emails")
	}
	logRequest("enrich_person", payload, fields)

	data, err := s.provider.MatchPerson(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("enrich person: %w", err)
	}

	result := &driving.PersonResult{
		Person: enrichProjector.Project(shape.Object(data, "person"), shape.ParseFieldPaths(fields)),
	}
	logResponse("enrich_person", result)
	return result, nil
}

// SearchCompanies runs a company search. Organization fields are top-level
// keys only.
func (s *PeopleService) SearchCompanies(
	ctx context.Context, params *shape.ParameterSet, fields []string,
) (*driving.CompanySearchResult, error) {
	fields = fieldsOrDefault(fields, DefaultCompanyFields)
	payload := companySearchAssembler.Assemble(params)
	logRequest("search_companies", payload, fields)

	data, err := s.provider.SearchOrganizations(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}

	result := &driving.CompanySearchResult{
		Pagination:    shape.ValueOr(data, "pagination", map[string]any{}),
		Organizations: shape.Projector{}.ProjectList(shape.ListOf(data, "organizations"), shape.TopLevelPaths(fields)),
	}
	logResponse("search_companies", result)
	return result, nil
}

func fieldsOrDefault(fields, defaults []string) []string {
	if fields == nil {
		return defaults
	}
	return fields
}

func logRequest(op string, payload domain.Payload, fields []string) {
	l := logger.Logger()
	l.Info().Str("op", op).Interface("payload", payload).Strs("fields", fields).Msg("request")
}

func logResponse(op string, result any) {
	l := logger.Logger()
	l.Info().Str("op", op).Interface("response", result).Msg("response")
}
