package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/toolbridge/internal/core/shape"
)

// SearchPeopleInput is the input schema for search_people.
// Optional parameters are pointers or nil slices so that "not given" stays
// distinguishable from a zero value.
type SearchPeopleInput struct {
	PersonFields []string `json:"person_fields,omitempty" param:"-" jsonschema:"fields to return per person; dotted paths such as organization.name select nested keys"`

	PersonTitles                         []string `json:"person_titles,omitempty" jsonschema:"job titles to match"`
	IncludeSimilarTitles                 *bool    `json:"include_similar_titles,omitempty" jsonschema:"also match titles similar to person_titles"`
	QKeywords                            *string  `json:"q_keywords,omitempty" jsonschema:"free-text keywords"`
	PersonLocations                      []string `json:"person_locations,omitempty" jsonschema:"where people live"`
	PersonSeniorities                    []string `json:"person_seniorities,omitempty" jsonschema:"seniority levels such as owner, vp, director"`
	OrganizationLocations                []string `json:"organization_locations,omitempty" jsonschema:"headquarters locations of current employers"`
	QOrganizationDomainsList             []string `json:"q_organization_domains_list,omitempty" jsonschema:"employer domains such as apollo.io"`
	ContactEmailStatus                   []string `json:"contact_email_status,omitempty" jsonschema:"email statuses such as verified or likely to engage"`
	OrganizationIDs                      []string `json:"organization_ids,omitempty" jsonschema:"employer organization IDs"`
	OrganizationNumEmployeesRanges       []string `json:"organization_num_employees_ranges,omitempty" jsonschema:"employee count ranges such as 1,10"`
	RevenueRangeMin                      *int     `json:"revenue_range_min,omitempty" jsonschema:"minimum employer revenue"`
	RevenueRangeMax                      *int     `json:"revenue_range_max,omitempty" jsonschema:"maximum employer revenue"`
	CurrentlyUsingAllOfTechnologyUIDs    []string `json:"currently_using_all_of_technology_uids,omitempty" jsonschema:"employer uses every one of these technologies"`
	CurrentlyUsingAnyOfTechnologyUIDs    []string `json:"currently_using_any_of_technology_uids,omitempty" jsonschema:"employer uses at least one of these technologies"`
	CurrentlyNotUsingAnyOfTechnologyUIDs []string `json:"currently_not_using_any_of_technology_uids,omitempty" jsonschema:"employer uses none of these technologies"`
	QOrganizationJobTitles               []string `json:"q_organization_job_titles,omitempty" jsonschema:"job titles in the employer's active postings"`
	OrganizationJobLocations             []string `json:"organization_job_locations,omitempty" jsonschema:"locations of the employer's active postings"`
	OrganizationNumJobsRangeMin          *int     `json:"organization_num_jobs_range_min,omitempty" jsonschema:"minimum number of active postings"`
	OrganizationNumJobsRangeMax          *int     `json:"organization_num_jobs_range_max,omitempty" jsonschema:"maximum number of active postings"`
	OrganizationJobPostedAtRangeMin      *string  `json:"organization_job_posted_at_range_min,omitempty" jsonschema:"earliest posting date, YYYY-MM-DD"`
	OrganizationJobPostedAtRangeMax      *string  `json:"organization_job_posted_at_range_max,omitempty" jsonschema:"latest posting date, YYYY-MM-DD"`
	Page                                 *int     `json:"page,omitempty" jsonschema:"page number (default 1)"`
	PerPage                              *int     `json:"per_page,omitempty" jsonschema:"results per page (default 25, max 100)"`
}

// EnrichPersonInput is the input schema for enrich_person.
type EnrichPersonInput struct {
	PersonFields []string `json:"person_fields,omitempty" param:"-" jsonschema:"fields to return; dotted paths such as organization.name select nested keys"`

	FirstName            *string `json:"first_name,omitempty" jsonschema:"first name"`
	LastName             *string `json:"last_name,omitempty" jsonschema:"last name"`
	Name                 *string `json:"name,omitempty" jsonschema:"full name"`
	Email                *string `json:"email,omitempty" jsonschema:"email address"`
	HashedEmail          *string `json:"hashed_email,omitempty" jsonschema:"MD5 or SHA-256 hashed email"`
	OrganizationName     *string `json:"organization_name,omitempty" jsonschema:"current employer name"`
	Domain               *string `json:"domain,omitempty" jsonschema:"current employer domain"`
	ID                   *string `json:"id,omitempty" jsonschema:"person ID from a previous search"`
	LinkedinURL          *string `json:"linkedin_url,omitempty" jsonschema:"LinkedIn profile URL"`
	RevealPersonalEmails bool    `json:"reveal_personal_emails,omitempty" jsonschema:"request personal emails (uses credits)"`
}

// SearchCompaniesInput is the input schema for search_companies.
type SearchCompaniesInput struct {
	OrganizationFields []string `json:"organization_fields,omitempty" param:"-" jsonschema:"top-level fields to return per organization"`

	QOrganizationDomainsList          []string `json:"q_organization_domains_list,omitempty" jsonschema:"company domains"`
	OrganizationNumEmployeesRanges    []string `json:"organization_num_employees_ranges,omitempty" jsonschema:"employee count ranges such as 1,10"`
	OrganizationLocations             []string `json:"organization_locations,omitempty" jsonschema:"headquarters locations to include"`
	OrganizationNotLocations          []string `json:"organization_not_locations,omitempty" jsonschema:"headquarters locations to exclude"`
	RevenueRangeMin                   *int     `json:"revenue_range_min,omitempty" jsonschema:"minimum revenue"`
	RevenueRangeMax                   *int     `json:"revenue_range_max,omitempty" jsonschema:"maximum revenue"`
	CurrentlyUsingAnyOfTechnologyUIDs []string `json:"currently_using_any_of_technology_uids,omitempty" jsonschema:"uses at least one of these technologies"`
	QOrganizationKeywordTags          []string `json:"q_organization_keyword_tags,omitempty" jsonschema:"industry or keyword tags"`
	QOrganizationName                 *string  `json:"q_organization_name,omitempty" jsonschema:"company name, partial match"`
	OrganizationIDs                   []string `json:"organization_ids,omitempty" jsonschema:"organization IDs"`
	LatestFundingAmountRangeMin       *int     `json:"latest_funding_amount_range_min,omitempty" jsonschema:"minimum latest funding amount"`
	LatestFundingAmountRangeMax       *int     `json:"latest_funding_amount_range_max,omitempty" jsonschema:"maximum latest funding amount"`
	TotalFundingRangeMin              *int     `json:"total_funding_range_min,omitempty" jsonschema:"minimum total funding"`
	TotalFundingRangeMax              *int     `json:"total_funding_range_max,omitempty" jsonschema:"maximum total funding"`
	LatestFundingDateRangeMin         *string  `json:"latest_funding_date_range_min,omitempty" jsonschema:"earliest latest-funding date, YYYY-MM-DD"`
	LatestFundingDateRangeMax         *string  `json:"latest_funding_date_range_max,omitempty" jsonschema:"latest latest-funding date, YYYY-MM-DD"`
	QOrganizationJobTitles            []string `json:"q_organization_job_titles,omitempty" jsonschema:"job titles in active postings"`
	OrganizationJobLocations          []string `json:"organization_job_locations,omitempty" jsonschema:"locations of active postings"`
	OrganizationNumJobsRangeMin       *int     `json:"organization_num_jobs_range_min,omitempty" jsonschema:"minimum number of active postings"`
	OrganizationNumJobsRangeMax       *int     `json:"organization_num_jobs_range_max,omitempty" jsonschema:"maximum number of active postings"`
	OrganizationJobPostedAtRangeMin   *string  `json:"organization_job_posted_at_range_min,omitempty" jsonschema:"earliest posting date, YYYY-MM-DD"`
	OrganizationJobPostedAtRangeMax   *string  `json:"organization_job_posted_at_range_max,omitempty" jsonschema:"latest posting date, YYYY-MM-DD"`
	Page                              *int     `json:"page,omitempty" jsonschema:"page number (default 1)"`
	PerPage                           *int     `json:"per_page,omitempty" jsonschema:"results per page (default 25, max 100)"`
}

// registerPeopleTools registers the people and company tools.
func (s *Server) registerPeopleTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_people",
		Description: "Search for people by title, location, seniority and employer attributes. " +
			"Does not return emails or phone numbers; use enrich_person for those.",
	}, s.handleSearchPeople)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "enrich_person",
		Description: "Look up one person and return their profile, employment history, " +
			"and contact details. Consumes credits.",
	}, s.handleEnrichPerson)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_companies",
		Description: "Search for companies by domain, location, size, revenue, funding, technology and hiring activity.",
	}, s.handleSearchCompanies)
}

func (s *Server) handleSearchPeople(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPeopleInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "search_people", func(ctx context.Context) (any, error) {
		params, err := shape.ParametersFromStruct(&input)
		if err != nil {
			return nil, err
		}
		return s.ports.People.SearchPeople(ctx, params, input.PersonFields)
	})
}

func (s *Server) handleEnrichPerson(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnrichPersonInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "enrich_person", func(ctx context.Context) (any, error) {
		params, err := shape.ParametersFromStruct(&input)
		if err != nil {
			return nil, err
		}
		return s.ports.People.EnrichPerson(ctx, params, input.PersonFields)
	})
}

func (s *Server) handleSearchCompanies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCompaniesInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "search_companies", func(ctx context.Context) (any, error) {
		params, err := shape.ParametersFromStruct(&input)
		if err != nil {
			return nil, err
		}
		return s.ports.People.SearchCompanies(ctx, params, input.OrganizationFields)
	})
}
