package mcp

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/core/shape"
)

// mockPeopleService records the parameters it was called with.
type mockPeopleService struct {
	params *shape.ParameterSet
	fields []string

	people    *driving.PeopleSearchResult
	person    *driving.PersonResult
	companies *driving.CompanySearchResult
	err       error
}

func (m *mockPeopleService) SearchPeople(
	_ context.Context, params *shape.ParameterSet, fields []string,
) (*driving.PeopleSearchResult, error) {
	m.params, m.fields = params, fields
	return m.people, m.err
}

func (m *mockPeopleService) EnrichPerson(
	_ context.Context, params *shape.ParameterSet, fields []string,
) (*driving.PersonResult, error) {
	m.params, m.fields = params, fields
	return m.person, m.err
}

func (m *mockPeopleService) SearchCompanies(
	_ context.Context, params *shape.ParameterSet, fields []string,
) (*driving.CompanySearchResult, error) {
	m.params, m.fields = params, fields
	return m.companies, m.err
}

// mockSheetsService records the last request of each kind.
type mockSheetsService struct {
	query  domain.ValuesQuery
	write  domain.ValuesWrite
	id     string
	rng    string
	sheet  string
	path   string
	option string
	row    domain.RowQuery
	reqs   []map[string]any
	filter string
	size   int

	response map[string]any
	search   domain.RowSearchResult
	upload   *driving.UploadResult
	files    []domain.SpreadsheetFile
	err      error
}

func (m *mockSheetsService) Get(_ context.Context, id string, ranges []string, _ bool) (map[string]any, error) {
	m.id = id
	if len(ranges) > 0 {
		m.rng = ranges[0]
	}
	return m.response, m.err
}

func (m *mockSheetsService) GetValues(_ context.Context, q domain.ValuesQuery) (map[string]any, error) {
	m.query = q
	return m.response, m.err
}

func (m *mockSheetsService) UpdateValues(_ context.Context, w domain.ValuesWrite) (map[string]any, error) {
	m.write = w
	return m.response, m.err
}

func (m *mockSheetsService) AppendValues(_ context.Context, w domain.ValuesWrite) (map[string]any, error) {
	m.write = w
	return m.response, m.err
}

func (m *mockSheetsService) ClearValues(_ context.Context, id, rng string) (map[string]any, error) {
	m.id, m.rng = id, rng
	return m.response, m.err
}

func (m *mockSheetsService) BatchUpdate(_ context.Context, id string, reqs []map[string]any) (map[string]any, error) {
	m.id, m.reqs = id, reqs
	return m.response, m.err
}

func (m *mockSheetsService) Search(
	_ context.Context, id, sheet string, q domain.RowQuery,
) (domain.RowSearchResult, error) {
	m.id, m.sheet, m.row = id, sheet, q
	return m.search, m.err
}

func (m *mockSheetsService) UploadTable(
	_ context.Context, id, sheet, path, option string,
) (*driving.UploadResult, error) {
	m.id, m.sheet, m.path, m.option = id, sheet, path, option
	return m.upload, m.err
}

func (m *mockSheetsService) List(_ context.Context, filter string, size int) ([]domain.SpreadsheetFile, error) {
	m.filter, m.size = filter, size
	return m.files, m.err
}

// mockCredentialService reports a fixed status.
type mockCredentialService struct {
	status driving.CredentialStatus
	err    error
}

func (m *mockCredentialService) Token(_ context.Context) (*domain.CredentialRecord, error) {
	return nil, m.err
}

func (m *mockCredentialService) Status(_ context.Context) (driving.CredentialStatus, error) {
	return m.status, m.err
}

func (m *mockCredentialService) Login(_ context.Context) (*domain.CredentialRecord, error) {
	return nil, m.err
}

func (m *mockCredentialService) Invalidate() {}
