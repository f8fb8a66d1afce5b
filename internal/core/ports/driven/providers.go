package driven

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// PeopleProvider calls the people and company data API.
// Responses are returned as decoded JSON objects for projection.
type PeopleProvider interface {
	// SearchPeople runs a people search with the given request body.
	SearchPeople(ctx context.Context, payload domain.Payload) (map[string]any, error)

	// MatchPerson enriches a single person. The payload is sent as query parameters.
	MatchPerson(ctx context.Context, payload domain.Payload) (map[string]any, error)

	// SearchOrganizations runs a company search with the given request body.
	SearchOrganizations(ctx context.Context, payload domain.Payload) (map[string]any, error)
}

// SheetsProvider calls the spreadsheet API.
type SheetsProvider interface {
	// GetSpreadsheet returns spreadsheet metadata, optionally with grid data.
	GetSpreadsheet(ctx context.Context, spreadsheetID string, ranges []string, includeGridData bool) (map[string]any, error)

	// GetValues reads a range.
	GetValues(ctx context.Context, q domain.ValuesQuery) (map[string]any, error)

	// ReadRows returns the raw cell values of a range, row-major.
	ReadRows(ctx context.Context, spreadsheetID, rng string) ([][]any, error)

	// UpdateValues overwrites a range.
	UpdateValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error)

	// AppendValues appends rows after the table found in a range.
	AppendValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error)

	// ClearValues clears a range, keeping formatting.
	ClearValues(ctx context.Context, spreadsheetID, rng string) (map[string]any, error)

	// BatchUpdate applies raw request objects to a spreadsheet.
	BatchUpdate(ctx context.Context, spreadsheetID string, requests []map[string]any) (map[string]any, error)
}

// DriveProvider lists files visible to the authorized account.
type DriveProvider interface {
	// ListSpreadsheets returns spreadsheets whose name contains nameFilter.
	// An empty filter lists all spreadsheets.
	ListSpreadsheets(ctx context.Context, nameFilter string, pageSize int) ([]domain.SpreadsheetFile, error)
}

// TableReader reads a local tabular file into rows.
type TableReader interface {
	// ReadTable returns every row of the file at path.
	// Returns domain.ErrNotFound if the file does not exist.
	ReadTable(path string) ([][]string, error)
}
