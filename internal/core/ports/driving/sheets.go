package driving

import (
	"context"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// UploadResult summarises a table upload.
type UploadResult struct {
	SpreadsheetID  string `json:"spreadsheet_id"`
	SheetName      string `json:"sheet_name"`
	RowsUploaded   int    `json:"rows_uploaded"`
	UpdatedRange   string `json:"updated_range,omitempty"`
	UpdatedRows    int    `json:"updated_rows,omitempty"`
	UpdatedColumns int    `json:"updated_columns,omitempty"`
	UpdatedCells   int    `json:"updated_cells,omitempty"`
}

// SheetsService reads, writes, and searches spreadsheets.
type SheetsService interface {
	Get(ctx context.Context, spreadsheetID string, ranges []string, includeGridData bool) (map[string]any, error)
	GetValues(ctx context.Context, q domain.ValuesQuery) (map[string]any, error)
	UpdateValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error)
	AppendValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error)
	ClearValues(ctx context.Context, spreadsheetID, rng string) (map[string]any, error)
	BatchUpdate(ctx context.Context, spreadsheetID string, requests []map[string]any) (map[string]any, error)

	// Search finds rows containing a term in one sheet.
	Search(ctx context.Context, spreadsheetID, sheetName string, q domain.RowQuery) (domain.RowSearchResult, error)

	// UploadTable replaces a sheet's contents with a local CSV file.
	UploadTable(ctx context.Context, spreadsheetID, sheetName, path, valueInputOption string) (*UploadResult, error)

	// List returns spreadsheets visible to the account.
	List(ctx context.Context, nameFilter string, pageSize int) ([]domain.SpreadsheetFile, error)
}
