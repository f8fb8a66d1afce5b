package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/core/shape"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// Ensure SheetsService implements the interface.
var _ driving.SheetsService = (*SheetsService)(nil)

// DefaultListPageSize is used when spreadsheets are listed without a size.
const DefaultListPageSize = 50

// SheetsService reads, writes, and searches spreadsheets.
type SheetsService struct {
	sheets driven.SheetsProvider
	drive  driven.DriveProvider
	tables driven.TableReader
}

// NewSheetsService creates a new sheets service.
// The drive provider may be nil, in which case List is unavailable.
func NewSheetsService(sheets driven.SheetsProvider, drive driven.DriveProvider, tables driven.TableReader) *SheetsService {
	return &SheetsService{
		sheets: sheets,
		drive:  drive,
		tables: tables,
	}
}

// Get returns spreadsheet metadata.
func (s *SheetsService) Get(
	ctx context.Context, spreadsheetID string, ranges []string, includeGridData bool,
) (map[string]any, error) {
	if err := requireSpreadsheet(spreadsheetID); err != nil {
		return nil, err
	}
	logger.Debug("spreadsheets_get: spreadsheet_id=%s ranges=%v grid=%t", spreadsheetID, ranges, includeGridData)
	return s.sheets.GetSpreadsheet(ctx, spreadsheetID, ranges, includeGridData)
}

// GetValues reads a range with the tools' default render options.
func (s *SheetsService) GetValues(ctx context.Context, q domain.ValuesQuery) (map[string]any, error) {
	if err := requireRange(q.SpreadsheetID, q.Range); err != nil {
		return nil, err
	}
	q = q.WithDefaults()
	logger.Debug("spreadsheets_values_get: spreadsheet_id=%s range=%s", q.SpreadsheetID, q.Range)
	return s.sheets.GetValues(ctx, q)
}

// UpdateValues overwrites a range.
func (s *SheetsService) UpdateValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error) {
	if err := requireRange(w.SpreadsheetID, w.Range); err != nil {
		return nil, err
	}
	w = w.WithDefaults()
	logger.Debug("spreadsheets_values_update: spreadsheet_id=%s range=%s rows=%d", w.SpreadsheetID, w.Range, len(w.Values))
	return s.sheets.UpdateValues(ctx, w)
}

// AppendValues appends rows after the table found in a range.
func (s *SheetsService) AppendValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error) {
	if err := requireRange(w.SpreadsheetID, w.Range); err != nil {
		return nil, err
	}
	w = w.WithDefaults()
	logger.Debug("spreadsheets_values_append: spreadsheet_id=%s range=%s rows=%d", w.SpreadsheetID, w.Range, len(w.Values))
	return s.sheets.AppendValues(ctx, w)
}

// ClearValues clears a range, keeping formatting.
func (s *SheetsService) ClearValues(ctx context.Context, spreadsheetID, rng string) (map[string]any, error) {
	if err := requireRange(spreadsheetID, rng); err != nil {
		return nil, err
	}
	logger.Debug("spreadsheets_values_clear: spreadsheet_id=%s range=%s", spreadsheetID, rng)
	return s.sheets.ClearValues(ctx, spreadsheetID, rng)
}

// BatchUpdate applies raw request objects in one call.
func (s *SheetsService) BatchUpdate(
	ctx context.Context, spreadsheetID string, requests []map[string]any,
) (map[string]any, error) {
	if err := requireSpreadsheet(spreadsheetID); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: at least one request is required", domain.ErrInvalidInput)
	}
	logger.Debug("spreadsheets_batch_update: spreadsheet_id=%s requests=%d", spreadsheetID, len(requests))
	return s.sheets.BatchUpdate(ctx, spreadsheetID, requests)
}

// Search reads a whole sheet and returns the rows containing the term.
// The column is validated before the sheet is read.
func (s *SheetsService) Search(
	ctx context.Context, spreadsheetID, sheetName string, q domain.RowQuery,
) (domain.RowSearchResult, error) {
	if err := requireSpreadsheet(spreadsheetID); err != nil {
		return domain.RowSearchResult{}, err
	}
	if sheetName == "" {
		sheetName = domain.DefaultSheetName
	}
	if q.Column != "" {
		if _, err := shape.ColumnIndex(q.Column); err != nil {
			return domain.RowSearchResult{}, err
		}
	}

	logger.Section("Search")
	logger.Debug("spreadsheets_search: spreadsheet_id=%s sheet=%s term=%q column=%q", spreadsheetID, sheetName, q.Term, q.Column)

	rows, err := s.sheets.ReadRows(ctx, spreadsheetID, sheetName)
	if err != nil {
		return domain.RowSearchResult{}, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	result, err := shape.SearchRows(rows, q)
	if err != nil {
		return domain.RowSearchResult{}, err
	}
	logger.Debug("spreadsheets_search: %d of %d rows matched", result.TotalMatches, len(rows))
	return result, nil
}

// UploadTable replaces the contents of a sheet with a local CSV file.
// The file is read and validated before the sheet is touched.
func (s *SheetsService) UploadTable(
	ctx context.Context, spreadsheetID, sheetName, path, valueInputOption string,
) (*driving.UploadResult, error) {
	if err := requireSpreadsheet(spreadsheetID); err != nil {
		return nil, err
	}
	if sheetName == "" {
		sheetName = domain.DefaultSheetName
	}

	logger.Section("Upload")
	rows, err := s.tables.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTable, path)
	}
	logger.Info("parsed %d rows from %s", len(rows), path)

	if _, err := s.sheets.ClearValues(ctx, spreadsheetID, sheetName); err != nil {
		return nil, fmt.Errorf("clear sheet %s: %w", sheetName, err)
	}
	logger.Debug("cleared sheet %s", sheetName)

	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	resp, err := s.sheets.UpdateValues(ctx, domain.ValuesWrite{
		SpreadsheetID:    spreadsheetID,
		Range:            sheetName + "!A1",
		Values:           values,
		ValueInputOption: valueInputOption,
	}.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("write sheet %s: %w", sheetName, err)
	}

	return &driving.UploadResult{
		SpreadsheetID:  spreadsheetID,
		SheetName:      sheetName,
		RowsUploaded:   len(rows),
		UpdatedRange:   shape.StringOr(resp, "updatedRange"),
		UpdatedRows:    shape.IntOr(resp, "updatedRows"),
		UpdatedColumns: shape.IntOr(resp, "updatedColumns"),
		UpdatedCells:   shape.IntOr(resp, "updatedCells"),
	}, nil
}

// List returns spreadsheets whose name contains nameFilter.
func (s *SheetsService) List(ctx context.Context, nameFilter string, pageSize int) ([]domain.SpreadsheetFile, error) {
	if s.drive == nil {
		return nil, fmt.Errorf("%w: document provider", domain.ErrConfigMissing)
	}
	if pageSize <= 0 {
		pageSize = DefaultListPageSize
	}
	return s.drive.ListSpreadsheets(ctx, strings.TrimSpace(nameFilter), pageSize)
}

func requireSpreadsheet(spreadsheetID string) error {
	if strings.TrimSpace(spreadsheetID) == "" {
		return fmt.Errorf("%w: spreadsheet_id is required", domain.ErrInvalidInput)
	}
	return nil
}

func requireRange(spreadsheetID, rng string) error {
	if err := requireSpreadsheet(spreadsheetID); err != nil {
		return err
	}
	if rng == "" {
		return fmt.Errorf("%w: range is required", domain.ErrInvalidInput)
	}
	return nil
}
