package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure Sheets implements the interface.
var _ driven.SheetsProvider = (*Sheets)(nil)

// Sheets implements driven.SheetsProvider on the Sheets v4 API.
type Sheets struct {
	rejectionHook
	svc *sheets.Service
}

// NewSheets creates a spreadsheet provider on client.
func NewSheets(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*Sheets, error) {
	svc, err := NewSheetsService(ctx, client, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Sheets{svc: svc}, nil
}

// OnUnauthorized registers fn to run whenever the API rejects the access token.
func (s *Sheets) OnUnauthorized(fn func()) *Sheets {
	s.onUnauthorized = fn
	return s
}

// GetSpreadsheet returns spreadsheet metadata, optionally with grid data.
func (s *Sheets) GetSpreadsheet(
	ctx context.Context, spreadsheetID string, ranges []string, includeGridData bool,
) (map[string]any, error) {
	call := s.svc.Spreadsheets.Get(spreadsheetID).IncludeGridData(includeGridData).Context(ctx)
	if len(ranges) > 0 {
		call = call.Ranges(ranges...)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

// GetValues reads a range.
func (s *Sheets) GetValues(ctx context.Context, q domain.ValuesQuery) (map[string]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(q.SpreadsheetID, q.Range).
		MajorDimension(q.MajorDimension).
		ValueRenderOption(q.ValueRenderOption).
		DateTimeRenderOption(q.DateTimeRenderOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

// ReadRows returns the formatted cell values of a range, row-major.
func (s *Sheets) ReadRows(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		MajorDimension(domain.MajorDimensionRows).
		ValueRenderOption(domain.RenderFormattedValue).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	if resp.Values == nil {
		return [][]any{}, nil
	}
	return resp.Values, nil
}

// UpdateValues overwrites a range.
func (s *Sheets) UpdateValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error) {
	body := &sheets.ValueRange{Values: w.Values, MajorDimension: w.MajorDimension}
	resp, err := s.svc.Spreadsheets.Values.Update(w.SpreadsheetID, w.Range, body).
		ValueInputOption(w.ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

// AppendValues appends rows after the table found in a range.
func (s *Sheets) AppendValues(ctx context.Context, w domain.ValuesWrite) (map[string]any, error) {
	body := &sheets.ValueRange{Values: w.Values, MajorDimension: w.MajorDimension}
	resp, err := s.svc.Spreadsheets.Values.Append(w.SpreadsheetID, w.Range, body).
		ValueInputOption(w.ValueInputOption).
		InsertDataOption(w.InsertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

// ClearValues clears a range, keeping formatting.
func (s *Sheets) ClearValues(ctx context.Context, spreadsheetID, rng string) (map[string]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

// BatchUpdate applies raw request objects to a spreadsheet.
// Each object must use the API's JSON request shape, e.g. {"addSheet": {...}}.
func (s *Sheets) BatchUpdate(
	ctx context.Context, spreadsheetID string, requests []map[string]any,
) (map[string]any, error) {
	typed, err := decodeRequests(requests)
	if err != nil {
		return nil, err
	}
	body := &sheets.BatchUpdateSpreadsheetRequest{Requests: typed}
	resp, err := s.svc.Spreadsheets.BatchUpdate(spreadsheetID, body).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	return toMap(resp)
}

func decodeRequests(requests []map[string]any) ([]*sheets.Request, error) {
	typed := make([]*sheets.Request, 0, len(requests))
	for i, raw := range requests {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: request %d: %w", domain.ErrInvalidInput, i, err)
		}
		var req sheets.Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: request %d: %w", domain.ErrInvalidInput, i, err)
		}
		typed = append(typed, &req)
	}
	return typed, nil
}
