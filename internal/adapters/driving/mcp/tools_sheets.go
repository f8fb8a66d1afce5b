package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// SpreadsheetsGetInput is the input schema for spreadsheets_get.
type SpreadsheetsGetInput struct {
	SpreadsheetID   string   `json:"spreadsheet_id" jsonschema:"the spreadsheet ID from its URL"`
	Ranges          []string `json:"ranges,omitempty" jsonschema:"A1 ranges to limit grid data to"`
	IncludeGridData bool     `json:"include_grid_data,omitempty" jsonschema:"include cell data, not just sheet properties"`
}

// ValuesGetInput is the input schema for spreadsheets_values_get.
type ValuesGetInput struct {
	SpreadsheetID     string `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	Range             string `json:"range" jsonschema:"A1 notation, e.g. Sheet1!A1:D10, Sheet1 or A1:D10"`
	MajorDimension    string `json:"major_dimension,omitempty" jsonschema:"ROWS (default) or COLUMNS"`
	ValueRenderOption string `json:"value_render_option,omitempty" jsonschema:"FORMATTED_VALUE (default), UNFORMATTED_VALUE or FORMULA"`
}

// ValuesUpdateInput is the input schema for spreadsheets_values_update.
type ValuesUpdateInput struct {
	SpreadsheetID    string  `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	Range            string  `json:"range" jsonschema:"A1 notation of the top-left cell or whole range"`
	Values           [][]any `json:"values" jsonschema:"rows of cell values"`
	ValueInputOption string  `json:"value_input_option,omitempty" jsonschema:"USER_ENTERED (default, parsed like the UI) or RAW"`
	MajorDimension   string  `json:"major_dimension,omitempty" jsonschema:"ROWS (default) or COLUMNS"`
}

// ValuesAppendInput is the input schema for spreadsheets_values_append.
type ValuesAppendInput struct {
	SpreadsheetID    string  `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	Range            string  `json:"range" jsonschema:"A1 notation of the table to append to"`
	Values           [][]any `json:"values" jsonschema:"rows of cell values"`
	ValueInputOption string  `json:"value_input_option,omitempty" jsonschema:"USER_ENTERED (default) or RAW"`
	MajorDimension   string  `json:"major_dimension,omitempty" jsonschema:"ROWS (default) or COLUMNS"`
	InsertDataOption string  `json:"insert_data_option,omitempty" jsonschema:"INSERT_ROWS (default) or OVERWRITE"`
}

// ValuesClearInput is the input schema for spreadsheets_values_clear.
type ValuesClearInput struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	Range         string `json:"range" jsonschema:"A1 notation range to clear, e.g. Sheet1!A2:D100"`
}

// BatchUpdateInput is the input schema for spreadsheets_batch_update.
type BatchUpdateInput struct {
	SpreadsheetID string           `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	Requests      []map[string]any `json:"requests" jsonschema:"request objects such as {\"addSheet\": {\"properties\": {\"title\": \"New\"}}}"`
}

// SearchInput is the input schema for spreadsheets_search.
type SearchInput struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"the spreadsheet ID"`
	SearchTerm    string `json:"search_term" jsonschema:"substring to look for"`
	SheetName     string `json:"sheet_name,omitempty" jsonschema:"sheet to search (default Sheet1)"`
	Column        string `json:"column,omitempty" jsonschema:"restrict the search to one column letter A-Z"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match case exactly"`
}

// UploadCSVInput is the input schema for upload_csv.
type UploadCSVInput struct {
	CSVFilePath      string `json:"csv_file_path" jsonschema:"path to the local CSV file"`
	SpreadsheetID    string `json:"spreadsheet_id" jsonschema:"target spreadsheet ID"`
	SheetName        string `json:"sheet_name,omitempty" jsonschema:"sheet to overwrite (default Sheet1)"`
	ValueInputOption string `json:"value_input_option,omitempty" jsonschema:"USER_ENTERED (default) or RAW"`
}

// ListInput is the input schema for spreadsheets_list.
type ListInput struct {
	NameFilter string `json:"name_filter,omitempty" jsonschema:"only spreadsheets whose name contains this text"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"maximum number of files (default 50)"`
}

// ListOutput is the result of spreadsheets_list.
type ListOutput struct {
	Files []domain.SpreadsheetFile `json:"files"`
	Count int                      `json:"count"`
}

// registerSheetsTools registers the spreadsheet tools.
func (s *Server) registerSheetsTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_get",
		Description: "Get spreadsheet metadata: title, sheets and their properties.",
	}, s.handleSpreadsheetsGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_values_get",
		Description: "Read cell values from a range.",
	}, s.handleValuesGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_values_update",
		Description: "Overwrite cell values in a range.",
	}, s.handleValuesUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_values_append",
		Description: "Append rows after the last row of the table in a range.",
	}, s.handleValuesAppend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_values_clear",
		Description: "Clear cell values in a range, keeping formatting.",
	}, s.handleValuesClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "spreadsheets_batch_update",
		Description: "Apply structural changes: add, delete or rename sheets, merge cells, " +
			"insert or delete rows and columns, and other batchUpdate requests.",
	}, s.handleBatchUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_search",
		Description: "Find rows containing a term. Returns matching rows with 1-based row numbers.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_csv",
		Description: "Upload a local CSV file to a sheet, overwriting the entire sheet.",
	}, s.handleUploadCSV)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheets_list",
		Description: "List spreadsheets in Drive, most recently modified first.",
	}, s.handleList)
}

func (s *Server) handleSpreadsheetsGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetsGetInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_get", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.Get(ctx, input.SpreadsheetID, input.Ranges, input.IncludeGridData)
	})
}

func (s *Server) handleValuesGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesGetInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_values_get", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.GetValues(ctx, domain.ValuesQuery{
			SpreadsheetID:     input.SpreadsheetID,
			Range:             input.Range,
			MajorDimension:    input.MajorDimension,
			ValueRenderOption: input.ValueRenderOption,
		})
	})
}

func (s *Server) handleValuesUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesUpdateInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_values_update", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.UpdateValues(ctx, domain.ValuesWrite{
			SpreadsheetID:    input.SpreadsheetID,
			Range:            input.Range,
			Values:           input.Values,
			MajorDimension:   input.MajorDimension,
			ValueInputOption: input.ValueInputOption,
		})
	})
}

func (s *Server) handleValuesAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesAppendInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_values_append", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.AppendValues(ctx, domain.ValuesWrite{
			SpreadsheetID:    input.SpreadsheetID,
			Range:            input.Range,
			Values:           input.Values,
			MajorDimension:   input.MajorDimension,
			ValueInputOption: input.ValueInputOption,
			InsertDataOption: input.InsertDataOption,
		})
	})
}

func (s *Server) handleValuesClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesClearInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_values_clear", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.ClearValues(ctx, input.SpreadsheetID, input.Range)
	})
}

func (s *Server) handleBatchUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchUpdateInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_batch_update", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.BatchUpdate(ctx, input.SpreadsheetID, input.Requests)
	})
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_search", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.Search(ctx, input.SpreadsheetID, input.SheetName, domain.RowQuery{
			Term:          input.SearchTerm,
			Column:        input.Column,
			CaseSensitive: input.CaseSensitive,
		})
	})
}

func (s *Server) handleUploadCSV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadCSVInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "upload_csv", func(ctx context.Context) (any, error) {
		return s.ports.Sheets.UploadTable(ctx, input.SpreadsheetID, input.SheetName, input.CSVFilePath, input.ValueInputOption)
	})
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, any, error) {
	return invoke(ctx, "spreadsheets_list", func(ctx context.Context) (any, error) {
		files, err := s.ports.Sheets.List(ctx, input.NameFilter, input.PageSize)
		if err != nil {
			return nil, err
		}
		if files == nil {
			files = []domain.SpreadsheetFile{}
		}
		return ListOutput{Files: files, Count: len(files)}, nil
	})
}
