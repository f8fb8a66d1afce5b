package domain

// Sheets API enumerations used as defaults by the spreadsheet tools.
const (
	MajorDimensionRows    = "ROWS"
	MajorDimensionColumns = "COLUMNS"

	RenderFormattedValue   = "FORMATTED_VALUE"
	RenderUnformattedValue = "UNFORMATTED_VALUE"
	RenderFormula          = "FORMULA"

	DateTimeFormattedString = "FORMATTED_STRING"

	InputUserEntered = "USER_ENTERED"
	InputRaw         = "RAW"

	InsertRows = "INSERT_ROWS"
	Overwrite  = "OVERWRITE"

	// DefaultSheetName is the sheet searched or overwritten when none is given.
	DefaultSheetName = "Sheet1"
)

// ValuesQuery reads a range of cells.
type ValuesQuery struct {
	SpreadsheetID        string
	Range                string
	MajorDimension       string
	ValueRenderOption    string
	DateTimeRenderOption string
}

// WithDefaults fills unset options with the provider defaults the tools use.
func (q ValuesQuery) WithDefaults() ValuesQuery {
	if q.MajorDimension == "" {
		q.MajorDimension = MajorDimensionRows
	}
	if q.ValueRenderOption == "" {
		q.ValueRenderOption = RenderFormattedValue
	}
	if q.DateTimeRenderOption == "" {
		q.DateTimeRenderOption = DateTimeFormattedString
	}
	return q
}

// ValuesWrite writes or appends a block of cells.
type ValuesWrite struct {
	SpreadsheetID    string
	Range            string
	Values           [][]any
	MajorDimension   string
	ValueInputOption string
	// InsertDataOption is only used by appends.
	InsertDataOption string
}

// WithDefaults fills unset options with the provider defaults the tools use.
func (w ValuesWrite) WithDefaults() ValuesWrite {
	if w.MajorDimension == "" {
		w.MajorDimension = MajorDimensionRows
	}
	if w.ValueInputOption == "" {
		w.ValueInputOption = InputUserEntered
	}
	if w.InsertDataOption == "" {
		w.InsertDataOption = InsertRows
	}
	return w
}

// MimeTypeSpreadsheet identifies spreadsheet files in the document provider.
const MimeTypeSpreadsheet = "application/vnd.google-apps.spreadsheet"

// SpreadsheetFile is a spreadsheet discovered through the document provider.
type SpreadsheetFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modified_time,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
}
