// Package table reads local tabular files for upload.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure CSVReader implements the interface.
var _ driven.TableReader = (*CSVReader)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads comma-separated files. Rows may have differing lengths.
type CSVReader struct{}

// NewCSVReader creates a CSV table reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// ReadTable returns every row of the CSV file at path.
func (r *CSVReader) ReadTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("CSV file not found: %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads CSV rows from src, skipping a leading UTF-8 byte order mark.
func Parse(src io.Reader) ([][]string, error) {
	br := bufio.NewReader(src)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse CSV: %w", domain.ErrInvalidInput, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}
