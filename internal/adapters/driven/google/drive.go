package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure Drive implements the interface.
var _ driven.DriveProvider = (*Drive)(nil)

// maxPageSize is the largest page the Drive files endpoint accepts.
const maxPageSize = 1000

// Drive implements driven.DriveProvider on the Drive v3 API.
type Drive struct {
	rejectionHook
	svc *drive.Service
}

// NewDrive creates a document provider on client.
func NewDrive(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*Drive, error) {
	svc, err := NewDriveService(ctx, client, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Drive{svc: svc}, nil
}

// OnUnauthorized registers fn to run whenever the API rejects the access token.
func (d *Drive) OnUnauthorized(fn func()) *Drive {
	d.onUnauthorized = fn
	return d
}

// ListSpreadsheets returns spreadsheets whose name contains nameFilter,
// most recently modified first.
func (d *Drive) ListSpreadsheets(ctx context.Context, nameFilter string, pageSize int) ([]domain.SpreadsheetFile, error) {
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	resp, err := d.svc.Files.List().
		Q(spreadsheetQuery(nameFilter)).
		PageSize(int64(pageSize)).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,modifiedTime,webViewLink)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, d.wrap(err)
	}

	files := make([]domain.SpreadsheetFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, domain.SpreadsheetFile{
			ID:           f.Id,
			Name:         f.Name,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return files, nil
}

func spreadsheetQuery(nameFilter string) string {
	clauses := []string{
		fmt.Sprintf("mimeType='%s'", domain.MimeTypeSpreadsheet),
		"trashed=false",
	}
	if nameFilter != "" {
		escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(nameFilter)
		clauses = append(clauses, fmt.Sprintf("name contains '%s'", escaped))
	}
	return strings.Join(clauses, " and ")
}
