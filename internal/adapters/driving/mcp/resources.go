package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for toolbridge resources.
	uriScheme = "toolbridge://"

	authStatusURI   = uriScheme + "auth/status"
	spreadsheetsURI = uriScheme + "spreadsheets"
)

// registerResources registers the read-only resources backed by the ports
// that are present.
func (s *Server) registerResources() {
	if s.ports.Credentials != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         authStatusURI,
			Name:        "auth-status",
			Description: "State of the stored spreadsheet credentials",
			MIMEType:    "application/json",
		}, s.handleAuthStatusResource)
	}

	if s.ports.Sheets != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         spreadsheetsURI,
			Name:        "spreadsheets",
			Description: "Recently modified spreadsheets visible to the authorized account",
			MIMEType:    "application/json",
		}, s.handleSpreadsheetsResource)
	}
}

// authStatusInfo is the JSON shape of the auth status resource.
type authStatusInfo struct {
	State       domain.CredentialState `json:"state"`
	Description string                 `json:"description"`
	Expiry      string                 `json:"expiry,omitempty"`
	Scopes      []string               `json:"scopes,omitempty"`
}

// handleAuthStatusResource reports the credential state without refreshing.
func (s *Server) handleAuthStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Credentials == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status, err := s.ports.Credentials.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading credential status: %w", err)
	}

	info := authStatusInfo{
		State:       status.State,
		Description: status.State.Description(),
		Scopes:      status.Scopes,
	}
	if !status.Expiry.IsZero() {
		info.Expiry = status.Expiry.UTC().Format(time.RFC3339)
	}

	return jsonResource(req.Params.URI, info)
}

// handleSpreadsheetsResource lists spreadsheets with the default page size.
func (s *Server) handleSpreadsheetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sheets == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	files, err := s.ports.Sheets.List(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("listing spreadsheets: %w", err)
	}
	if files == nil {
		files = []domain.SpreadsheetFile{}
	}

	return jsonResource(req.Params.URI, files)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
