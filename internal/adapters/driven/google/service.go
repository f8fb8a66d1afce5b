package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/toolbridge/internal/adapters/driven/ratelimit"
)

// NewHTTPClient builds the authenticated client shared by the Sheets and
// Drive services. A nil limiter disables throttling.
func NewHTTPClient(ts oauth2.TokenSource, limiter *ratelimit.Limiter, timeout time.Duration) *http.Client {
	var base http.RoundTripper = http.DefaultTransport
	if limiter != nil {
		base = &ratelimit.Transport{Limiter: limiter, Base: base}
	}
	return &http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
		Timeout:   timeout,
	}
}

// NewSheetsService creates a Sheets API service on client.
func NewSheetsService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*sheets.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	return sheets.NewService(ctx, opts...)
}

// NewDriveService creates a Drive API service on client.
func NewDriveService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*drive.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	return drive.NewService(ctx, opts...)
}

// toMap re-decodes an API response struct into a plain JSON object so the
// tool layer can return it verbatim.
func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
