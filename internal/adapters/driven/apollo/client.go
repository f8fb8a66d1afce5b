// Package apollo implements the people and company data provider over the
// Apollo REST API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/toolbridge/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PeopleProvider = (*Client)(nil)

// ProviderName is the provider label used in error messages.
const ProviderName = "Apollo"

// API paths relative to the base URL.
const (
	pathPeopleSearch  = "/mixed_people/api_search"
	pathPeopleMatch   = "/people/match"
	pathCompanySearch = "/mixed_companies/search"
)

// Limits on how much of an error response ends up in the reason.
const (
	maxErrorBody   = 64 * 1024
	maxReasonRunes = 300
)

// Client calls the Apollo API with an API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an Apollo client. A nil limiter disables throttling and
// a zero timeout uses domain.DefaultTransportTimeout.
func NewClient(settings domain.ApolloSettings, limiter *ratelimit.Limiter, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = domain.DefaultTransportTimeout
	}
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = domain.DefaultApolloBaseURL
	}

	var transport http.RoundTripper = http.DefaultTransport
	if limiter != nil {
		transport = &ratelimit.Transport{Limiter: limiter, Base: transport}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  settings.APIKey,
		http:    &http.Client{Transport: transport, Timeout: timeout},
	}
}

// SearchPeople runs a people search with the given request body.
func (c *Client) SearchPeople(ctx context.Context, payload domain.Payload) (map[string]any, error) {
	return c.postJSON(ctx, pathPeopleSearch, payload)
}

// MatchPerson enriches a single person. The payload is sent as query parameters.
func (c *Client) MatchPerson(ctx context.Context, payload domain.Payload) (map[string]any, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	url := c.baseURL + pathPeopleMatch
	if query := payload.Query().Encode(); query != "" {
		url += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// SearchOrganizations runs a company search with the given request body.
func (c *Client) SearchOrganizations(ctx context.Context, payload domain.Payload) (map[string]any, error) {
	return c.postJSON(ctx, pathCompanySearch, payload)
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: Apollo API key (set APOLLO_API_KEY or run 'toolbridge config set-apollo-key')",
			domain.ErrConfigMissing)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload domain.Payload) (map[string]any, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = domain.Payload{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: ProviderName, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, data)
	}

	out := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.ProviderError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
	}
	return out, nil
}

// statusError builds a ProviderError from a non-2xx response, using the
// API's own message when the body carries one.
func statusError(code int, body []byte) *domain.ProviderError {
	reason := fmt.Sprintf("%d %s", code, http.StatusText(code))
	if msg := errorMessage(body); msg != "" {
		reason += ": " + msg
	}

	perr := &domain.ProviderError{Provider: ProviderName, StatusCode: code, Reason: reason}
	if code == http.StatusTooManyRequests {
		perr.Err = domain.ErrRateLimited
	}
	return perr
}

func errorMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	text := []rune(strings.TrimSpace(string(body)))
	if len(text) > maxReasonRunes {
		return string(text[:maxReasonRunes]) + "..."
	}
	return string(text)
}
