package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// tokenEndpoint fakes the provider's token URL and records form posts.
type tokenEndpoint struct {
	mu     sync.Mutex
	forms  []url.Values
	status int
	body   map[string]any
}

func (e *tokenEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	e.mu.Lock()
	e.forms = append(e.forms, r.PostForm)
	status, body := e.status, e.body
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (e *tokenEndpoint) lastForm() url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.forms) == 0 {
		return nil
	}
	return e.forms[len(e.forms)-1]
}

func writeSecrets(t *testing.T, tokenURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client_secrets.json")
	secrets := map[string]any{
		"installed": map[string]any{
			"client_id":     "client-id",
			"client_secret": "client-secret",
			"auth_uri":      "https://accounts.example.com/o/oauth2/auth",
			"token_uri":     tokenURL,
			"redirect_uris": []string{"http://localhost"},
		},
	}
	data, err := json.Marshal(secrets)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFlow_Config_MissingSecrets(t *testing.T) {
	flow := NewFlow(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := flow.Config()
	assert.ErrorIs(t, err, domain.ErrConfigMissing)

	_, err = flow.Authorize(context.Background())
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestFlow_Config_InvalidSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_secrets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"web": 1}`), 0o600))

	_, err := NewFlow(path, nil).Config()

	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestFlow_Refresh(t *testing.T) {
	endpoint := &tokenEndpoint{body: map[string]any{
		"access_token": "new-access",
		"token_type":   "Bearer",
		"expires_in":   3600,
	}}
	srv := httptest.NewServer(endpoint)
	defer srv.Close()

	flow := NewFlow(writeSecrets(t, srv.URL), []string{"scope-a"})
	rec, err := flow.Refresh(context.Background(), domain.CredentialRecord{
		AccessToken:  "old",
		RefreshToken: "refresh-1",
		Scopes:       []string{"scope-a"},
	})

	require.NoError(t, err)
	assert.Equal(t, "new-access", rec.AccessToken)
	assert.Equal(t, "Bearer", rec.TokenType)
	assert.Equal(t, []string{"scope-a"}, rec.Scopes)
	assert.WithinDuration(t, time.Now().Add(time.Hour), rec.Expiry, time.Minute)

	form := endpoint.lastForm()
	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "refresh-1", form.Get("refresh_token"))
}

func TestFlow_Refresh_Rejected(t *testing.T) {
	endpoint := &tokenEndpoint{
		status: http.StatusBadRequest,
		body:   map[string]any{"error": "invalid_grant", "error_description": "Token has been expired or revoked."},
	}
	srv := httptest.NewServer(endpoint)
	defer srv.Close()

	_, err := NewFlow(writeSecrets(t, srv.URL), nil).Refresh(context.Background(), domain.CredentialRecord{RefreshToken: "r"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestFlow_Refresh_NoRefreshToken(t *testing.T) {
	_, err := NewFlow("unused", nil).Refresh(context.Background(), domain.CredentialRecord{AccessToken: "a"})

	assert.Error(t, err)
}

// callbackBrowser simulates the user approving access in a browser.
func callbackBrowser(t *testing.T, query func(state string) url.Values) func(string) error {
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		params := u.Query()
		redirect := params.Get("redirect_uri")
		cb := query(params.Get("state"))

		go func() {
			resp, err := http.Get(redirect + "?" + cb.Encode()) //nolint:noctx // test helper
			if err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func TestFlow_Authorize(t *testing.T) {
	endpoint := &tokenEndpoint{body: map[string]any{
		"access_token":  "access-1",
		"refresh_token": "refresh-1",
		"token_type":    "Bearer",
		"expires_in":    3600,
	}}
	srv := httptest.NewServer(endpoint)
	defer srv.Close()

	var seenURL string
	browser := callbackBrowser(t, func(state string) url.Values {
		return url.Values{"code": {"auth-code"}, "state": {state}}
	})
	flow := NewFlow(writeSecrets(t, srv.URL), []string{"scope-a", "scope-b"}).
		WithOutput(io.Discard).
		WithTimeout(5 * time.Second).
		WithBrowser(func(u string) error {
			seenURL = u
			return browser(u)
		})

	rec, err := flow.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "access-1", rec.AccessToken)
	assert.Equal(t, "refresh-1", rec.RefreshToken)
	assert.Equal(t, []string{"scope-a", "scope-b"}, rec.Scopes)

	u, err := url.Parse(seenURL)
	require.NoError(t, err)
	assert.Equal(t, "offline", u.Query().Get("access_type"))
	assert.Equal(t, "S256", u.Query().Get("code_challenge_method"))
	assert.NotEmpty(t, u.Query().Get("code_challenge"))

	form := endpoint.lastForm()
	assert.Equal(t, "auth-code", form.Get("code"))
	assert.NotEmpty(t, form.Get("code_verifier"))
}

func TestFlow_Authorize_Denied(t *testing.T) {
	srv := httptest.NewServer(&tokenEndpoint{})
	defer srv.Close()

	flow := NewFlow(writeSecrets(t, srv.URL), nil).
		WithOutput(io.Discard).
		WithTimeout(5 * time.Second).
		WithBrowser(callbackBrowser(t, func(string) url.Values {
			return url.Values{"error": {"access_denied"}}
		}))

	_, err := flow.Authorize(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthCancelled)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestFlow_Authorize_Timeout(t *testing.T) {
	srv := httptest.NewServer(&tokenEndpoint{})
	defer srv.Close()

	flow := NewFlow(writeSecrets(t, srv.URL), nil).
		WithOutput(io.Discard).
		WithTimeout(50 * time.Millisecond).
		WithBrowser(func(string) error { return fmt.Errorf("no display") })

	_, err := flow.Authorize(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthCancelled)
}

func TestGenerateState(t *testing.T) {
	a, err := generateState()
	require.NoError(t, err)
	b, err := generateState()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
