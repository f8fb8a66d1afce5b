package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// Ensure Flow implements the interfaces.
var (
	_ driven.Authorizer     = (*Flow)(nil)
	_ driven.TokenRefresher = (*Flow)(nil)
)

// DefaultAuthorizeTimeout bounds how long the flow waits for the user.
const DefaultAuthorizeTimeout = 5 * time.Minute

// ErrAccessDenied indicates the user or provider rejected the authorization.
var ErrAccessDenied = errors.New("access denied")

// Flow runs the installed-application OAuth flow and token refresh.
type Flow struct {
	secretsPath string
	scopes      []string
	timeout     time.Duration
	openBrowser func(string) error
	out         io.Writer
}

// NewFlow creates an OAuth flow for the client in secretsPath.
func NewFlow(secretsPath string, scopes []string) *Flow {
	return &Flow{
		secretsPath: secretsPath,
		scopes:      scopes,
		timeout:     DefaultAuthorizeTimeout,
		openBrowser: OpenBrowser,
		out:         os.Stderr,
	}
}

// WithBrowser replaces the browser launcher. Used by tests.
func (f *Flow) WithBrowser(open func(string) error) *Flow {
	f.openBrowser = open
	return f
}

// WithTimeout sets how long Authorize waits for the callback.
func (f *Flow) WithTimeout(d time.Duration) *Flow {
	f.timeout = d
	return f
}

// WithOutput sets where the authorization URL is printed.
func (f *Flow) WithOutput(w io.Writer) *Flow {
	f.out = w
	return f
}

// Config loads the OAuth client configuration.
func (f *Flow) Config() (*oauth2.Config, error) {
	data, err := os.ReadFile(f.secretsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: OAuth client secrets not found at %s", domain.ErrConfigMissing, f.secretsPath)
		}
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, f.scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client secrets %s: %w", domain.ErrConfigMissing, f.secretsPath, err)
	}
	return cfg, nil
}

// Authorize opens the consent page and waits for the loopback callback.
// The user can also paste the printed URL into a browser manually.
func (f *Flow) Authorize(ctx context.Context) (*domain.CredentialRecord, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	receiver, err := listenLoopback(state)
	if err != nil {
		return nil, err
	}
	defer func() { _ = receiver.Close() }()

	cfg.RedirectURL = receiver.RedirectURL()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	_, _ = fmt.Fprintf(f.out, "Open this URL to authorize toolbridge:\n\n  %s\n\n", authURL)
	if err := f.openBrowser(authURL); err != nil {
		logger.Warn("could not open browser: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	code, err := receiver.Wait(waitCtx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: timed out after %s", domain.ErrAuthCancelled, f.timeout)
	case errors.Is(err, context.Canceled):
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthCancelled, err)
	case errors.Is(err, ErrAccessDenied):
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthCancelled, err)
	case err != nil:
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", describe(err))
	}

	logger.Info("authorization completed")
	return recordFromToken(tok, cfg.Scopes), nil
}

// Refresh exchanges rec's refresh token for a new access token.
func (f *Flow) Refresh(ctx context.Context, rec domain.CredentialRecord) (*domain.CredentialRecord, error) {
	if rec.RefreshToken == "" {
		return nil, errors.New("no refresh token")
	}
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	// A token with only a refresh token is never valid, forcing a refresh.
	src := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: rec.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, describe(err)
	}
	return recordFromToken(tok, rec.Scopes), nil
}

func recordFromToken(tok *oauth2.Token, scopes []string) *domain.CredentialRecord {
	return &domain.CredentialRecord{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry.UTC(),
		Scopes:       append([]string(nil), scopes...),
	}
}

// describe turns a token endpoint error into a short message.
func describe(err error) error {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) || rerr.ErrorCode == "" {
		return err
	}
	if rerr.ErrorDescription != "" {
		return fmt.Errorf("%s: %s", rerr.ErrorCode, rerr.ErrorDescription)
	}
	return errors.New(rerr.ErrorCode)
}

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
