package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a driven.TokenProvider to oauth2.TokenSource.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
// The token is requested on every call; caching is the provider's job.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	rec, err := t.provider.Token(t.ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.AccessToken == "" {
		return nil, fmt.Errorf("token provider returned no access token")
	}

	tokenType := rec.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken: rec.AccessToken,
		TokenType:   tokenType,
		Expiry:      rec.Expiry,
	}, nil
}
