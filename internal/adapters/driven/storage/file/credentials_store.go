package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// Token file keys.
const (
	keyToken        = "token"
	keyRefreshToken = "refresh_token"
	keyTokenType    = "token_type"
	keyExpiry       = "expiry"
	keyScopes       = "scopes"
)

// legacyExpiryLayout is an ISO timestamp without zone, read as UTC.
const legacyExpiryLayout = "2006-01-02T15:04:05.999999999"

// CredentialStore keeps a single credential record in a JSON file.
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

// NewCredentialStore creates a store backed by the file at path.
// The file is not created until the first Save.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Path returns the token file path.
func (s *CredentialStore) Path() string {
	return s.path
}

// Load reads the token file. A missing file returns nil, nil.
func (s *CredentialStore) Load(_ context.Context) (*domain.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readLocked()
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// Save writes rec, keeping any keys already in the file that it does not own.
func (s *CredentialStore) Save(_ context.Context, rec domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readLocked()
	if err != nil {
		// A corrupt file is replaced rather than blocking a fresh login.
		raw = nil
	}
	if raw == nil {
		raw = map[string]any{}
	}
	encodeRecord(raw, rec)

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func (s *CredentialStore) readLocked() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse token file %s: %w", domain.ErrCorruptCredentials, s.path, err)
	}
	return raw, nil
}

func decodeRecord(raw map[string]any) (*domain.CredentialRecord, error) {
	rec := &domain.CredentialRecord{
		AccessToken:  stringValue(raw[keyToken]),
		RefreshToken: stringValue(raw[keyRefreshToken]),
		TokenType:    stringValue(raw[keyTokenType]),
	}

	if expiry := stringValue(raw[keyExpiry]); expiry != "" {
		t, err := parseExpiry(expiry)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCorruptCredentials, err)
		}
		rec.Expiry = t
	}

	if scopes, ok := raw[keyScopes].([]any); ok {
		for _, scope := range scopes {
			if s, ok := scope.(string); ok {
				rec.Scopes = append(rec.Scopes, s)
			}
		}
	}
	return rec, nil
}

func encodeRecord(raw map[string]any, rec domain.CredentialRecord) {
	raw[keyToken] = rec.AccessToken
	raw[keyRefreshToken] = rec.RefreshToken

	if rec.TokenType != "" {
		raw[keyTokenType] = rec.TokenType
	} else {
		delete(raw, keyTokenType)
	}

	if rec.Expiry.IsZero() {
		delete(raw, keyExpiry)
	} else {
		raw[keyExpiry] = rec.Expiry.UTC().Format(time.RFC3339Nano)
	}

	if rec.Scopes != nil {
		raw[keyScopes] = rec.Scopes
	}
}

func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyExpiryLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiry %q: %w", s, err)
	}
	return t, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// writeFileAtomic replaces path via a temp file and rename so a reader or
// watcher never sees a half-written token.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
