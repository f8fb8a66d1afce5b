package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/toolbridge/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// DatabaseName is the file created inside the data directory.
const DatabaseName = "toolbridge.db"

// Store is a SQLite database holding provider credentials.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.toolbridge/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".toolbridge", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CredentialStore returns a driven.CredentialStore for one provider's row.
func (s *Store) CredentialStore(provider string) driven.CredentialStore {
	return &credentialStore{store: s, provider: provider}
}

// migrate runs all pending migrations, recording each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// =============================================================================
// CredentialStore Implementation
// =============================================================================

type credentialStore struct {
	store    *Store
	provider string
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Load returns the stored record, or nil if none has been saved.
func (s *credentialStore) Load(ctx context.Context) (*domain.CredentialRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, token_type, expiry, scopes
		FROM credentials WHERE provider = ?
	`, s.provider)

	var rec domain.CredentialRecord
	var expiry sql.NullString
	var scopesJSON string
	if err := row.Scan(&rec.AccessToken, &rec.RefreshToken, &rec.TokenType, &expiry, &scopesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}

	if expiry.Valid && expiry.String != "" {
		t, err := time.Parse(time.RFC3339Nano, expiry.String)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing expiry: %w", domain.ErrCorruptCredentials, err)
		}
		rec.Expiry = t
	}
	if err := json.Unmarshal([]byte(scopesJSON), &rec.Scopes); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling scopes: %w", domain.ErrCorruptCredentials, err)
	}
	if len(rec.Scopes) == 0 {
		rec.Scopes = nil
	}

	return &rec, nil
}

// Save stores or replaces the provider's record.
func (s *credentialStore) Save(ctx context.Context, rec domain.CredentialRecord) error {
	if rec.AccessToken == "" {
		return fmt.Errorf("%w: access token is required", domain.ErrInvalidInput)
	}

	scopes := rec.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	scopesJSON, err := json.Marshal(scopes)
	if err != nil {
		return fmt.Errorf("marshalling scopes: %w", err)
	}

	var expiry sql.NullString
	if !rec.Expiry.IsZero() {
		expiry = sql.NullString{String: rec.Expiry.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO credentials
			(provider, access_token, refresh_token, token_type, expiry, scopes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			scopes = excluded.scopes,
			updated_at = excluded.updated_at
	`, s.provider, rec.AccessToken, rec.RefreshToken, rec.TokenType, expiry,
		string(scopesJSON), time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}
