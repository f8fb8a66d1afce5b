package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseName), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".toolbridge", "data", DatabaseName), store.Path())
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	var name string
	err := store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='credentials'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "credentials", name)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrate_FailingMigration(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"002_broken.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE (")},
	}
	err := store.migrate(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version, "failed migration is not recorded")
}

func TestMigrate_SkipsUnversionedFiles(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"notes.up.sql":       &fstest.MapFile{Data: []byte("garbage")},
		"002_extra.up.sql":   &fstest.MapFile{Data: []byte("CREATE TABLE extra (id INTEGER)")},
		"002_extra.down.sql": &fstest.MapFile{Data: []byte("DROP TABLE extra")},
		"001_initial.up.sql": &fstest.MapFile{Data: []byte("garbage")},
		"README.md":          &fstest.MapFile{Data: []byte("#")},
	}
	require.NoError(t, store.migrate(fsys))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestCredentialStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	rec, err := store.CredentialStore("google").Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	creds := store.CredentialStore("google")
	ctx := context.Background()

	expiry := time.Date(2025, 6, 1, 12, 30, 0, 123000000, time.UTC)
	in := domain.CredentialRecord{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       expiry,
		Scopes:       []string{"https://www.googleapis.com/auth/spreadsheets"},
	}
	require.NoError(t, creds.Save(ctx, in))

	out, err := creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.AccessToken, out.AccessToken)
	assert.Equal(t, in.RefreshToken, out.RefreshToken)
	assert.Equal(t, in.TokenType, out.TokenType)
	assert.True(t, expiry.Equal(out.Expiry))
	assert.Equal(t, in.Scopes, out.Scopes)
}

func TestCredentialStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	creds := store.CredentialStore("google")
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, domain.CredentialRecord{AccessToken: "old", RefreshToken: "r"}))
	require.NoError(t, creds.Save(ctx, domain.CredentialRecord{AccessToken: "new"}))

	out, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", out.AccessToken)
	assert.Empty(t, out.RefreshToken)
	assert.True(t, out.Expiry.IsZero())
	assert.Nil(t, out.Scopes)
}

func TestCredentialStore_ProvidersAreIsolated(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CredentialStore("google").Save(ctx, domain.CredentialRecord{AccessToken: "g"}))

	rec, err := store.CredentialStore("other").Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCredentialStore_SaveRequiresAccessToken(t *testing.T) {
	store := setupTestStore(t)

	err := store.CredentialStore("google").Save(context.Background(), domain.CredentialRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCredentialStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.CredentialStore("google").Save(ctx, domain.CredentialRecord{AccessToken: "a"}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.CredentialStore("google").Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "a", rec.AccessToken)
}
