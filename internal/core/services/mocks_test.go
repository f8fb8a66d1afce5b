package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// mockAuthorizer returns a fixed record or error and counts calls.
type mockAuthorizer struct {
	mu     sync.Mutex
	record *domain.CredentialRecord
	err    error
	calls  int
}

func (m *mockAuthorizer) Authorize(_ context.Context) (*domain.CredentialRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	rec := *m.record
	return &rec, nil
}

func (m *mockAuthorizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// blockingAuthorizer holds Authorize until release is closed or ctx ends.
type blockingAuthorizer struct {
	started chan struct{}
	release chan struct{}
	record  domain.CredentialRecord
}

func newBlockingAuthorizer(rec domain.CredentialRecord) *blockingAuthorizer {
	return &blockingAuthorizer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		record:  rec,
	}
}

func (b *blockingAuthorizer) Authorize(ctx context.Context) (*domain.CredentialRecord, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		rec := b.record
		return &rec, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// mockRefresher returns a fixed record or error and counts calls.
type mockRefresher struct {
	mu     sync.Mutex
	record *domain.CredentialRecord
	err    error
	calls  int
	seen   []domain.CredentialRecord
}

func (m *mockRefresher) Refresh(_ context.Context, rec domain.CredentialRecord) (*domain.CredentialRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.seen = append(m.seen, rec)
	if m.err != nil {
		return nil, m.err
	}
	fresh := *m.record
	return &fresh, nil
}

func (m *mockRefresher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// failingCredentialStore fails every operation.
type failingCredentialStore struct {
	loadErr error
	saveErr error
}

var _ driven.CredentialStore = (*failingCredentialStore)(nil)

func (s *failingCredentialStore) Load(_ context.Context) (*domain.CredentialRecord, error) {
	return nil, s.loadErr
}

func (s *failingCredentialStore) Save(_ context.Context, _ domain.CredentialRecord) error {
	return s.saveErr
}

var errBoom = errors.New("boom")

// mockPeopleProvider records payloads and returns canned responses.
type mockPeopleProvider struct {
	searchPeople  map[string]any
	matchPerson   map[string]any
	searchOrgs    map[string]any
	err           error
	lastPayload   domain.Payload
	lastOperation string
}

func (m *mockPeopleProvider) SearchPeople(_ context.Context, p domain.Payload) (map[string]any, error) {
	m.lastOperation, m.lastPayload = "search_people", p
	return m.searchPeople, m.err
}

func (m *mockPeopleProvider) MatchPerson(_ context.Context, p domain.Payload) (map[string]any, error) {
	m.lastOperation, m.lastPayload = "match_person", p
	return m.matchPerson, m.err
}

func (m *mockPeopleProvider) SearchOrganizations(_ context.Context, p domain.Payload) (map[string]any, error) {
	m.lastOperation, m.lastPayload = "search_organizations", p
	return m.searchOrgs, m.err
}

// mockSheetsProvider keeps one sheet of rows in memory.
type mockSheetsProvider struct {
	rows      [][]any
	err       error
	readRange string
	cleared   []string
	updates   []domain.ValuesWrite
	appends   []domain.ValuesWrite
	batches   [][]map[string]any
	getCalls  int
	lastQuery domain.ValuesQuery
}

func (m *mockSheetsProvider) GetSpreadsheet(_ context.Context, id string, ranges []string, grid bool) (map[string]any, error) {
	m.getCalls++
	return map[string]any{"spreadsheetId": id, "ranges": ranges, "grid": grid}, m.err
}

func (m *mockSheetsProvider) GetValues(_ context.Context, q domain.ValuesQuery) (map[string]any, error) {
	m.lastQuery = q
	return map[string]any{"range": q.Range}, m.err
}

func (m *mockSheetsProvider) ReadRows(_ context.Context, _ string, rng string) ([][]any, error) {
	m.readRange = rng
	return m.rows, m.err
}

func (m *mockSheetsProvider) UpdateValues(_ context.Context, w domain.ValuesWrite) (map[string]any, error) {
	m.updates = append(m.updates, w)
	if m.err != nil {
		return nil, m.err
	}
	return map[string]any{
		"updatedRange": w.Range,
		"updatedCells": float64(countCells(w.Values)),
	}, nil
}

func (m *mockSheetsProvider) AppendValues(_ context.Context, w domain.ValuesWrite) (map[string]any, error) {
	m.appends = append(m.appends, w)
	return map[string]any{"tableRange": w.Range}, m.err
}

func (m *mockSheetsProvider) ClearValues(_ context.Context, _ string, rng string) (map[string]any, error) {
	m.cleared = append(m.cleared, rng)
	return map[string]any{"clearedRange": rng}, m.err
}

func (m *mockSheetsProvider) BatchUpdate(_ context.Context, id string, reqs []map[string]any) (map[string]any, error) {
	m.batches = append(m.batches, reqs)
	return map[string]any{"spreadsheetId": id}, m.err
}

func countCells(rows [][]any) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	return n
}

// mockDriveProvider returns a fixed file list.
type mockDriveProvider struct {
	files      []domain.SpreadsheetFile
	err        error
	lastFilter string
	lastSize   int
}

func (m *mockDriveProvider) ListSpreadsheets(_ context.Context, filter string, size int) ([]domain.SpreadsheetFile, error) {
	m.lastFilter, m.lastSize = filter, size
	return m.files, m.err
}

// mockTableReader returns fixed rows for any path.
type mockTableReader struct {
	rows [][]string
	err  error
	path string
}

func (m *mockTableReader) ReadTable(path string) ([][]string, error) {
	m.path = path
	return m.rows, m.err
}
