package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driving"
	"github.com/custodia-labs/toolbridge/internal/logger"
)

// Ensure CredentialManager implements the interfaces.
var (
	_ driving.CredentialService = (*CredentialManager)(nil)
	_ driven.TokenProvider      = (*CredentialManager)(nil)
)

// CredentialManager owns the stored OAuth record and decides, before every
// provider call, whether it can be used, must be refreshed, or must be
// re-acquired interactively.
//
// All state inspection and persistence happens under one lock, so
// concurrent tool calls refresh or authorize at most once per expiry.
// Callers waiting for the lock give up when their context ends.
type CredentialManager struct {
	store      driven.CredentialStore
	authorizer driven.Authorizer
	refresher  driven.TokenRefresher
	now        func() time.Time

	// sem is a one-slot lock that can be abandoned on cancellation.
	sem     chan struct{}
	current *domain.CredentialRecord
	loaded  bool
}

// NewCredentialManager creates a credential manager.
// The refresher may be nil, in which case expired records are re-authorized.
func NewCredentialManager(
	store driven.CredentialStore,
	authorizer driven.Authorizer,
	refresher driven.TokenRefresher,
) *CredentialManager {
	return &CredentialManager{
		store:      store,
		authorizer: authorizer,
		refresher:  refresher,
		now:        time.Now,
		sem:        make(chan struct{}, 1),
	}
}

// WithClock replaces the clock used for expiry checks. Used by tests.
func (m *CredentialManager) WithClock(now func() time.Time) *CredentialManager {
	m.now = now
	return m
}

// Token returns a usable record, refreshing or re-authorizing as needed.
// The returned record is a copy; callers may keep it.
func (m *CredentialManager) Token(ctx context.Context) (*domain.CredentialRecord, error) {
	if err := m.lock(ctx); err != nil {
		return nil, err
	}
	defer m.unlock()

	if err := m.loadLocked(ctx); err != nil {
		return nil, err
	}

	state := domain.ClassifyCredentials(m.current, m.now())
	logger.Debug("credential state: %s", state)

	switch state {
	case domain.CredentialValid:
		return m.snapshot(), nil
	case domain.CredentialExpiredRefreshable:
		rec, err := m.refreshLocked(ctx)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrTokenRefreshFailed) {
			return nil, err
		}
		logger.Warn("token refresh failed, falling back to authorization: %v", err)
	}

	return m.authorizeLocked(ctx)
}

// Status reports the current credential state. It never refreshes.
func (m *CredentialManager) Status(ctx context.Context) (driving.CredentialStatus, error) {
	if err := m.lock(ctx); err != nil {
		return driving.CredentialStatus{}, err
	}
	defer m.unlock()

	if err := m.loadLocked(ctx); err != nil {
		return driving.CredentialStatus{}, err
	}

	status := driving.CredentialStatus{
		State: domain.ClassifyCredentials(m.current, m.now()),
	}
	if m.current != nil {
		status.Expiry = m.current.Expiry
		status.Scopes = append([]string(nil), m.current.Scopes...)
	}
	return status, nil
}

// Login runs the interactive flow unconditionally and persists the result.
func (m *CredentialManager) Login(ctx context.Context) (*domain.CredentialRecord, error) {
	if err := m.lock(ctx); err != nil {
		return nil, err
	}
	defer m.unlock()
	return m.authorizeLocked(ctx)
}

// Invalidate drops the cached record so the next call reloads from the store.
func (m *CredentialManager) Invalidate() {
	m.sem <- struct{}{}
	defer m.unlock()
	m.current = nil
	m.loaded = false
	logger.Debug("credential cache invalidated")
}

// ExpireAccessToken marks the cached access token as expired after the
// provider rejected it. The next Token call refreshes or re-authorizes;
// the store keeps the old record until that call commits a new one.
func (m *CredentialManager) ExpireAccessToken() {
	m.sem <- struct{}{}
	defer m.unlock()
	if m.current == nil {
		return
	}
	rec := m.snapshot()
	rec.Expiry = m.now()
	m.current = rec
	logger.Warn("access token rejected by provider, renewing on next call")
}

func (m *CredentialManager) lock(ctx context.Context) error {
	select {
	case m.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for credentials: %w", ctx.Err())
	}
}

func (m *CredentialManager) unlock() {
	<-m.sem
}

func (m *CredentialManager) loadLocked(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	rec, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptCredentials):
		logger.Warn("ignoring unreadable credentials: %v", err)
		rec = nil
	case err != nil:
		return fmt.Errorf("load credentials: %w", err)
	}
	m.current = rec
	m.loaded = true
	return nil
}

func (m *CredentialManager) refreshLocked(ctx context.Context) (*domain.CredentialRecord, error) {
	if m.refresher == nil {
		return nil, fmt.Errorf("%w: no refresher configured", domain.ErrTokenRefreshFailed)
	}

	fresh, err := m.refresher.Refresh(ctx, *m.current)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}
	if fresh == nil || fresh.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", domain.ErrTokenRefreshFailed)
	}

	updated := *m.current
	updated.Apply(*fresh)
	logger.Info("access token refreshed, expires %s", updated.Expiry.Format(time.RFC3339))
	return m.commitLocked(ctx, updated)
}

func (m *CredentialManager) authorizeLocked(ctx context.Context) (*domain.CredentialRecord, error) {
	if m.authorizer == nil {
		return nil, fmt.Errorf("%w: interactive authorization unavailable", domain.ErrAuthRequired)
	}

	logger.Info("starting interactive authorization")
	rec, err := m.authorizer.Authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
	}
	if rec == nil || rec.AccessToken == "" {
		return nil, fmt.Errorf("%w: authorization returned no access token", domain.ErrAuthRequired)
	}
	return m.commitLocked(ctx, *rec)
}

// commitLocked persists rec and only then makes it current.
func (m *CredentialManager) commitLocked(ctx context.Context, rec domain.CredentialRecord) (*domain.CredentialRecord, error) {
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	m.current = &rec
	m.loaded = true
	return m.snapshot(), nil
}

func (m *CredentialManager) snapshot() *domain.CredentialRecord {
	rec := *m.current
	rec.Scopes = append([]string(nil), m.current.Scopes...)
	return &rec
}
