// Package ratelimit throttles outbound provider requests.
//
// Each provider gets its own token bucket. A 429 response pushes a backoff
// deadline that every later request waits out before taking a token.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoff is used when a 429 response carries no usable Retry-After.
const DefaultBackoff = 60 * time.Second

// Config holds rate limiting configuration for one provider.
type Config struct {
	// RequestsPerSecond is the sustained rate. Zero or less disables throttling.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// Limiter provides token bucket rate limiting with backoff after 429 responses.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// New creates a limiter for cfg.
func New(cfg Config) *Limiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(limit, burst),
		now:     time.Now,
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by Backoff.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if delay := retryAt.Sub(l.now()); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return l.limiter.Wait(ctx)
}

// Backoff delays every later request by d. A non-positive d uses DefaultBackoff.
func (l *Limiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = DefaultBackoff
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	until := l.now().Add(d)
	if until.After(l.retryAt) {
		l.retryAt = until
	}
}

// Allow reports whether a request can be made immediately.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if l.now().Before(retryAt) {
		return false
	}
	return l.limiter.Allow()
}

// Transport is an http.RoundTripper that waits on a Limiter before every
// request and backs off when the server answers 429.
type Transport struct {
	Limiter *Limiter
	// Base is the underlying transport. Nil uses http.DefaultTransport.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		t.Limiter.Backoff(RetryAfter(resp.Header.Get("Retry-After")))
	}
	return resp, nil
}

// RetryAfter parses a Retry-After header given in seconds.
// It returns zero for an empty or unparseable value.
func RetryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
