package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unlimited(t *testing.T) {
	l := New(Config{})

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow())
	}
}

func TestLimiter_Burst(t *testing.T) {
	l := New(Config{RequestsPerSecond: 0.001, BurstSize: 2})

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestLimiter_Backoff(t *testing.T) {
	l := New(Config{})
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	l.Backoff(10 * time.Second)
	assert.False(t, l.Allow())

	current = current.Add(11 * time.Second)
	assert.True(t, l.Allow())
}

func TestLimiter_BackoffNeverShortens(t *testing.T) {
	l := New(Config{})
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	l.Backoff(0)
	l.Backoff(time.Second)

	current = current.Add(30 * time.Second)
	assert.False(t, l.Allow(), "default backoff of 60s still in effect")
}

func TestLimiter_WaitCancelledDuringBackoff(t *testing.T) {
	l := New(Config{})
	l.Backoff(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, RetryAfter(tt.header))
		})
	}
}

func TestTransport_BacksOffOn429(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	l := New(Config{})
	client := &http.Client{Transport: &Transport{Limiter: l}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.False(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransport_PassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})
	client := &http.Client{Transport: &Transport{Limiter: l, Base: http.DefaultTransport}}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, l.Allow())
}
