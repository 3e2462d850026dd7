package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/velebit-dev/lifemaxx/internal/telemetry/metrics"
)

type testRequestRateLimiter struct {
	allowed    int
	retryAfter time.Duration
	err        error
	calls      int
}

func (rl *testRequestRateLimiter) Allow(
	_ context.Context, _ string, _ redis_rate.Limit,
) (*redis_rate.Result, error) {
	rl.calls++
	if rl.err != nil {
		return nil, rl.err
	}
	return &redis_rate.Result{
		Allowed:    rl.allowed,
		RetryAfter: rl.retryAfter,
	}, nil
}

func TestRateLimit_allowed(t *testing.T) {
	limiter := &testRequestRateLimiter{allowed: 1}
	m := metrics.NewTestManager()

	nextCalled := false
	handler := RateLimit(limiter, "test-router", 5, m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.True(t, nextCalled)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterRateLimitedRequests))
}

func TestRateLimit_limited(t *testing.T) {
	limiter := &testRequestRateLimiter{
		allowed:    0,
		retryAfter: 22 * time.Second,
	}
	m := metrics.NewTestManager()

	nextCalled := false
	handler := RateLimit(limiter, "test-router", 5, m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusTooEarly, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRateLimitedRequests))
}

func TestRateLimit_limiterErrorFailsOpen(t *testing.T) {
	limiter := &testRequestRateLimiter{err: errors.New("redis gone")}
	m := metrics.NewTestManager()

	nextCalled := false
	handler := RateLimit(limiter, "test-router", 5, m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/dashboard", nil))

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterRateLimitedRequests))
}
