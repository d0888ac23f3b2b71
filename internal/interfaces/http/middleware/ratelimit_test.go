package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"novel-studio-api/internal/config"
)

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.limit = limit
	l.seen[key]++
	return l.seen[key] <= limit, nil
}

func newLimitedEngine(cfg config.RateLimitConfig, limiter RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/ai/review", RateLimit(cfg, limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func post(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/review", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := &countingLimiter{seen: map[string]int{}}
	r := newLimitedEngine(config.RateLimitConfig{Enabled: true, RequestsPerWindow: 2, Window: time.Minute}, limiter)

	assert.Equal(t, http.StatusOK, post(r).Code)
	assert.Equal(t, http.StatusOK, post(r).Code)
	w := post(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"请求过于频繁，请稍后再试"}`, w.Body.String())
	assert.Equal(t, 3, limiter.seen["ratelimit:/api/ai/review:10.0.0.1"])
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	r := newLimitedEngine(config.RateLimitConfig{Enabled: true}, limiter)
	assert.Equal(t, http.StatusOK, post(r).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &countingLimiter{seen: map[string]int{}}
	r := newLimitedEngine(config.RateLimitConfig{Enabled: false, RequestsPerWindow: 1}, limiter)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(r).Code)
	}
	assert.Empty(t, limiter.seen)
}
