package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(now *time.Time, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(func() time.Time { return *now })
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(userIDKey, "demo_user")
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: DispatchGroupFor,
		Limiter:  limiter,
		Rules:    rules,
	}))
	r.POST("/api/v1/ai-career-assistant", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitDispatchGroupIsSeparate(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		DispatchRateLimitGroup: {Rate: 1, Burst: 2},
	})

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/ai-career-assistant", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("dispatch request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/ai-career-assistant", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("dispatch request 3 expected 429, got %d", resp.Code)
	}

	// DEFAULT has no rule, so other routes are never throttled.
	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("session request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	now = now.Add(time.Second)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/ai-career-assistant", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected refill after 1s, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(&now, map[string]RateLimitRule{
		DispatchRateLimitGroup: {Rate: 1, Burst: 1},
	})

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, httptest.NewRequest(http.MethodPost, "/api/v1/ai-career-assistant", nil))
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, httptest.NewRequest(http.MethodPost, "/api/v1/ai-career-assistant", nil))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp2.Header().Get("Retry-After"))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["code"] != "RATE_LIMITED" {
		t.Fatalf("expected code=RATE_LIMITED, got %v", payload["code"])
	}
	if payload["retryAfterMs"] != float64(1000) {
		t.Fatalf("expected retryAfterMs=1000, got %v", payload["retryAfterMs"])
	}
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	l.Allow("stale|DISPATCH", rule)
	now = now.Add(bucketIdleTTL + time.Minute)
	for i := 1; i < sweepEvery; i++ {
		l.Allow("active|DISPATCH", rule)
	}
	if got := l.Size(); got != 1 {
		t.Fatalf("expected idle bucket to be swept, have %d buckets", got)
	}
}

func TestRateLimiterZeroRuleNeverThrottles(t *testing.T) {
	l := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if ok, _ := l.Allow("k", RateLimitRule{}); !ok {
			t.Fatalf("zero rule throttled call %d", i)
		}
	}
}
