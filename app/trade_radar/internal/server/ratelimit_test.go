package server

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
)

func newTestLimiter(trustProxy bool) *RateLimiter {
	srv := conf.Default().Server
	srv.Http.TrustProxyHeaders = trustProxy
	return NewRateLimiter(conf.Default().RateLimit, srv)
}

func okHandler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	})
}

func TestRuleFor(t *testing.T) {
	l := newTestLimiter(false)
	assert.Equal(t, "login", l.RuleFor(httptest.NewRequest(nethttp.MethodPost, "/login", nil)).Name)
	assert.Equal(t, "analyze", l.RuleFor(httptest.NewRequest(nethttp.MethodGet, "/analyze/technology", nil)).Name)
	assert.Equal(t, "default", l.RuleFor(httptest.NewRequest(nethttp.MethodGet, "/health", nil)).Name)
	assert.Equal(t, 10, l.analyze.Limit)
	assert.Equal(t, time.Hour, l.fallback.Window)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(nethttp.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	r.Header.Set("X-Real-IP", "198.51.100.2")

	assert.Equal(t, "203.0.113.7", newTestLimiter(false).ClientIP(r))

	proxied := newTestLimiter(true)
	assert.Equal(t, "198.51.100.1", proxied.ClientIP(r))

	r.Header.Del("X-Forwarded-For")
	assert.Equal(t, "198.51.100.2", proxied.ClientIP(r))
}

func TestFilterRejectsSixthLogin(t *testing.T) {
	h := newTestLimiter(false).Filter(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/login", nil))
		require.Equal(t, nethttp.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/login", nil))
	assert.Equal(t, nethttp.StatusTooManyRequests, rec.Code)

	var body rateLimitBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body.Error)
	assert.Equal(t, "Too many requests. Please try again later.", body.Message)
	assert.Equal(t, strconv.Itoa(body.RetryAfter), rec.Header().Get("Retry-After"))
	assert.Greater(t, body.RetryAfter, 0)
	assert.LessOrEqual(t, body.RetryAfter, 60)
}

func TestFilterKeepsRulesAndClientsApart(t *testing.T) {
	h := newTestLimiter(false).Filter(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/login", nil))
		require.Equal(t, nethttp.StatusOK, rec.Code)
	}

	// 同一客户端的其他规则不受影响
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/analyze/technology", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	// 其他客户端的登录不受影响
	r := httptest.NewRequest(nethttp.MethodPost, "/login", nil)
	r.RemoteAddr = "198.51.100.9:4000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	// 预检请求不计数
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodOptions, "/login", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}

func TestFilterDisabledRule(t *testing.T) {
	c := conf.Default().RateLimit
	c.LoginPerMinute = 0
	h := NewRateLimiter(c, conf.Default().Server).Filter(okHandler())

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/login", nil))
		require.Equal(t, nethttp.StatusOK, rec.Code)
	}
}

func TestFilterConcurrent(t *testing.T) {
	h := newTestLimiter(false).Filter(okHandler())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/analyze/technology", nil))
			if rec.Code == nethttp.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}
