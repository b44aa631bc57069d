package server

import (
	"encoding/json"
	"net"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
)

// Rule 一条限流规则：Window 内最多 Limit 次
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter 每条规则一个 httprate 滑动窗口，按客户端 IP 计数
type RateLimiter struct {
	login      Rule
	analyze    Rule
	fallback   Rule
	trustProxy bool
	handlers   map[string]func(nethttp.Handler) nethttp.Handler
}

// NewRateLimiter 根据配置创建限流器
func NewRateLimiter(c *conf.RateLimit, srv *conf.Server) *RateLimiter {
	if c == nil {
		c = conf.Default().RateLimit
	}
	l := &RateLimiter{
		login:    Rule{Name: "login", Limit: int(c.LoginPerMinute), Window: time.Minute},
		analyze:  Rule{Name: "analyze", Limit: int(c.AnalyzePerMinute), Window: time.Minute},
		fallback: Rule{Name: "default", Limit: int(c.DefaultPerHour), Window: time.Hour},
		handlers: make(map[string]func(nethttp.Handler) nethttp.Handler),
	}
	if srv != nil && srv.Http != nil {
		l.trustProxy = srv.Http.TrustProxyHeaders
	}

	for _, rule := range []Rule{l.login, l.analyze, l.fallback} {
		if rule.Limit <= 0 {
			continue
		}
		l.handlers[rule.Name] = httprate.Limit(rule.Limit, rule.Window,
			httprate.WithKeyFuncs(l.keyByClient),
			httprate.WithLimitHandler(limitExceeded(rule)),
		)
	}
	return l
}

// RuleFor 根据路径选择规则
func (l *RateLimiter) RuleFor(r *nethttp.Request) Rule {
	switch {
	case r.URL.Path == "/login":
		return l.login
	case strings.HasPrefix(r.URL.Path, "/analyze/"):
		return l.analyze
	}
	return l.fallback
}

// ClientIP 默认取连接地址，信任代理时优先取转发头
func (l *RateLimiter) ClientIP(r *nethttp.Request) string {
	if l.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (l *RateLimiter) keyByClient(r *nethttp.Request) (string, error) {
	return l.ClientIP(r), nil
}

type rateLimitBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// limitExceeded 输出 429 JSON，retry_after 与 Retry-After 头保持一致
func limitExceeded(rule Rule) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		seconds, err := strconv.Atoi(w.Header().Get("Retry-After"))
		if err != nil || seconds < 1 {
			seconds = int(rule.Window.Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(rateLimitBody{
			Error:      "Rate limit exceeded",
			Message:    "Too many requests. Please try again later.",
			RetryAfter: seconds,
		})
	}
}

// Filter 作为 kratos HTTP filter 使用
func (l *RateLimiter) Filter(next nethttp.Handler) nethttp.Handler {
	limited := make(map[string]nethttp.Handler, len(l.handlers))
	for name, mw := range l.handlers {
		limited[name] = mw(next)
	}
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method == nethttp.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if h, ok := limited[l.RuleFor(r).Name]; ok {
			h.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
