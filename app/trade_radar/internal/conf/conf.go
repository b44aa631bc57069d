package conf

import (
	"time"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/collector"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/report"
)

type Bootstrap struct {
	App       *App       `json:"app"`
	Server    *Server    `json:"server"`
	Auth      *Auth      `json:"auth"`
	RateLimit *RateLimit `json:"rate_limit"`
	Llm       *LLM       `json:"llm"`
	Search    *Search    `json:"search"`
	Report    *Report    `json:"report"`
	Log       *Log       `json:"log"`
}

type App struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Server struct {
	Http *HTTP `json:"http"`
	Grpc *GRPC `json:"grpc"`
}

type HTTP struct {
	Addr              string   `json:"addr"`
	Timeout           string   `json:"timeout"`
	CorsOrigins       []string `json:"cors_origins"`
	ExposeErrors      bool     `json:"expose_errors"`
	TrustProxyHeaders bool     `json:"trust_proxy_headers"`
}

type GRPC struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Auth struct {
	Secret        string `json:"secret"`
	Algorithm     string `json:"algorithm"`
	ExpireMinutes int32  `json:"expire_minutes"`
	DemoUsername  string `json:"demo_username"`
	DemoPassword  string `json:"demo_password"`
}

type RateLimit struct {
	LoginPerMinute   int32 `json:"login_per_minute"`
	AnalyzePerMinute int32 `json:"analyze_per_minute"`
	DefaultPerHour   int32 `json:"default_per_hour"`
}

type LLM struct {
	BaseUrl         string `json:"base_url"`
	ApiKey          string `json:"api_key"`
	Model           string `json:"model"`
	ReasoningEffort string `json:"reasoning_effort"`
	Timeout         string `json:"timeout"`
	Rpm             int32  `json:"rpm"`
	Qps             int32  `json:"qps"`
}

type Search struct {
	Provider      string   `json:"provider"`
	Region        string   `json:"region"`
	Endpoint      string   `json:"endpoint"`
	Timeout       int32    `json:"timeout"`
	MaxHits       int32    `json:"max_hits"`
	RetryAttempts int32    `json:"retry_attempts"`
	RetryDelay    string   `json:"retry_delay"`
	EnrichContent bool     `json:"enrich_content"`
	Tavily        *Tavily  `json:"tavily"`
	Searxng       *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
}

func (x *Tavily) GetApiKey() string {
	if x != nil {
		return x.ApiKey
	}
	return ""
}

func (x *SearXNG) GetBaseUrl() string {
	if x != nil {
		return x.BaseUrl
	}
	return ""
}

type Report struct {
	OutputDir string `json:"output_dir"`
}

type Log struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMb  int32  `json:"max_size_mb"`
	MaxBackups int32  `json:"max_backups"`
	MaxAgeDays int32  `json:"max_age_days"`
}

const (
	DefaultHTTPTimeout = 120 * time.Second
	DefaultGRPCTimeout = 5 * time.Second
)

// Default 返回完整的默认配置
func Default() *Bootstrap {
	return &Bootstrap{
		App: &App{Name: report.DefaultGenerator, Version: "1.0.0"},
		Server: &Server{
			Http: &HTTP{Addr: "0.0.0.0:8000", Timeout: "120s", CorsOrigins: []string{"*"}},
			Grpc: &GRPC{Timeout: "5s"},
		},
		Auth: &Auth{
			Algorithm:     "HS256",
			ExpireMinutes: 30,
			DemoUsername:  "demo_user",
			DemoPassword:  "demo_password",
		},
		RateLimit: &RateLimit{LoginPerMinute: 5, AnalyzePerMinute: 10, DefaultPerHour: 100},
		Llm: &LLM{
			BaseUrl:         "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:           "gemini-2.5-flash",
			ReasoningEffort: "none",
			Timeout:         "90s",
		},
		Search: &Search{
			Provider:      "duckduckgo",
			Region:        collector.DefaultRegion,
			Timeout:       20,
			MaxHits:       collector.DefaultHitsPerQuery,
			RetryAttempts: collector.DefaultRetryAttempts,
			RetryDelay:    collector.DefaultRetryDelay.String(),
			Tavily:        &Tavily{},
			Searxng:       &SearXNG{},
		},
		Report: &Report{OutputDir: report.DefaultOutputDir},
		Log:    &Log{Level: "info", MaxSizeMb: 100, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// Duration 解析时长字符串，失败或为空时返回 fallback
func Duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
