package factory

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/duckduckgo"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/googlenews"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/search"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/searxng"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/tavily"
)

const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderGoogleNews = "googlenews"
	ProviderTavily     = "tavily"
	ProviderSearXNG    = "searxng"
)

// Options 搜索提供方配置
type Options struct {
	Provider       string
	Timeout        int // 秒
	TavilyAPIKey   string
	SearXNGBaseURL string
	// Endpoint 覆盖 duckduckgo / googlenews / tavily 的默认地址
	Endpoint string
}

// NewSearcher 根据配置创建搜索实例
func NewSearcher(opts Options) (search.Searcher, error) {
	provider := opts.Provider
	if provider == "" {
		provider = ProviderDuckDuckGo
	}

	switch provider {
	case ProviderDuckDuckGo:
		return duckduckgo.NewClient(opts.Endpoint, opts.Timeout), nil

	case ProviderGoogleNews:
		return googlenews.NewClient(opts.Endpoint, opts.Timeout), nil

	case ProviderTavily:
		if opts.TavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		var copts []tavily.Option
		if opts.Timeout > 0 {
			copts = append(copts, tavily.WithHTTPClient(&http.Client{Timeout: time.Duration(opts.Timeout) * time.Second}))
		}
		if opts.Endpoint != "" {
			copts = append(copts, tavily.WithEndpoint(opts.Endpoint))
		}
		return tavily.NewClient(opts.TavilyAPIKey, copts...), nil

	case ProviderSearXNG:
		if opts.SearXNGBaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(opts.SearXNGBaseURL, opts.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
