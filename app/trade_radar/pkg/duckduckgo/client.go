// Package duckduckgo 通过 DuckDuckGo HTML 端点实现无需密钥的网页搜索。
package duckduckgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/search"
)

const (
	defaultEndpoint = "https://html.duckduckgo.com/html/"
	defaultRegion   = "wt-wt"
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrChallenge DuckDuckGo 返回了反爬验证页面
var ErrChallenge = errors.New("duckduckgo: bot challenge returned")

// Client DuckDuckGo HTML 搜索客户端
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient 创建客户端，endpoint 为空时使用官方地址，timeout 单位为秒
func NewClient(endpoint string, timeout int) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 20 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: t},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 执行搜索，按页面顺序返回自然结果（跳过广告）
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	region := req.Region
	if region == "" {
		region = defaultRegion
	}

	form := url.Values{}
	form.Set("q", req.Query)
	form.Set("kl", region)
	if df := dateFilter(req.TimeRange); df != "" {
		form.Set("df", df)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &search.StatusError{Provider: "duckduckgo", StatusCode: res.StatusCode, Body: string(body)}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html failed: %w", err)
	}

	if doc.Find(".anomaly-modal__modal, #challenge-form").Length() > 0 {
		return nil, ErrChallenge
	}

	var results []search.Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			return false
		}
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find(".result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := resolveHref(href)
		if target == "" {
			return true
		}

		results = append(results, search.Result{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Content: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return true
	})

	return &search.Response{Results: results}, nil
}

// resolveHref 还原 DuckDuckGo 跳转链接中的真实地址
func resolveHref(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		return u.Query().Get("uddg")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// dateFilter 将时间范围映射为 df 参数
func dateFilter(timeRange string) string {
	switch timeRange {
	case "day", "week", "month", "year":
		return timeRange[:1]
	}
	return ""
}
