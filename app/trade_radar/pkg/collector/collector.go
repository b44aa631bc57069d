// Package collector 围绕搜索提供方收集行业相关的新闻片段。
package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/logger"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/search"
)

const (
	DefaultMaxResults    = 10
	DefaultHitsPerQuery  = 5
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 2 * time.Second
	DefaultRegion        = "in-en"

	// 片段短于该长度时尝试抓取正文
	enrichThreshold = 200
	enrichMaxLength = 1000
	fetchTimeout    = 15 * time.Second
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// SearchResult 单条收集结果，URL 在一次收集中唯一
type SearchResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
	Query string `json:"query"`
}

// Outcome 一次收集的结局
type Outcome int

const (
	// OutcomeFound 至少收集到一条结果
	OutcomeFound Outcome = iota
	// OutcomeEmpty 搜索有响应但没有可用结果
	OutcomeEmpty
	// OutcomeUnreachable 所有查询的所有尝试均失败
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeEmpty:
		return "empty"
	case OutcomeUnreachable:
		return "unreachable"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Collection 收集结果
type Collection struct {
	Results     []SearchResult
	Outcome     Outcome
	CollectedAt time.Time
}

// Fetcher 抓取网页正文
type Fetcher func(ctx context.Context, url string) (string, error)

// Options 收集器配置
type Options struct {
	Region        string
	HitsPerQuery  int
	RetryAttempts int
	RetryDelay    time.Duration
	EnrichContent bool
	Fetcher       Fetcher
}

// Collector 数据收集器
type Collector struct {
	searcher search.Searcher
	opts     Options
	now      func() time.Time
}

// New 创建收集器，未设置的选项使用默认值
func New(searcher search.Searcher, opts Options) *Collector {
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}
	if opts.HitsPerQuery <= 0 {
		opts.HitsPerQuery = DefaultHitsPerQuery
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = DefaultRetryAttempts
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetchReadable
	}
	return &Collector{searcher: searcher, opts: opts, now: time.Now}
}

// Queries 返回某个行业使用的搜索语句
func Queries(sector string) []string {
	return []string{fmt.Sprintf("%s market news India", sector)}
}

// Search 返回收集到的结果列表，失败时为空
func (c *Collector) Search(ctx context.Context, sector string, maxResults int) []SearchResult {
	return c.Collect(ctx, sector, maxResults).Results
}

// Collect 执行收集。永不返回错误：搜索失败会体现在 Outcome 中
func (c *Collector) Collect(ctx context.Context, sector string, maxResults int) (col Collection) {
	col.CollectedAt = c.now()
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("收集行业数据异常 [%s]: %v", sector, r)
			col.Results = nil
			col.Outcome = OutcomeUnreachable
		}
	}()

	seen := make(map[string]struct{})
	answered := false

	for _, query := range Queries(sector) {
		resp, ok := c.searchWithRetry(ctx, query)
		if !ok {
			continue
		}
		answered = true

		for _, hit := range resp.Results {
			if hit.URL == "" {
				continue
			}
			if _, dup := seen[hit.URL]; dup {
				continue
			}
			seen[hit.URL] = struct{}{}
			col.Results = append(col.Results, SearchResult{
				Title: hit.Title,
				Body:  hit.Content,
				URL:   hit.URL,
				Query: query,
			})
			if len(col.Results) >= maxResults {
				break
			}
		}
		if len(col.Results) >= maxResults {
			break
		}
	}

	if c.opts.EnrichContent {
		c.enrich(ctx, col.Results)
	}

	switch {
	case len(col.Results) > 0:
		col.Outcome = OutcomeFound
	case answered:
		col.Outcome = OutcomeEmpty
	default:
		col.Outcome = OutcomeUnreachable
	}

	logger.Log.Infof("行业 [%s] 收集到 %d 条结果 (%s)", sector, len(col.Results), col.Outcome)
	return col
}

// searchWithRetry 固定间隔重试，成功即返回
func (c *Collector) searchWithRetry(ctx context.Context, query string) (*search.Response, bool) {
	req := &search.Request{
		Query:      query,
		Topic:      "news",
		Region:     c.opts.Region,
		TimeRange:  "month",
		MaxResults: c.opts.HitsPerQuery,
	}

	for attempt := 1; attempt <= c.opts.RetryAttempts; attempt++ {
		resp, err := c.searcher.Search(ctx, req)
		if err == nil {
			if resp == nil {
				resp = &search.Response{}
			}
			logger.Log.Debugf("搜索 [%s] 返回 %d 条原始结果", query, len(resp.Results))
			return resp, true
		}
		logger.Log.Warnf("搜索失败 [%s] (%d/%d): %v", query, attempt, c.opts.RetryAttempts, err)

		if attempt == c.opts.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(c.opts.RetryDelay):
		}
	}
	return nil, false
}

// enrich 用网页正文替换过短的片段
func (c *Collector) enrich(ctx context.Context, results []SearchResult) {
	for i := range results {
		if len(results[i].Body) >= enrichThreshold {
			continue
		}
		text, err := c.opts.Fetcher(ctx, results[i].URL)
		if err != nil {
			logger.Log.Warnf("原文抓取失败，使用搜索摘要 [%s]: %v", results[i].Title, err)
			continue
		}
		text = truncate(strings.Join(strings.Fields(text), " "), enrichMaxLength)
		if len(text) > len(results[i].Body) {
			results[i].Body = text
		}
	}
}

// truncate 截断到不超过 max 字节，不拆分多字节字符
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func fetchReadable(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	article, err := readability.FromReader(res.Body, u)
	if err != nil {
		return "", fmt.Errorf("extract article failed: %w", err)
	}
	return article.TextContent, nil
}

// Format 将结果渲染为提交给模型的文本
func Format(results []SearchResult) string {
	if len(results) == 0 {
		return "No data collected."
	}

	var sb strings.Builder
	sb.WriteString("Market Research Data:\n\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&sb, "   %s\n", r.Body)
		fmt.Fprintf(&sb, "   Source: %s\n\n", r.URL)
	}
	return sb.String()
}
