// Package googlenews 通过 Google News RSS 检索新闻。
package googlenews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/search"
)

const defaultEndpoint = "https://news.google.com/rss/search"

// Client Google News RSS 客户端
type Client struct {
	endpoint string
	parser   *gofeed.Parser
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
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: t}
	return &Client{endpoint: endpoint, parser: fp}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 拉取并解析 RSS 结果
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", req.Query)
	if lang, country := search.Language(req.Region), search.Country(req.Region); lang != "" {
		q.Set("hl", lang)
		q.Set("gl", country)
		q.Set("ceid", country+":"+strings.SplitN(lang, "-", 2)[0])
	}
	u.RawQuery = q.Encode()

	feed, err := c.parser.ParseURLWithContext(u.String(), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed failed: %w", err)
	}

	var results []search.Result
	for _, item := range feed.Items {
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			break
		}
		if item.Link == "" {
			continue
		}
		results = append(results, search.Result{
			Title:         strings.TrimSpace(item.Title),
			URL:           item.Link,
			Content:       plainText(item.Description),
			PublishedDate: item.Published,
		})
	}
	return &search.Response{Results: results}, nil
}

// plainText 去除 RSS 描述中的 HTML 标签
func plainText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
