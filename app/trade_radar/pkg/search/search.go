package search

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	Topic             string // "news" or "general"
	Region            string // 例如 "in-en"，由各实现映射为自己的地区参数
	TimeRange         string // "day" / "week" / "month" / "year"，空表示不限
	MaxResults        int
	IncludeRawContent bool
	StartDate         string // Format: YYYY-MM-DD
	EndDate           string // Format: YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// Language 将 "in-en" 形式的地区转换为 "en-IN" 形式的语言标签
func Language(region string) string {
	country, lang, ok := strings.Cut(region, "-")
	if !ok || country == "" || lang == "" {
		return ""
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(country)
}

// Country 返回地区中的国家部分（大写），如 "in-en" -> "IN"
func Country(region string) string {
	country, _, _ := strings.Cut(region, "-")
	return strings.ToUpper(country)
}

// CountryName 返回地区对应的英文国家名（小写），如 "in-en" -> "india"
func CountryName(region string) string {
	code := Country(region)
	if code == "" {
		return ""
	}
	r, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}
	return strings.ToLower(display.English.Regions().Name(r))
}

// StatusError 搜索服务返回了非 200 状态码
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
