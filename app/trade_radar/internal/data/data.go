package data

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/analyzer"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/collector"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/report"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/search/factory"
)

// Data 外部依赖：搜索、模型、报告目录和进程内的使用计数
type Data struct {
	Collector *collector.Collector
	Analyzer  *analyzer.Analyzer
	Reports   *report.Generator
	Usage     *UsageCounter
}

// NewData 根据配置初始化所有外部依赖
func NewData(bc *conf.Bootstrap, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	s := bc.Search
	searcher, err := factory.NewSearcher(factory.Options{
		Provider:       s.Provider,
		Timeout:        int(s.Timeout),
		TavilyAPIKey:   s.Tavily.GetApiKey(),
		SearXNGBaseURL: s.Searxng.GetBaseUrl(),
		Endpoint:       s.Endpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init searcher: %w", err)
	}
	col := collector.New(searcher, collector.Options{
		Region:        s.Region,
		HitsPerQuery:  int(s.MaxHits),
		RetryAttempts: int(s.RetryAttempts),
		RetryDelay:    conf.Duration(s.RetryDelay, collector.DefaultRetryDelay),
		EnrichContent: s.EnrichContent,
	})

	l := bc.Llm
	if l.ApiKey == "" {
		helper.Warn("llm.api_key 未配置，AI 分析将会失败")
	}
	an, err := analyzer.New(context.Background(), analyzer.Options{
		BaseURL:         l.BaseUrl,
		APIKey:          l.ApiKey,
		Model:           l.Model,
		ReasoningEffort: l.ReasoningEffort,
		Timeout:         conf.Duration(l.Timeout, 0),
		RPM:             int(l.Rpm),
		QPS:             int(l.Qps),
	})
	if err != nil {
		return nil, nil, err
	}

	d := &Data{
		Collector: col,
		Analyzer:  an,
		Reports:   report.NewGenerator(bc.Report.OutputDir, bc.App.Name),
		Usage:     NewUsageCounter(),
	}
	helper.Infof("search provider: %s, model: %s, report dir: %s", s.Provider, l.Model, d.Reports.OutputDir())

	cleanup := func() {
		helper.Info("closing the data resources")
	}
	return d, cleanup, nil
}

// NewCollector 供 wire 注入
func NewCollector(d *Data) biz.Collector { return d.Collector }

// NewAnalyzer 供 wire 注入
func NewAnalyzer(d *Data) biz.Analyzer { return d.Analyzer }

// NewReportGenerator 供 wire 注入
func NewReportGenerator(d *Data) biz.ReportGenerator { return d.Reports }

// NewUsageRepo 供 wire 注入
func NewUsageRepo(d *Data) biz.UsageCounter { return d.Usage }
