package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/conf"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/collector"
	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/sector"
)

// MaxSources 每次分析使用的最多搜索结果数
const MaxSources = 10

// Collector 数据收集
type Collector interface {
	Collect(ctx context.Context, sector string, maxResults int) collector.Collection
}

// Analyzer AI 分析
type Analyzer interface {
	Analyze(ctx context.Context, sector, marketData string) (string, error)
}

// ReportGenerator 报告生成与保存
type ReportGenerator interface {
	AddMetadata(body, sector string, sourceCount int) string
	SaveAt(sector, content string, t time.Time) (string, error)
}

// MarketReport 一次分析的结果，构造后不再修改
type MarketReport struct {
	Sector          string
	Body            string
	SourcesAnalyzed int
	SavedPath       string
	Timestamp       time.Time
}

// AnalysisUseCase 行业分析流水线：校验 -> 收集 -> 分析 -> 组装 -> 保存
type AnalysisUseCase struct {
	collector    Collector
	analyzer     Analyzer
	reports      ReportGenerator
	usage        UsageCounter
	exposeErrors bool
	log          *log.Helper
	now          func() time.Time
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(c Collector, a Analyzer, g ReportGenerator, usage UsageCounter, srv *conf.Server, logger log.Logger) *AnalysisUseCase {
	expose := false
	if srv != nil && srv.Http != nil {
		expose = srv.Http.ExposeErrors
	}
	return &AnalysisUseCase{
		collector:    c,
		analyzer:     a,
		reports:      g,
		usage:        usage,
		exposeErrors: expose,
		log:          log.NewHelper(logger),
		now:          time.Now,
	}
}

// ValidateSector 校验行业名称，失败时返回 400 错误
func ValidateSector(raw string) (string, error) {
	cleaned, err := sector.Validate(raw)
	if err != nil {
		return "", errors.BadRequest("INVALID_SECTOR", err.Error()).WithCause(err)
	}
	return cleaned, nil
}

// Analyze 执行完整的分析流水线
func (uc *AnalysisUseCase) Analyze(ctx context.Context, rawSector string, id Identity, persist bool) (*MarketReport, error) {
	name, err := ValidateSector(rawSector)
	if err != nil {
		return nil, err
	}

	count := uc.usage.Increment(ctx, id.Username)
	l := uc.log.WithContext(ctx)
	l.Infof("Analyzing sector '%s' for user '%s' (request #%d)", name, id, count)

	col := uc.collector.Collect(ctx, name, MaxSources)
	switch col.Outcome {
	case collector.OutcomeUnreachable:
		return nil, errors.ServiceUnavailable("SEARCH_UNAVAILABLE",
			fmt.Sprintf("Market data provider unreachable for sector: %s", name))
	case collector.OutcomeEmpty:
		return nil, errors.NotFound("NO_MARKET_DATA", fmt.Sprintf("No market data found for sector: %s", name))
	}
	if len(col.Results) == 0 {
		return nil, errors.NotFound("NO_MARKET_DATA", fmt.Sprintf("No market data found for sector: %s", name))
	}

	body, err := uc.analyzer.Analyze(ctx, name, collector.Format(col.Results))
	if err != nil {
		l.Errorf("Error analyzing sector %s: %v", name, err)
		return nil, uc.internalError("ANALYSIS_FAILED", "Analysis failed", err)
	}

	sources := len(col.Results)
	final := uc.reports.AddMetadata(body, name, sources)

	var savedPath string
	if persist {
		collectedAt := col.CollectedAt
		if collectedAt.IsZero() {
			collectedAt = uc.now()
		}
		savedPath, err = uc.reports.SaveAt(name, final, collectedAt)
		if err != nil {
			l.Errorf("Error saving report for %s: %v", name, err)
			return nil, uc.internalError("REPORT_SAVE_FAILED", "Analysis failed", err)
		}
	}

	l.Infof("Analysis completed for sector: %s", name)
	return &MarketReport{
		Sector:          name,
		Body:            final,
		SourcesAnalyzed: sources,
		SavedPath:       savedPath,
		Timestamp:       uc.now(),
	}, nil
}

// internalError 默认只返回概括信息，细节写日志
func (uc *AnalysisUseCase) internalError(reason, message string, cause error) error {
	if uc.exposeErrors {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return errors.InternalServer(reason, message).WithCause(cause)
}
