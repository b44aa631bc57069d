// Package analyzer 调用大模型把收集到的市场数据写成 Markdown 报告。
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/logger"
)

// ErrAnalysisFailed 模型调用失败。流水线内不重试
var ErrAnalysisFailed = errors.New("AI analysis failed")

// Options 模型配置
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	// ReasoningEffort 为 "none" 时关闭 Gemini 的思考模式
	ReasoningEffort string
	Timeout         time.Duration
	RPM             int
	QPS             int
}

// Analyzer AI 分析器
type Analyzer struct {
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
	now       func() time.Time
}

// New 基于 OpenAI 兼容接口创建分析器
func New(ctx context.Context, opts Options) (*Analyzer, error) {
	cfg := &openai.ChatModelConfig{
		BaseURL: opts.BaseURL,
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		Timeout: opts.Timeout,
	}
	if opts.ReasoningEffort != "" {
		cfg.ReasoningEffort = openai.ReasoningEffortLevel(opts.ReasoningEffort)
	}

	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewWithModel(chatModel, NewLimiter(opts.RPM, opts.QPS)), nil
}

// NewWithModel 使用已有的模型实例创建分析器
func NewWithModel(cm model.BaseChatModel, limiter *rate.Limiter) *Analyzer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Analyzer{chatModel: cm, limiter: limiter, now: time.Now}
}

// NewLimiter Limit 设置为 RPM/60，Burst 设置为 QPS；RPM 为 0 时不限流
func NewLimiter(rpm, qps int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if qps <= 0 {
		qps = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)
}

// Analyze 生成行业分析报告，模型无文本返回时结果为空字符串
func (a *Analyzer) Analyze(ctx context.Context, sector, marketData string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: limiter wait error: %v", ErrAnalysisFailed, err)
	}

	messages := []*schema.Message{
		schema.UserMessage(BuildPrompt(sector, marketData, a.now())),
	}

	resp, err := a.chatModel.Generate(ctx, messages)
	if err != nil {
		logger.Log.Errorf("行业分析失败 [%s]: %v", sector, err)
		return "", fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	logger.Log.Infof("行业分析完成: %s", sector)
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
