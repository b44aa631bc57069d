package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel 记录输入并返回预设结果
type fakeChatModel struct {
	reply *schema.Message
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestAnalyze(t *testing.T) {
	cm := &fakeChatModel{reply: schema.AssistantMessage("# Report", nil)}
	a := NewWithModel(cm, nil)
	a.now = func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) }

	out, err := a.Analyze(context.Background(), "renewable energy", "Market Research Data:\n\n1. x")
	require.NoError(t, err)
	assert.Equal(t, "# Report", out)

	require.Len(t, cm.input, 1)
	prompt := cm.input[0].Content
	assert.Equal(t, schema.User, cm.input[0].Role)
	assert.Contains(t, prompt, "market data for the renewable energy sector in India")
	assert.Contains(t, prompt, "# Renewable Energy Sector - Trade Opportunities Analysis")
	assert.Contains(t, prompt, "1. x")
	assert.Contains(t, prompt, "*Report generated on March 07, 2025*")
	for _, heading := range []string{
		"## Executive Summary", "## Market Overview", "## Trade Opportunities",
		"### Export Opportunities", "### Import Opportunities", "### Domestic Trade Opportunities",
		"## Market Drivers", "## Challenges and Risks", "## Recommendations", "## Key Contacts and Resources",
	} {
		assert.Contains(t, prompt, heading)
	}
}

func TestAnalyzeNilReply(t *testing.T) {
	out, err := NewWithModel(&fakeChatModel{}, nil).Analyze(context.Background(), "textile", "data")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestAnalyzeWrapsProviderError(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("quota exhausted")}
	_, err := NewWithModel(cm, nil).Analyze(context.Background(), "textile", "data")
	require.ErrorIs(t, err, ErrAnalysisFailed)
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestAnalyzeHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	limiter := NewLimiter(1, 1)
	limiter.Allow() // 耗尽令牌
	_, err := NewWithModel(&fakeChatModel{}, limiter).Analyze(ctx, "textile", "data")
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestNewLimiter(t *testing.T) {
	assert.True(t, NewLimiter(0, 0).Limit() > 1e9)
	l := NewLimiter(120, 0)
	assert.InDelta(t, 2.0, float64(l.Limit()), 1e-9)
	assert.Equal(t, 1, l.Burst())
}

const completionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1741305600,
  "model": "gemini-2.5-flash",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "# Textile Sector - Trade Opportunities Analysis"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 10, "completion_tokens": 8, "total_tokens": 18}
}`

func TestNewSendsReasoningEffort(t *testing.T) {
	var (
		mu   sync.Mutex
		body []byte
		path string
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		body, _ = io.ReadAll(r.Body)
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionReply))
	}))
	defer srv.Close()

	a, err := New(context.Background(), Options{
		BaseURL:         srv.URL,
		APIKey:          "test-key",
		Model:           "gemini-2.5-flash",
		ReasoningEffort: "none",
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)

	out, err := a.Analyze(context.Background(), "textile", "Market Research Data:\n\n1. x")
	require.NoError(t, err)
	assert.Equal(t, "# Textile Sector - Trade Opportunities Analysis", out)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasSuffix(path, "/chat/completions"))
	assert.Equal(t, "Bearer test-key", auth)
	assert.Contains(t, string(body), `"reasoning_effort":"none"`)

	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, "gemini-2.5-flash", req["model"])
	assert.Equal(t, "none", req["reasoning_effort"])
}
