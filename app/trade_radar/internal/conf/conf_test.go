package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, int32(10), c.RateLimit.AnalyzePerMinute)
	assert.Equal(t, int32(5), c.RateLimit.LoginPerMinute)
	assert.Equal(t, int32(100), c.RateLimit.DefaultPerHour)
	assert.Equal(t, int32(30), c.Auth.ExpireMinutes)
	assert.Equal(t, "HS256", c.Auth.Algorithm)
	assert.Equal(t, "reports", c.Report.OutputDir)
	assert.Equal(t, "none", c.Llm.ReasoningEffort)
	assert.Equal(t, "2s", c.Search.RetryDelay)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, Duration("3s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("soon", time.Minute))
}
