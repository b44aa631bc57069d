package data

import (
	"context"
	"sync"

	"github.com/iWorld-y/trade_radar/app/trade_radar/internal/biz"
)

var _ biz.UsageCounter = (*UsageCounter)(nil)

// UsageCounter 进程内的使用计数，重启后清零
type UsageCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[string]int64)}
}

func (u *UsageCounter) Increment(_ context.Context, username string) int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[username]++
	return u.counts[username]
}

func (u *UsageCounter) Count(_ context.Context, username string) int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.counts[username]
}
