package biz

import "context"

// UsageCounter 按用户名统计请求次数，仅用于观测，不做准入控制
type UsageCounter interface {
	// Increment 计数加一并返回新值
	Increment(ctx context.Context, username string) int64
	// Count 返回当前计数
	Count(ctx context.Context, username string) int64
}
