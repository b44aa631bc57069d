package logger

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

// kratosLogger 将 kratos 日志转发到全局 logrus 实例
type kratosLogger struct{}

// NewKratosLogger 创建写入 Log 的 kratos log.Logger，调用位置由 kratos 记录在 caller 字段
func NewKratosLogger() log.Logger {
	return log.With(kratosLogger{}, CallerKey, log.DefaultCaller)
}

// Log 实现 log.Logger 接口
func (kratosLogger) Log(level log.Level, keyvals ...interface{}) error {
	if len(keyvals) == 0 {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}

	var msg string
	fields := logrus.Fields{}
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields[key] = keyvals[i+1]
	}

	entry := Log.WithFields(fields)
	switch level {
	case log.LevelDebug:
		entry.Debug(msg)
	case log.LevelWarn:
		entry.Warn(msg)
	case log.LevelError, log.LevelFatal:
		// Fatal 由 kratos helper 自行退出
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
	return nil
}
