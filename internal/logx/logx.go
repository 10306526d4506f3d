package logx

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex
	lg *zap.SugaredLogger
)

// Init builds the process logger. Unknown levels fall back to info.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	Set(z.Sugar())
}

// Set replaces the process logger. Tests use it with zaptest/observer.
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	lg = l
	mu.Unlock()
}

func L() *zap.SugaredLogger {
	mu.RLock()
	l := lg
	mu.RUnlock()
	if l == nil {
		Init("info")
		return L()
	}
	return l
}

func Sync() { _ = L().Sync() }

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
