// Package log wraps go.uber.org/zap behind the narrow bgp.Logger surface
// so the core protocol packages never import zap directly.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured, key/value logger. It is satisfied by *Zap and by
// bgp.Nil.
type Logger interface {
	Debugw(msg string, kv ...interface{})
	Infow(msg string, kv ...interface{})
	Warnw(msg string, kv ...interface{})
	Errorw(msg string, kv ...interface{})
}

// Zap adapts a *zap.SugaredLogger to Logger.
type Zap struct {
	sugar *zap.SugaredLogger
}

// New builds a Zap logger at the given level (any level name zap accepts,
// e.g. "debug", "info", "warn", "error"; an unrecognised name defaults to
// "info").
func New(level string) (*Zap, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Zap{sugar: logger.Sugar()}, nil
}

func (z *Zap) Debugw(msg string, kv ...interface{}) { z.sugar.Debugw(msg, kv...) }
func (z *Zap) Infow(msg string, kv ...interface{})  { z.sugar.Infow(msg, kv...) }
func (z *Zap) Warnw(msg string, kv ...interface{})  { z.sugar.Warnw(msg, kv...) }
func (z *Zap) Errorw(msg string, kv ...interface{}) { z.sugar.Errorw(msg, kv...) }

// Sync flushes any buffered log entries; call before process exit.
func (z *Zap) Sync() error { return z.sugar.Sync() }
