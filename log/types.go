package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field 与 Level 是 zap 类型的别名，业务代码只依赖本包.
type (
	Field = zapcore.Field
	Level = zapcore.Level
)

var (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	PanicLevel = zapcore.PanicLevel
	FatalLevel = zapcore.FatalLevel
)

var (
	Any      = zap.Any
	Bool     = zap.Bool
	Duration = zap.Duration
	Err      = zap.Error
	Float64  = zap.Float64
	Int      = zap.Int
	Int32    = zap.Int32
	Int64    = zap.Int64
	Uint64   = zap.Uint64
	String   = zap.String
	Strings  = zap.Strings
	Stringer = zap.Stringer
	Time     = zap.Time
)
