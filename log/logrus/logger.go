// Package logrus 提供一个输出到 zap 的 *logrus.Logger，给只接受 logrus 的依赖使用.
package logrus

import (
	"io"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 返回一个丢弃自身输出、通过 hook 写入 zapLogger 的 logrus 日志器.
func NewLogger(zapLogger *zap.Logger) *logrus.Logger {
	l := logrus.New()
	Redirect(l, zapLogger)
	return l
}

// Redirect 让已有的 logrus 日志器只输出到 zapLogger，原有 hook 会被替换.
func Redirect(l *logrus.Logger, zapLogger *zap.Logger) {
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	l.ReplaceHooks(make(logrus.LevelHooks))
	l.AddHook(&hook{logger: zapLogger})
}

type hook struct {
	logger *zap.Logger
}

func (h *hook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *hook) Fire(entry *logrus.Entry) error {
	fields := make([]zap.Field, 0, len(entry.Data))
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				fields = append(fields, zap.Error(err))
				continue
			}
		}
		fields = append(fields, zap.Any(k, v))
	}

	if ce := h.logger.Check(zapLevel(entry.Level), entry.Message); ce != nil {
		ce.Time = entry.Time
		ce.Write(fields...)
	}
	return nil
}

func zapLevel(level logrus.Level) zapcore.Level {
	switch level {
	case logrus.PanicLevel:
		return zapcore.PanicLevel
	case logrus.FatalLevel:
		return zapcore.FatalLevel
	case logrus.ErrorLevel:
		return zapcore.ErrorLevel
	case logrus.WarnLevel:
		return zapcore.WarnLevel
	case logrus.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
