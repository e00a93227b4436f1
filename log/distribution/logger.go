// Package distribution 提供同时兼容标准库 log 与 logrus 风格方法的日志器，
// 实际输出走 zap.
package distribution

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	logruslogger "github.com/ifkeeper/keeper-commons-utils/log/logrus"
)

// Logger 满足 kafka.Logger、gorm 等组件要求的 Printf 接口.
type Logger struct {
	logger       *zap.Logger
	logrusLogger *logrus.Logger
}

// NewLogger 基于 zap 日志器构造 Logger.
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{
		logger:       logger,
		logrusLogger: logruslogger.NewLogger(logger),
	}
}

func (l *Logger) Print(args ...interface{})                 { l.logger.Info(fmt.Sprint(args...)) }
func (l *Logger) Println(args ...interface{})               { l.logger.Info(fmt.Sprint(args...)) }
func (l *Logger) Printf(format string, args ...interface{}) { l.logger.Info(fmt.Sprintf(format, args...)) }

func (l *Logger) Debug(args ...interface{})                 { l.logger.Debug(fmt.Sprint(args...)) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logger.Debug(fmt.Sprintf(format, args...)) }

func (l *Logger) Info(args ...interface{})                 { l.logger.Info(fmt.Sprint(args...)) }
func (l *Logger) Infof(format string, args ...interface{}) { l.logger.Info(fmt.Sprintf(format, args...)) }

func (l *Logger) Warn(args ...interface{})                 { l.logger.Warn(fmt.Sprint(args...)) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.logger.Warn(fmt.Sprintf(format, args...)) }

func (l *Logger) Error(args ...interface{})                 { l.logger.Error(fmt.Sprint(args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logger.Error(fmt.Sprintf(format, args...)) }

// WithError 返回带 error 字段的 logrus.Entry.
func (l *Logger) WithError(err error) *logrus.Entry {
	return logrus.NewEntry(l.logrusLogger).WithError(err)
}

// WithField 返回带单个字段的 logrus.Entry.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return logrus.NewEntry(l.logrusLogger).WithField(key, value)
}
