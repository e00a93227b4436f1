package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/log"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormLoggerAdapter 把 gorm 日志转发到 zap.
type gormLoggerAdapter struct {
	config logger.Config
}

func newGormLogger(opts *Options) logger.Interface {
	cfg := logger.Config{
		IgnoreRecordNotFoundError: true,
		SlowThreshold:             opts.SlowQueryThreshold,
		LogLevel:                  toGormLogLevel(opts.LogLevel),
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = defaultSlowQueryThreshold
	}

	return &gormLoggerAdapter{config: cfg}
}

func (g *gormLoggerAdapter) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.config.LogLevel = level
	return &clone
}

func (g *gormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel < logger.Info {
		return
	}
	log.L(ctx).Info("[gorm] " + fmt.Sprintf(msg, args...))
}

func (g *gormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel < logger.Warn {
		return
	}
	log.L(ctx).Warn("[gorm] " + fmt.Sprintf(msg, args...))
}

func (g *gormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.config.LogLevel < logger.Error {
		return
	}
	log.L(ctx).Errorf("[gorm] %s", fmt.Sprintf(msg, args...))
}

func (g *gormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.config.LogLevel == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	if rows < 0 {
		rows = 0
	}

	switch {
	case err != nil && g.config.LogLevel >= logger.Error &&
		!(g.config.IgnoreRecordNotFoundError && isRecordNotFound(err)):
		log.L(ctx).Errorf("[gorm] error=%v elapsed=%s rows=%d sql=%s", err, elapsed, rows, sql)
	case g.config.SlowThreshold > 0 && elapsed > g.config.SlowThreshold && g.config.LogLevel >= logger.Warn:
		log.L(ctx).Warn("[gorm] slow query", "threshold", g.config.SlowThreshold, "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.config.LogLevel >= logger.Info:
		log.L(ctx).Debug("[gorm] query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}

func toGormLogLevel(level int) logger.LogLevel {
	switch level {
	case 0:
		return logger.Silent
	case 1:
		return logger.Error
	case 2:
		return logger.Warn
	default:
		return logger.Info
	}
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
