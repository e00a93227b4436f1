// Package db 打开带连接池和查询超时的 gorm 连接.
package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const queryTimeoutCancelKey = "query_timeout_cancel"

// Options 定义数据库连接参数.
type Options struct {
	Host                  string
	Username              string
	Password              string
	Database              string
	MaxIdleConnections    int
	MaxOpenConnections    int
	MaxConnectionLifeTime time.Duration
	// LogLevel 0 silent, 1 error, 2 warn, 3 info.
	LogLevel           int
	SlowQueryThreshold time.Duration
	Logger             logger.Interface
	TablePrefix        string
	// Timeout 是单条 SQL 的默认超时，调用方的 context 优先.
	Timeout time.Duration
}

// DSN 返回 MySQL 连接串.
func (o *Options) DSN() string {
	return fmt.Sprintf(`%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=%t&loc=%s&timeout=10s&readTimeout=30s&writeTimeout=30s`,
		o.Username,
		o.Password,
		o.Host,
		o.Database,
		true,
		"Local")
}

// New 打开 MySQL 连接.
func New(opts *Options) (*gorm.DB, error) {
	return Open(mysql.Open(opts.DSN()), opts)
}

// Open 用指定方言打开连接并配置连接池.
func Open(dialector gorm.Dialector, opts *Options) (*gorm.DB, error) {
	setDefaultOptions(opts)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   opts.Logger,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   opts.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "failed to open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "database ping failed")
	}
	if err := addQueryTimeoutCallbacks(db, opts.Timeout); err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "register timeout callbacks")
	}

	log.Infof("Database connection pool initialized: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%v",
		opts.MaxOpenConnections, opts.MaxIdleConnections, opts.MaxConnectionLifeTime)

	return db, nil
}

// Close 关闭底层连接池.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func addQueryTimeoutCallbacks(db *gorm.DB, timeout time.Duration) error {
	before := func(db *gorm.DB) { setQueryTimeout(db, timeout) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("query_timeout:create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("query_timeout:create_cleanup", cleanupTimeout); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("query_timeout:query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("query_timeout:query_cleanup", cleanupTimeout); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("query_timeout:update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("query_timeout:update_cleanup", cleanupTimeout); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("query_timeout:delete", before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("query_timeout:delete_cleanup", cleanupTimeout)
}

func setQueryTimeout(db *gorm.DB, timeout time.Duration) {
	if db.Statement.Context == nil || db.Statement.Context.Done() == nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		db.Statement.Context = ctx
		db.InstanceSet(queryTimeoutCancelKey, cancel)
	}
}

func cleanupTimeout(db *gorm.DB) {
	if cancel, ok := db.InstanceGet(queryTimeoutCancelKey); ok {
		if c, ok := cancel.(context.CancelFunc); ok {
			c()
		}
		db.InstanceSet(queryTimeoutCancelKey, nil)
	}
}

func setDefaultOptions(opts *Options) {
	if opts.MaxOpenConnections <= 0 {
		opts.MaxOpenConnections = 100
	}
	if opts.MaxIdleConnections <= 0 {
		opts.MaxIdleConnections = 20
	}
	if opts.MaxConnectionLifeTime <= 0 {
		opts.MaxConnectionLifeTime = time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = newGormLogger(opts)
	}
}
