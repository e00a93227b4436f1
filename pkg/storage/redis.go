// Package storage 创建 go-redis 客户端并跟踪 redis 的可用状态.
package storage

import (
	"context"
	"crypto/tls"
	"strings"
	"sync/atomic"
	"time"

	redis "github.com/go-redis/redis/v8"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// ErrRedisIsDown is returned when we can't communicate with redis.
var ErrRedisIsDown = errors.WithCode(code.ErrRedisFailed, "storage: Redis is either down or not configured")

// Config 是 redis 连接参数.
type Config struct {
	Addrs                 []string
	MasterName            string
	Username              string
	Password              string
	Database              int
	MaxActive             int
	Timeout               time.Duration
	EnableCluster         bool
	UseSSL                bool
	SSLInsecureSkipVerify bool
}

// RedisOpts wraps redis.UniversalOptions.
type RedisOpts redis.UniversalOptions

// NewClient 按配置创建单机、集群或哨兵客户端，不会主动建立连接.
func NewClient(config *Config) redis.UniversalClient {
	poolSize := 100
	if config.MaxActive > 0 {
		poolSize = config.MaxActive
	}

	timeout := 5 * time.Second
	if config.Timeout > 0 {
		timeout = config.Timeout
	}

	var tlsConfig *tls.Config
	if config.UseSSL {
		//nolint:gosec
		tlsConfig = &tls.Config{InsecureSkipVerify: config.SSLInsecureSkipVerify}
	}

	opts := &RedisOpts{
		Addrs:        config.Addrs,
		MasterName:   config.MasterName,
		Username:     config.Username,
		Password:     config.Password,
		DB:           config.Database,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  240 * timeout,
		PoolSize:     poolSize,
		TLSConfig:    tlsConfig,
	}

	switch {
	case opts.MasterName != "":
		log.Debug("--> [REDIS] Creating sentinel-backed failover client")
		return redis.NewFailoverClient(opts.failover())
	case config.EnableCluster:
		log.Debug("--> [REDIS] Creating cluster client")
		return redis.NewClusterClient(opts.cluster())
	default:
		log.Debug("--> [REDIS] Creating single-node client")
		return redis.NewClient(opts.simple())
	}
}

func (o *RedisOpts) cluster() *redis.ClusterOptions {
	return &redis.ClusterOptions{
		Addrs:        o.Addrs,
		Username:     o.Username,
		Password:     o.Password,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		PoolSize:     o.PoolSize,
		IdleTimeout:  o.IdleTimeout,
		TLSConfig:    o.TLSConfig,
	}
}

func (o *RedisOpts) simple() *redis.Options {
	addr := "127.0.0.1:6379"
	if len(o.Addrs) > 0 {
		addr = o.Addrs[0]
	}
	return &redis.Options{
		Addr:         addr,
		Username:     o.Username,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		PoolSize:     o.PoolSize,
		IdleTimeout:  o.IdleTimeout,
		TLSConfig:    o.TLSConfig,
	}
}

func (o *RedisOpts) failover() *redis.FailoverOptions {
	return &redis.FailoverOptions{
		SentinelAddrs: o.Addrs,
		MasterName:    o.MasterName,
		Username:      o.Username,
		Password:      o.Password,
		DB:            o.DB,
		DialTimeout:   o.DialTimeout,
		ReadTimeout:   o.ReadTimeout,
		WriteTimeout:  o.WriteTimeout,
		PoolSize:      o.PoolSize,
		IdleTimeout:   o.IdleTimeout,
		TLSConfig:     o.TLSConfig,
	}
}

// Ping 最多尝试 attempts 次，每次间隔 interval.
func Ping(ctx context.Context, client redis.UniversalClient, attempts int, interval time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			return nil
		}
		log.Debugf("redis ping attempt %d failed: %v", attempt, lastErr)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return errors.WrapC(ctx.Err(), code.ErrRedisFailed, "redis ping canceled")
			case <-time.After(interval):
			}
		}
	}

	return errors.WrapC(lastErr, code.ErrRedisFailed, "redis health check failed after %d attempts", attempts)
}

// Monitor 周期性探测 redis，并记录最近一次探测结果.
type Monitor struct {
	client   redis.UniversalClient
	interval time.Duration
	up       atomic.Bool
}

// NewMonitor 创建探测器，interval 非正数时为 1 秒.
func NewMonitor(client redis.UniversalClient, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &Monitor{client: client, interval: interval}
}

// Connected returns true if the last probe succeeded.
func (m *Monitor) Connected() bool {
	return m.up.Load()
}

// Up 在 redis 不可用时返回 ErrRedisIsDown.
func (m *Monitor) Up() error {
	if !m.Connected() {
		return ErrRedisIsDown
	}
	return nil
}

// Run 阻塞直到 ctx 结束.
func (m *Monitor) Run(ctx context.Context) {
	tick := time.NewTicker(m.interval)
	defer tick.Stop()

	m.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	err := Ping(ctx, m.client, 1, 0)
	was := m.up.Swap(err == nil)
	switch {
	case err != nil && was:
		log.Warnf("redis is down: %v", err)
	case err == nil && !was:
		log.Info("redis is up")
	}
}

// KeyPrefix 为 key 加上统一前缀.
type KeyPrefix string

// Key 拼接前缀和各段，段之间以冒号分隔.
func (p KeyPrefix) Key(parts ...string) string {
	return string(p) + strings.Join(parts, ":")
}
