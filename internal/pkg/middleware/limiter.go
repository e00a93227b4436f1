package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ifkeeper/keeper-commons-utils/component-base/core"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/iputil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 按客户端 IP 分别限流.
type IPRateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	now      func() time.Time
}

// NewIPRateLimiter 每个 IP 每秒 r 次，突发 burst 次.
func NewIPRateLimiter(r float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		limit:    rate.Limit(r),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow 报告 ip 此刻是否可以通过.
func (l *IPRateLimiter) Allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Cleanup 删除空闲超过 limiterIdleTTL 的 IP.
func (l *IPRateLimiter) Cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Len 返回正在跟踪的 IP 数.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// RateLimit 超限的请求以 ErrTooManyRequests 拒绝，每处理 1000 个请求清理一次空闲 IP.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	var calls int
	var mu sync.Mutex

	return func(c *gin.Context) {
		if !l.Allow(iputil.RemoteIP(c.Request)) {
			core.WriteResponse(c, errors.WithCode(code.ErrTooManyRequests, "rate limit exceeded"), nil)
			c.Abort()
			return
		}

		mu.Lock()
		calls++
		sweep := calls%1000 == 0
		mu.Unlock()
		if sweep {
			l.Cleanup()
		}

		c.Next()
	}
}
