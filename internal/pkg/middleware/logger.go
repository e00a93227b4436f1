package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/log"
)

// Logger 用 zap 记录访问日志，skipPaths 中的路径不记录.
func Logger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, ok := skip[path]; ok {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		kvs := []interface{}{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"clientIP", c.ClientIP(),
			"latency", time.Since(start),
			"size", c.Writer.Size(),
		}
		lg := log.L(c)
		switch status := c.Writer.Status(); {
		case status >= 500:
			lg.Warn("request failed", append(kvs, "errors", c.Errors.ByType(gin.ErrorTypePrivate).String())...)
		case status >= 400:
			lg.Info("request rejected", kvs...)
		default:
			lg.Info("request served", kvs...)
		}
	}
}
