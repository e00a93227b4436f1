package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ifkeeper/keeper-commons-utils/log"
)

// XRequestIDKey 是请求 ID 的头部名.
const XRequestIDKey = "X-Request-ID"

// RequestID 沿用客户端传入的 X-Request-ID，没有时生成 UUIDv4，
// 同时写入响应头和 gin 上下文，log.L(c) 会自动带上它.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(XRequestIDKey)
		if rid == "" {
			rid = uuid.NewString()
			c.Request.Header.Set(XRequestIDKey, rid)
		}
		c.Set(XRequestIDKey, rid)
		c.Set(log.KeyRequestID, rid)
		c.Writer.Header().Set(XRequestIDKey, rid)
		c.Next()
	}
}

// GetRequestIDFromContext returns 'RequestID' from the given context if present.
func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(XRequestIDKey)
}
