package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	HeaderFrameOptions            = "X-Frame-Options"
	HeaderContentTypeOptions      = "X-Content-Type-Options"
	HeaderXSSProtection           = "X-XSS-Protection"
	HeaderStrictTransportSecurity = "Strict-Transport-Security"
	HeaderContentSecurityPolicy   = "Content-Security-Policy"
)

// NoCache 禁止客户端缓存响应.
func NoCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate, value")
	c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	c.Next()
}

// Secure 添加安全相关的响应头.
func Secure(c *gin.Context) {
	c.Header(HeaderFrameOptions, "DENY")
	c.Header(HeaderContentTypeOptions, "nosniff")
	c.Header(HeaderXSSProtection, "1; mode=block")
	c.Header(HeaderContentSecurityPolicy, "default-src 'none'")
	if c.Request.TLS != nil {
		c.Header(HeaderStrictTransportSecurity, "max-age=31536000")
	}
	c.Next()
}
