// Package middleware 提供 feed-apiserver 使用的 gin 中间件.
package middleware

import (
	"github.com/gin-gonic/gin"
	gindump "github.com/tpkeeper/gin-dump"
)

// Dump 在 debug 模式下打印完整的请求和响应.
func Dump() gin.HandlerFunc {
	return gindump.Dump()
}

// Defaults 返回所有模式都安装的中间件，debug 模式额外打印请求体.
func Defaults(mode string) []gin.HandlerFunc {
	mws := []gin.HandlerFunc{
		gin.Recovery(),
		RequestID(),
		Logger("/healthz", "/metrics"),
		Secure,
		NoCache,
	}
	if mode == gin.DebugMode {
		mws = append(mws, Dump())
	}
	return mws
}
