package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/component-base/auth"
	"github.com/ifkeeper/keeper-commons-utils/component-base/core"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer"

	// SubjectKey 是令牌主体在 gin 上下文中的键.
	SubjectKey = "subject"
)

// Auth 校验 Bearer 令牌，通过后把 sub 写入上下文.
func Auth(audience string, keyFn auth.KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get(authHeader)
		if header == "" {
			core.WriteResponse(c, errors.WithCode(code.ErrMissingHeader, "Authorization header cannot be empty."), nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
			core.WriteResponse(c, errors.WithCode(code.ErrInvalidAuthHeader, "Authorization header format is wrong."), nil)
			c.Abort()
			return
		}

		claims, err := auth.Verify(parts[1], audience, keyFn)
		if err != nil {
			core.WriteResponse(c, err, nil)
			c.Abort()
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
