// Package core 定义 HTTP 接口的统一响应格式.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// ErrResponse 定义了错误发生时的返回格式.
// 若不存在参考文档，Reference 字段会被省略.
type ErrResponse struct {
	// Code 表示业务错误码（非 HTTP 状态码）
	Code int `json:"code"`

	// Message 包含错误的详细描述，适合对外暴露
	Message string `json:"message"`

	// Reference 指向解决该错误的参考文档
	Reference string `json:"reference,omitempty"`
}

// SuccessResponse 是成功响应的包装.
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteResponse 根据 err 写出错误响应，err 为空时写出 data.
// 错误码通过 errors.ParseCoderByErr 映射为 HTTP 状态码.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		coder := errors.ParseCoderByErr(err)
		if coder.HTTPStatus() >= http.StatusInternalServerError {
			log.L(c).Errorf("%#+v", err)
		} else {
			log.L(c).Debug("request failed", "error", err.Error())
		}
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	c.JSON(status, SuccessResponse{
		Code:    code.ErrSuccess,
		Message: "OK",
		Data:    data,
	})
}
