// Package id 提供无状态的 ID 计算接口.
package id

import (
	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/component-base/core"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/feed"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// IDController 计算帖子 ID 和周 ID，不分配序号也不落库.
type IDController struct {
	srv *feed.Service
}

// NewIDController creates an id handler.
func NewIDController(srv *feed.Service) *IDController {
	return &IDController{srv: srv}
}

type postIDQuery struct {
	UserTag string `form:"userTag" binding:"required"`
	Seq     int    `form:"seq"     binding:"required,min=1,max=99"`
}

type weekIDQuery struct {
	UserTag string `form:"userTag" binding:"required"`
}

type parseQuery struct {
	UserTagLength int `form:"userTagLength" binding:"omitempty,min=1"`
}

// PostID 返回当前时刻的帖子 ID.
func (i *IDController) PostID(c *gin.Context) {
	var q postIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}
	if err := i.srv.ValidateUserTag(q.UserTag); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	id, err := i.srv.Generator().PostID(q.UserTag, q.Seq)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"postID": id})
}

// WeekID 返回当前周的周 ID.
func (i *IDController) WeekID(c *gin.Context) {
	var q weekIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}
	if err := i.srv.ValidateUserTag(q.UserTag); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	id, err := i.srv.Generator().PostWeekID(q.UserTag)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"weekID": id})
}

// Parse 拆分帖子 ID.
func (i *IDController) Parse(c *gin.Context) {
	var q parseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}

	id, err := i.srv.ParseID(c.Param("postID"), q.UserTagLength)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	core.WriteResponse(c, nil, id)
}
