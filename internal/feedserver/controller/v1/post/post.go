// Package post 实现帖子相关的 HTTP 处理器.
package post

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/component-base/core"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/dateutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/feed"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// PostController create a post handler used to handle request for post resource.
type PostController struct {
	srv *feed.Service
	now func() time.Time
}

// NewPostController creates a post handler.
func NewPostController(srv *feed.Service) *PostController {
	return &PostController{srv: srv, now: time.Now}
}

// CreateRequest 是发帖请求体.
type CreateRequest struct {
	UserTag string `json:"userTag" binding:"required"`
	Content string `json:"content" binding:"required,max=4096"`
}

// ListQuery 是时间线查询参数，from/to 接受 RFC3339 或毫秒时间戳.
type ListQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// WeekResponse 是当周缓存的帖子.
type WeekResponse struct {
	WeekID string            `json:"weekID"`
	Posts  map[string]string `json:"posts"`
}

// Create 发布一条帖子.
func (p *PostController) Create(c *gin.Context) {
	var r CreateRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}

	post, err := p.srv.Publish(c, r.UserTag, r.Content)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, post)
}

// Get 按帖子 ID 查询.
func (p *PostController) Get(c *gin.Context) {
	post, err := p.srv.Get(c, c.Param("postID"))
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, post)
}

// List 查询用户帖子. 未给出时间窗口时返回最近的帖子，
// 只给出 from 时窗口截止到当前时刻.
func (p *PostController) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrBind, "%s", err.Error()), nil)
		return
	}
	userTag := c.Param("userTag")

	if q.From == "" && q.To == "" {
		posts, err := p.srv.Latest(c, userTag, q.Limit)
		if err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
		core.WriteResponse(c, nil, posts)
		return
	}
	if q.From == "" {
		core.WriteResponse(c, errors.WithCode(code.ErrInvalidArgument, "to requires from"), nil)
		return
	}

	from, err := dateutil.ParseInstant(q.From)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	to := p.now()
	if q.To != "" {
		if to, err = dateutil.ParseInstant(q.To); err != nil {
			core.WriteResponse(c, err, nil)
			return
		}
	}

	posts, err := p.srv.Timeline(c, userTag, from, to, q.Limit)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}
	core.WriteResponse(c, nil, posts)
}

// Week 返回用户当周缓存的帖子.
func (p *PostController) Week(c *gin.Context) {
	weekID, posts, err := p.srv.Week(c, c.Param("userTag"))
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, WeekResponse{WeekID: weekID, Posts: posts})
}
