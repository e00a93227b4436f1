package feed

import "time"

// Post 是一条帖子.
type Post struct {
	PostID    string    `json:"postID"    gorm:"column:post_id;primaryKey;size:32"`
	UserTag   string    `json:"userTag"   gorm:"column:user_tag;size:16;not null"`
	Content   string    `json:"content"   gorm:"column:content;type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

// TableName 固定表名为 post.
func (Post) TableName() string {
	return "post"
}

// Event 是投递到消息队列的帖子事件.
type Event struct {
	Type   string `json:"type"`
	WeekID string `json:"weekID"`
	Post   *Post  `json:"post"`
}

// EventPostCreated 是新帖事件类型.
const EventPostCreated = "post.created"
