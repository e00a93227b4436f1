package feed

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/pkg/metrics"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	// DefaultListLimit 是列表查询未指定条数时返回的条数.
	DefaultListLimit = 100
	// MaxListLimit 是单次列表查询的上限，与接口的 limit 校验一致.
	MaxListLimit = 1000
)

// Store 基于 gorm 持久化帖子.
type Store struct {
	db *gorm.DB
}

// NewStore 创建 Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate 创建或更新 post 表.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Post{}); err != nil {
		return errors.WrapC(err, code.ErrDatabase, "migrate post table")
	}
	return nil
}

// Create 写入一条帖子，主键冲突时返回 ErrRecordAlreadyExist.
func (s *Store) Create(ctx context.Context, post *Post) error {
	defer observe("create", time.Now())

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.WrapC(err, code.ErrRecordAlreadyExist, "post %s already exists", post.PostID)
		}
		return errors.WrapC(err, code.ErrDatabase, "create post %s", post.PostID)
	}
	return nil
}

// Get 按 ID 查询帖子.
func (s *Store) Get(ctx context.Context, postID string) (*Post, error) {
	defer observe("get", time.Now())

	var post Post
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(code.ErrRecordNotFound, "post %s not found", postID)
		}
		return nil, errors.WrapC(err, code.ErrDatabase, "get post %s", postID)
	}
	return &post, nil
}

// ListByUser 按 ID 倒序返回用户最近的帖子.
func (s *Store) ListByUser(ctx context.Context, userTag string, limit int) ([]*Post, error) {
	defer observe("list_by_user", time.Now())

	var posts []*Post
	err := s.db.WithContext(ctx).
		Where("post_id LIKE ?", userTag+"%").
		Order("post_id DESC").
		Limit(normalizeLimit(limit)).
		Find(&posts).Error
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "list posts of %s", userTag)
	}
	return posts, nil
}

// ListRange 按 ID 升序返回 [lo, hi] 区间内的帖子.
func (s *Store) ListRange(ctx context.Context, lo, hi string, limit int) ([]*Post, error) {
	defer observe("list_range", time.Now())

	var posts []*Post
	err := s.db.WithContext(ctx).
		Where("post_id BETWEEN ? AND ?", lo, hi).
		Order("post_id ASC").
		Limit(normalizeLimit(limit)).
		Find(&posts).Error
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDatabase, "list posts between %s and %s", lo, hi)
	}
	return posts, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func observe(operation string, start time.Time) {
	metrics.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
