package feed

import (
	"context"
	"time"

	"github.com/ifkeeper/keeper-commons-utils/component-base/util/postid"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/stringutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/pkg/metrics"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// Sequencer 为用户在某一秒内分配序号，second 是自时间基准起经过的秒数.
type Sequencer interface {
	Next(ctx context.Context, userTag string, second int64) (int, error)
}

// PostStore 持久化帖子.
type PostStore interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, postID string) (*Post, error)
	ListByUser(ctx context.Context, userTag string, limit int) ([]*Post, error)
	ListRange(ctx context.Context, lo, hi string, limit int) ([]*Post, error)
}

// Cache 缓存当周帖子.
type Cache interface {
	Put(ctx context.Context, weekID, postID, content string) error
	List(ctx context.Context, weekID string) (map[string]string, error)
}

// Service 组合 ID 生成、存储、缓存和事件投递.
type Service struct {
	ids        *postid.Generator
	seq        Sequencer
	store      PostStore
	cache      Cache
	pub        Publisher
	userTagLen int
	now        func() time.Time
}

// ServiceOption 配置 Service.
type ServiceOption func(*Service)

// WithNow 替换时钟.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithUserTagLength 要求用户标识为固定长度，0 表示不限制.
func WithUserTagLength(n int) ServiceOption {
	return func(s *Service) {
		s.userTagLen = n
	}
}

// NewService 创建 Service. pub 为空时使用 NopPublisher.
func NewService(ids *postid.Generator, seq Sequencer, store PostStore, cache Cache, pub Publisher, opts ...ServiceOption) *Service {
	if pub == nil {
		pub = NopPublisher{}
	}
	s := &Service{ids: ids, seq: seq, store: store, cache: cache, pub: pub, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generator 返回服务使用的 ID 生成器.
func (s *Service) Generator() *postid.Generator {
	return s.ids
}

// UserTagLength 返回配置的用户标识长度，0 表示不限制.
func (s *Service) UserTagLength() int {
	return s.userTagLen
}

// ParseID 解析帖子 ID，userTagLen 为 0 时使用服务配置的长度.
func (s *Service) ParseID(postID string, userTagLen int) (*postid.ID, error) {
	if userTagLen <= 0 {
		userTagLen = s.userTagLen
	}
	return s.ids.Parse(postID, userTagLen)
}

// ValidateUserTag 校验用户标识非空、只含字母数字且长度符合配置.
func (s *Service) ValidateUserTag(userTag string) error {
	if userTag == "" {
		return errors.WithCode(code.ErrInvalidArgument, "userTag can't be empty")
	}
	if !stringutil.IsAlphanumeric(userTag) {
		return errors.WithCode(code.ErrInvalidArgument, "userTag %q must be alphanumeric", userTag)
	}
	if s.userTagLen > 0 && len(userTag) != s.userTagLen {
		return errors.WithCode(code.ErrInvalidArgument, "userTag %q must be %d characters", userTag, s.userTagLen)
	}
	return nil
}

// Publish 分配序号、生成帖子 ID 并持久化. 缓存和事件投递失败只记录日志.
func (s *Service) Publish(ctx context.Context, userTag, content string) (*Post, error) {
	post, err := s.publish(ctx, userTag, content)
	if err != nil {
		metrics.PostsPublished.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.PostsPublished.WithLabelValues(metrics.ResultSuccess).Inc()
	return post, nil
}

func (s *Service) publish(ctx context.Context, userTag, content string) (*Post, error) {
	if err := s.ValidateUserTag(userTag); err != nil {
		return nil, err
	}

	now := s.now()
	elapsed, err := s.ids.Elapsed(now)
	if err != nil {
		return nil, err
	}
	seq, err := s.seq.Next(ctx, userTag, elapsed)
	if err != nil {
		if errors.IsCode(err, code.ErrSequenceExhausted) {
			metrics.SequenceExhausted.Inc()
		}
		return nil, err
	}

	id, err := s.ids.PostIDAt(userTag, now, seq)
	if err != nil {
		return nil, err
	}
	weekID, err := s.ids.PostWeekIDAt(userTag, now)
	if err != nil {
		return nil, err
	}

	post := &Post{PostID: id, UserTag: userTag, Content: content, CreatedAt: now}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, err
	}

	logger := log.L(ctx).WithValues("postID", id, "weekID", weekID)
	if err := s.cache.Put(ctx, weekID, id, content); err != nil {
		metrics.CacheFailures.WithLabelValues("put").Inc()
		logger.Warn("failed to cache post", "error", err)
	}
	if err := s.pub.Publish(ctx, &Event{Type: EventPostCreated, WeekID: weekID, Post: post}); err != nil {
		logger.Warn("failed to publish post event", "error", err)
	}

	return post, nil
}

// Get 查询单条帖子.
func (s *Service) Get(ctx context.Context, postID string) (*Post, error) {
	return s.store.Get(ctx, postID)
}

// Latest 返回用户最近的 limit 条帖子.
func (s *Service) Latest(ctx context.Context, userTag string, limit int) ([]*Post, error) {
	if err := s.ValidateUserTag(userTag); err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, userTag, limit)
}

// Timeline 返回用户在 [from, to] 内发布的帖子，按发布时间升序.
func (s *Service) Timeline(ctx context.Context, userTag string, from, to time.Time, limit int) ([]*Post, error) {
	if err := s.ValidateUserTag(userTag); err != nil {
		return nil, err
	}
	lo, hi, err := s.ids.RangeBounds(userTag, from, to)
	if err != nil {
		return nil, err
	}
	return s.store.ListRange(ctx, lo, hi, limit)
}

// Week 返回用户当周缓存的帖子.
func (s *Service) Week(ctx context.Context, userTag string) (string, map[string]string, error) {
	if err := s.ValidateUserTag(userTag); err != nil {
		return "", nil, err
	}
	weekID, err := s.ids.PostWeekIDAt(userTag, s.now())
	if err != nil {
		return "", nil, err
	}
	posts, err := s.cache.List(ctx, weekID)
	if err != nil {
		metrics.CacheFailures.WithLabelValues("list").Inc()
		return "", nil, err
	}
	return weekID, posts, nil
}

// Close 关闭事件投递.
func (s *Service) Close() error {
	return s.pub.Close()
}
