package feed

import (
	"context"
	"time"

	redis "github.com/go-redis/redis/v8"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
	"github.com/ifkeeper/keeper-commons-utils/pkg/storage"
)

// WeekTTL 保证同一时刻最多只有本周和上周两个周缓存存活.
const WeekTTL = 7 * 24 * time.Hour

// WeekCache 以周 ID 为 key 的 redis hash 缓存当周帖子，field 为帖子 ID.
type WeekCache struct {
	client redis.UniversalClient
	prefix storage.KeyPrefix
	ttl    time.Duration
}

// NewWeekCache 创建 WeekCache.
func NewWeekCache(client redis.UniversalClient, prefix string) *WeekCache {
	return &WeekCache{client: client, prefix: storage.KeyPrefix(prefix), ttl: WeekTTL}
}

// Put 写入一条帖子并刷新过期时间.
func (c *WeekCache) Put(ctx context.Context, weekID, postID, content string) error {
	key := c.prefix.Key(weekID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, postID, content)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return errors.WrapC(err, code.ErrRedisFailed, "cache post %s under %s", postID, weekID)
	}
	return nil
}

// List 返回该周全部帖子，postID 到内容的映射.
func (c *WeekCache) List(ctx context.Context, weekID string) (map[string]string, error) {
	m, err := c.client.HGetAll(ctx, c.prefix.Key(weekID)).Result()
	if err != nil {
		return nil, errors.WrapC(err, code.ErrRedisFailed, "read week %s", weekID)
	}
	return m, nil
}
