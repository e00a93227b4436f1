package feed

import (
	"context"
	"strconv"
	"time"

	redis "github.com/go-redis/redis/v8"

	"github.com/ifkeeper/keeper-commons-utils/component-base/util/postid"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
	"github.com/ifkeeper/keeper-commons-utils/pkg/storage"
)

const sequenceTTL = 2 * time.Second

// SequenceAllocator 通过 redis INCR 为每个用户每个经过秒分配递增序号.
type SequenceAllocator struct {
	client redis.UniversalClient
	prefix storage.KeyPrefix
}

// NewSequenceAllocator 创建 SequenceAllocator.
func NewSequenceAllocator(client redis.UniversalClient, prefix string) *SequenceAllocator {
	return &SequenceAllocator{client: client, prefix: storage.KeyPrefix(prefix)}
}

// Next 返回 userTag 在第 second 秒（自时间基准起）的下一个序号，超过 99 时返回 ErrSequenceExhausted.
// second 必须与帖子 ID 中编码的秒数一致.
func (a *SequenceAllocator) Next(ctx context.Context, userTag string, second int64) (int, error) {
	key := a.prefix.Key("seq", userTag, strconv.FormatInt(second, 10))

	var incr *redis.IntCmd
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, sequenceTTL)
		return nil
	})
	if err != nil {
		return 0, errors.WrapC(err, code.ErrRedisFailed, "allocate sequence for %s", userTag)
	}

	seq := incr.Val()
	if seq > postid.MaxSeq {
		return 0, errors.WithCode(code.ErrSequenceExhausted, "user %s already published %d posts in second %d",
			userTag, postid.MaxSeq, second)
	}
	return int(seq), nil
}
