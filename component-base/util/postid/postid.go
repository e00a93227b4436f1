package postid

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	// MinSeq 与 MaxSeq 是单个用户每秒可用的序号范围.
	MinSeq = 1
	MaxSeq = 99

	// WeekSeconds 是相邻两个周 ID 的差值.
	WeekSeconds int64 = 7 * 24 * 60 * 60
)

// Generator 按固定基准时间生成 ID，无共享可变状态，可并发使用.
type Generator struct {
	benchmark time.Time
	location  *time.Location
	clock     func() time.Time
}

// Option 配置 Generator.
type Option func(*Generator)

// WithClock 替换时间来源，默认 time.Now.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithLocation 指定计算周起点使用的时区，默认 time.Local.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		if loc != nil {
			g.location = loc
		}
	}
}

// New 以 benchmark 为基准时间创建 Generator.
func New(benchmark time.Time, opts ...Option) *Generator {
	g := &Generator{
		benchmark: benchmark,
		location:  time.Local,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewFromMillis 以 Unix 毫秒时间戳为基准时间创建 Generator.
func NewFromMillis(epochMillis int64, opts ...Option) *Generator {
	return New(time.UnixMilli(epochMillis), opts...)
}

// Benchmark 返回基准时间.
func (g *Generator) Benchmark() time.Time { return g.benchmark }

// Elapsed 返回 t 距基准时间的整秒数，毫秒部分截断.
func (g *Generator) Elapsed(t time.Time) (int64, error) {
	diff := t.UnixMilli() - g.benchmark.UnixMilli()
	if diff < 0 {
		return 0, errors.WithCode(code.ErrInvalidArgument,
			"clock is behind benchmark: now=%s benchmark=%s", t.Format(time.RFC3339), g.benchmark.Format(time.RFC3339))
	}
	return diff / 1000, nil
}

// PostID 生成 userTag 在当前时刻、序号 seq 的帖子 ID.
// seq 必须在 [1, 99] 内，同一秒内序号的唯一性由调用方保证.
func (g *Generator) PostID(userTag string, seq int) (string, error) {
	return g.PostIDAt(userTag, g.clock(), seq)
}

// PostIDAt 同 PostID，使用指定时刻.
func (g *Generator) PostIDAt(userTag string, t time.Time, seq int) (string, error) {
	if userTag == "" {
		return "", errors.WithCode(code.ErrInvalidArgument, "userTag can't be empty")
	}
	if seq < MinSeq || seq > MaxSeq {
		return "", errors.WithCode(code.ErrInvalidArgument, "seq must be between %d and %d, got %d", MinSeq, MaxSeq, seq)
	}

	elapsed, err := g.Elapsed(t)
	if err != nil {
		return "", err
	}

	return userTag + EncodeBase36(elapsed) + formatSeq(seq), nil
}

// PostWeekID 返回 userTag 在当前周的周 ID.
func (g *Generator) PostWeekID(userTag string) (string, error) {
	return g.PostWeekIDAt(userTag, g.clock())
}

// PostWeekIDAt 同 PostWeekID，使用指定时刻.
// 基准时间晚于周起点时差值为负，按十进制带符号输出.
func (g *Generator) PostWeekIDAt(userTag string, t time.Time) (string, error) {
	if userTag == "" {
		return "", errors.WithCode(code.ErrInvalidArgument, "userTag can't be empty")
	}
	diff := (g.WeekStart(t).UnixMilli() - g.benchmark.UnixMilli()) / 1000
	return userTag + strconv.FormatInt(diff, 10), nil
}

// WeekStart 返回 t 所在周的周一 00:00:00.
func (g *Generator) WeekStart(t time.Time) time.Time {
	t = t.In(g.location)
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, g.location)
}

// RangeBounds 返回 [from, to] 时间窗口内 userTag 帖子 ID 的上下界，
// 可直接用于 BETWEEN lo AND hi 的范围查询.
// 窗口两端的时间段位数不同时返回错误，这种窗口无法用单个字典序区间表示.
func (g *Generator) RangeBounds(userTag string, from, to time.Time) (lo, hi string, err error) {
	if to.Before(from) {
		return "", "", errors.WithCode(code.ErrInvalidArgument, "range end %s is before start %s",
			to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if lo, err = g.PostIDAt(userTag, from, MinSeq); err != nil {
		return "", "", err
	}
	if hi, err = g.PostIDAt(userTag, to, MaxSeq); err != nil {
		return "", "", err
	}
	if len(lo) != len(hi) {
		return "", "", errors.WithCode(code.ErrInvalidArgument,
			"range %s..%s crosses the base36 width boundary at %d seconds", lo, hi, MaxFixedWidthElapsed+1)
	}
	return lo, hi, nil
}

func formatSeq(seq int) string {
	return fmt.Sprintf("%02d", seq)
}

// PostID 以 epochMillis 为基准时间、time.Now 为当前时间生成帖子 ID.
func PostID(userTag string, epochMillis int64, seq int) (string, error) {
	return NewFromMillis(epochMillis).PostID(userTag, seq)
}

// PostWeekID 以 epochMillis 为基准时间、本地时区生成当前周的周 ID.
func PostWeekID(userTag string, epochMillis int64) (string, error) {
	return NewFromMillis(epochMillis).PostWeekID(userTag)
}
