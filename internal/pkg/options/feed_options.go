package options

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/ifkeeper/keeper-commons-utils/component-base/util/dateutil"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/postid"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// DefaultBenchmark 是默认的时间基准，2024-01-01 00:00:00 UTC.
const DefaultBenchmark = "2024-01-01T00:00:00Z"

// FeedOptions 是帖子 ID 生成参数.
type FeedOptions struct {
	// Benchmark 接受 RFC3339 时间或毫秒时间戳.
	Benchmark     string `json:"benchmark"       mapstructure:"benchmark"       validate:"required"`
	Location      string `json:"location"        mapstructure:"location"`
	UserTagLength int    `json:"user-tag-length" mapstructure:"user-tag-length" validate:"gte=0,lte=16"`
}

// NewFeedOptions 返回默认参数.
func NewFeedOptions() *FeedOptions {
	return &FeedOptions{
		Benchmark:     DefaultBenchmark,
		Location:      "UTC",
		UserTagLength: 2,
	}
}

// Validate 校验参数.
func (f *FeedOptions) Validate() []error {
	errs := validateStruct(f)
	if _, err := f.BenchmarkTime(); err != nil {
		errs = append(errs, err)
	}
	if _, err := f.location(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// AddFlags 注册 feed.* 标志.
func (f *FeedOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Benchmark, "feed.benchmark", f.Benchmark, "Benchmark instant of post ids, RFC3339 or unix milliseconds.")
	fs.StringVar(&f.Location, "feed.location", f.Location, "Time zone used to align week ids, e.g. UTC or Asia/Shanghai.")
	fs.IntVar(&f.UserTagLength, "feed.user-tag-length", f.UserTagLength, "Fixed length of user tags. 0 accepts any length.")
}

// BenchmarkTime 解析 Benchmark.
func (f *FeedOptions) BenchmarkTime() (time.Time, error) {
	t, err := dateutil.ParseInstant(f.Benchmark)
	if err != nil {
		return time.Time{}, errors.WrapC(err, code.ErrInvalidArgument, "feed.benchmark %q", f.Benchmark)
	}
	return t, nil
}

func (f *FeedOptions) location() (*time.Location, error) {
	if f.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(f.Location)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrInvalidArgument, "feed.location %q", f.Location)
	}
	return loc, nil
}

// NewGenerator 创建帖子 ID 生成器.
func (f *FeedOptions) NewGenerator() (*postid.Generator, error) {
	benchmark, err := f.BenchmarkTime()
	if err != nil {
		return nil, err
	}
	loc, err := f.location()
	if err != nil {
		return nil, err
	}
	return postid.New(benchmark, postid.WithLocation(loc)), nil
}
