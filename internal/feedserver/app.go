// Package feedserver 实现 feed-apiserver：发帖、按时间窗口查询帖子，
// 以及基于 redis 的当周缓存和 kafka 事件投递.
package feedserver

import (
	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/options"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
)

const commandDesc = `The feed API server publishes posts and serves user timelines.

Post ids are derived from the user tag, the seconds elapsed since a fixed
benchmark and a per-second sequence, so a time window of one user maps to a
single id range. Posts of the current week are cached in redis and every new
post is announced on kafka when brokers are configured.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Feed API Server",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		log.Init(opts.Log)
		defer log.Flush()

		return Run(opts)
	}
}
