// Package metrics 定义 feed 服务的业务指标，注册在 prometheus 默认注册表中.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsPublished 按结果统计发帖次数.
	PostsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feed",
		Name:      "posts_published_total",
		Help:      "Total number of publish attempts by result.",
	}, []string{"result"})

	// SequenceExhausted 统计单秒序号耗尽的次数.
	SequenceExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "feed",
		Name:      "sequence_exhausted_total",
		Help:      "Total number of publish attempts rejected because the per-second sequence ran out.",
	})

	// CacheFailures 按操作统计周缓存失败次数.
	CacheFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feed",
		Name:      "week_cache_failures_total",
		Help:      "Total number of week cache operation failures.",
	}, []string{"operation"})

	// PublishFailures 统计帖子事件投递失败次数.
	PublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feed",
		Name:      "event_publish_failures_total",
		Help:      "Total number of post events that failed to reach the broker.",
	}, []string{"topic"})

	// StoreDuration 记录存储操作耗时.
	StoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "feed",
		Name:      "store_duration_seconds",
		Help:      "Time taken for post store operations.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"operation"})
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
