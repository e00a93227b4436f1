package options

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/ifkeeper/keeper-commons-utils/internal/feed"
)

// KafkaOptions 是帖子事件投递参数，Brokers 为空时不投递.
type KafkaOptions struct {
	Brokers      []string      `json:"brokers"       mapstructure:"brokers"`
	Topic        string        `json:"topic"         mapstructure:"topic"         validate:"required_with=Brokers"`
	RequiredAcks int           `json:"required-acks" mapstructure:"required-acks" validate:"oneof=-1 0 1"`
	BatchTimeout time.Duration `json:"batch-timeout" mapstructure:"batch-timeout" validate:"gte=0"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout" validate:"gte=0"`
}

// NewKafkaOptions 返回默认参数.
func NewKafkaOptions() *KafkaOptions {
	return &KafkaOptions{
		Topic:        "feed.posts",
		RequiredAcks: -1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
}

// Enabled 配置了 broker 时返回 true.
func (k *KafkaOptions) Enabled() bool {
	return len(k.Brokers) > 0
}

// Validate 校验参数.
func (k *KafkaOptions) Validate() []error {
	return validateStruct(k)
}

// AddFlags 注册 kafka.* 标志.
func (k *KafkaOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&k.Brokers, "kafka.brokers", k.Brokers, "Kafka broker addresses. Empty disables event publishing.")
	fs.StringVar(&k.Topic, "kafka.topic", k.Topic, "Topic receiving post.created events.")
	fs.IntVar(&k.RequiredAcks, "kafka.required-acks", k.RequiredAcks, "Acks required from brokers: -1 all, 0 none, 1 leader.")
	fs.DurationVar(&k.BatchTimeout, "kafka.batch-timeout", k.BatchTimeout, "Time limit on how often incomplete batches are flushed.")
	fs.DurationVar(&k.WriteTimeout, "kafka.write-timeout", k.WriteTimeout, "Timeout for a single write to kafka.")
}

// NewPublisher 返回事件发布器，未配置 broker 时为 NopPublisher.
func (k *KafkaOptions) NewPublisher() feed.Publisher {
	if !k.Enabled() {
		return feed.NopPublisher{}
	}
	return feed.NewKafkaPublisher(feed.KafkaConfig{
		Brokers:      k.Brokers,
		Topic:        k.Topic,
		RequiredAcks: k.RequiredAcks,
		BatchTimeout: k.BatchTimeout,
		WriteTimeout: k.WriteTimeout,
	})
}
