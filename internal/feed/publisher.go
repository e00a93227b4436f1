package feed

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ifkeeper/keeper-commons-utils/component-base/json"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/pkg/metrics"
	"github.com/ifkeeper/keeper-commons-utils/log"
	"github.com/ifkeeper/keeper-commons-utils/log/distribution"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// Publisher 广播帖子事件.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// NopPublisher 丢弃所有事件.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }
func (NopPublisher) Close() error                          { return nil }

// KafkaConfig 是 KafkaPublisher 的参数.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	RequiredAcks int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 以用户标识为 key 把事件写入 kafka，同一用户的事件落在同一分区.
type KafkaPublisher struct {
	topic  string
	writer messageWriter
}

// NewKafkaPublisher 创建 KafkaPublisher.
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	logger := distribution.NewLogger(log.ZapLogger().Named("kafka"))
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		ErrorLogger:  kafka.LoggerFunc(logger.Errorf),
	}
	return &KafkaPublisher{topic: cfg.Topic, writer: w}
}

// Publish 同步写入一条事件.
func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.WrapC(err, code.ErrEncodingFailed, "marshal %s event", event.Type)
	}

	msg := kafka.Message{
		Key:   []byte(event.Post.UserTag),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.PublishFailures.WithLabelValues(p.topic).Inc()
		return errors.WrapC(err, code.ErrKafkaSendFailed, "publish post %s to %s", event.Post.PostID, p.topic)
	}
	return nil
}

// Close 刷新并关闭底层 writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
