package feed

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/component-base/json"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{topic: "feed.posts", writer: w}

	event := &Event{Type: EventPostCreated, WeekID: "u1604800", Post: &Post{PostID: "u1c9c001", UserTag: "u1", Content: "hi"}}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("u1"), w.msgs[0].Key)
	assert.Equal(t, "type", w.msgs[0].Headers[0].Key)

	var decoded Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "u1c9c001", decoded.Post.PostID)
	assert.Equal(t, "u1604800", decoded.WeekID)

	w.err = errors.New("broker down")
	err := p.Publish(context.Background(), event)
	assert.True(t, errors.IsCode(err, code.ErrKafkaSendFailed))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher(KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, Topic: "feed.posts", RequiredAcks: -1})
	kw, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "feed.posts", kw.Topic)
	assert.Equal(t, kafka.RequireAll, kw.RequiredAcks)
	assert.NoError(t, p.Close())
}
