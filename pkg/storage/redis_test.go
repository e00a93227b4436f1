package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func TestNewClientKinds(t *testing.T) {
	c := NewClient(&Config{Addrs: []string{"127.0.0.1:1"}})
	_, ok := c.(*redis.Client)
	assert.True(t, ok)
	_ = c.Close()

	c = NewClient(&Config{Addrs: []string{"127.0.0.1:1"}, EnableCluster: true})
	_, ok = c.(*redis.ClusterClient)
	assert.True(t, ok)
	_ = c.Close()
}

func TestPingAndMonitor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(&Config{Addrs: []string{mr.Addr()}, Timeout: time.Second})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Ping(context.Background(), client, 3, 10*time.Millisecond))

	m := NewMonitor(client, 10*time.Millisecond)
	assert.True(t, errors.Is(m.Up(), ErrRedisIsDown))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	assert.Eventually(t, m.Connected, time.Second, 5*time.Millisecond)
	assert.NoError(t, m.Up())

	mr.Close()
	assert.Eventually(t, func() bool { return !m.Connected() }, 3*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestPingFails(t *testing.T) {
	client := NewClient(&Config{Addrs: []string{"127.0.0.1:1"}, Timeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	err := Ping(context.Background(), client, 2, time.Millisecond)
	assert.True(t, errors.IsCode(err, code.ErrRedisFailed))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "feed:seq:u1:42", KeyPrefix("feed:").Key("seq", "u1", "42"))
}
