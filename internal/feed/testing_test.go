package feed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/ifkeeper/keeper-commons-utils/pkg/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := db.Open(sqlite.Open(dsn), &db.Options{MaxOpenConnections: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	s := NewStore(gdb)
	require.NoError(t, s.Migrate())
	return s
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}
