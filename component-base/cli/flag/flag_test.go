package flag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedFlagSets(t *testing.T) {
	var nfs NamedFlagSets
	nfs.FlagSet("redis").String("redis.addr", "127.0.0.1:6379", "redis address")
	nfs.FlagSet("mysql").String("mysql.host", "127.0.0.1:3306", "mysql host")
	nfs.FlagSet("redis").Int("redis.database", 0, "redis db")
	nfs.FlagSet("empty")

	assert.Equal(t, []string{"redis", "mysql", "empty"}, nfs.Order)

	var buf bytes.Buffer
	PrintSections(&buf, nfs, 0)
	out := buf.String()
	assert.Contains(t, out, "Redis flags:")
	assert.Contains(t, out, "Mysql flags:")
	assert.NotContains(t, out, "Empty flags:")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Redis")), bytes.Index(buf.Bytes(), []byte("Mysql")))

	buf.Reset()
	PrintSections(&buf, nfs, 80)
	assert.Contains(t, buf.String(), "--redis.addr")
	assert.NotContains(t, buf.String(), "zzzz")
}

func TestWordSepNormalizeFunc(t *testing.T) {
	var nfs NamedFlagSets
	fs := nfs.FlagSet("generic")
	fs.SetNormalizeFunc(WordSepNormalizeFunc)
	fs.String("bind-address", "", "")

	assert.NoError(t, fs.Parse([]string{"--bind_address=0.0.0.0"}))
	v, err := fs.GetString("bind-address")
	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0", v)
}
