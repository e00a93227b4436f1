package commonsctl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/component-base/auth"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	a := app.NewApp("commonsctl", "commonsctl", app.WithNoConfig(), app.WithCommands(NewCommands(&out)...))
	cmd := a.Command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPostIDCommand(t *testing.T) {
	out, err := execute(t, "postid", "-u", "u1", "-s", "1", "--at", "2024-01-01T01:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "u12s001")
	assert.Contains(t, out, "3600s")

	out, err = execute(t, "postid", "-u", "u1", "-s", "2", "--at", "1704070800000", "--feed.benchmark", "1704067200000")
	require.NoError(t, err)
	assert.Contains(t, out, "u12s002")

	_, err = execute(t, "postid", "-u", "abc", "--at", "2024-01-01T01:00:00Z")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	_, err = execute(t, "postid", "-u", "a_", "--at", "2024-01-01T01:00:00Z")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	_, err = execute(t, "postid", "-u", "u1", "-s", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--seq")

	_, err = execute(t, "postid", "-u", "u1", "--at", "2023-12-31T23:59:59Z")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
}

func TestWeekAndParseCommands(t *testing.T) {
	out, err := execute(t, "weekid", "-u", "u1", "--at", "2024-01-03T12:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "u10")
	assert.Contains(t, out, "2024-01-01T00:00:00Z")

	out, err = execute(t, "parseid", "u12s001")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01T01:00:00Z")
	assert.Contains(t, out, "u1")

	_, err = execute(t, "parseid")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
}

func TestUUIDCommand(t *testing.T) {
	out, err := execute(t, "uuid", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Len(t, l, 36)
	}

	out, err = execute(t, "uuid", "--kind", "secret-key")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 32)

	_, err = execute(t, "uuid", "--kind", "guid")
	assert.Error(t, err)
}

func TestPasswordCommand(t *testing.T) {
	out, err := execute(t, "password", "-l", "12")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 12)

	out, err = execute(t, "password", "--hash", "s3cret!")
	require.NoError(t, err)
	assert.Contains(t, out, "s3cret!")

	hashed, err := auth.Encrypt("s3cret!")
	require.NoError(t, err)
	out, err = execute(t, "password", "--check", hashed, "s3cret!")
	require.NoError(t, err)
	assert.Contains(t, out, "password matches")

	_, err = execute(t, "password", "--check", hashed, "wrong")
	assert.True(t, errors.IsCode(err, code.ErrPasswordIncorrect))
}

func TestDigestCommand(t *testing.T) {
	out, err := execute(t, "digest", "abc")
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72\n", out)

	out, err = execute(t, "digest", "-a", "sha256", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n", out)

	path := filepath.Join(t.TempDir(), "abc.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))
	out, err = execute(t, "digest", "-a", "sha1", "-f", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "a9993e364706816aba3e25717850c26c9cd0d89d"))

	_, err = execute(t, "digest", "-a", "crc32", "abc")
	assert.Error(t, err)
}

func TestBase64And3DESCommands(t *testing.T) {
	out, err := execute(t, "base64", "hello")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", out)

	out, err = execute(t, "base64", "-d", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	const key = "0123456789abcdefghijklmn"
	out, err = execute(t, "3des", "-k", key, "feed")
	require.NoError(t, err)
	cipher := strings.TrimSpace(out)
	assert.Contains(t, cipher, ":")

	out, err = execute(t, "3des", "-k", key, "-d", cipher)
	require.NoError(t, err)
	assert.Equal(t, "feed\n", out)

	_, err = execute(t, "3des", "-k", "short", "feed")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--secret-id", "feed", "--secret-key", "secret-key", "--audience", "feed.test")
	require.NoError(t, err)

	claims, err := auth.Verify(strings.TrimSpace(out), "feed.test", auth.StaticKey("feed", "secret-key"))
	require.NoError(t, err)
	assert.Equal(t, "commonsctl", claims.Issuer)

	_, err = execute(t, "token", "--secret-id", "feed")
	assert.Error(t, err)
}

func TestGzipCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("compress me"), 0o644))

	out, err := execute(t, "gzip", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+".gz")
	assert.NoFileExists(t, path)

	_, err = execute(t, "gzip", "-d", path+".gz")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "compress me", string(data))
}

func TestDistanceAndVersionCommands(t *testing.T) {
	out, err := execute(t, "distance", "--from-lng", "116.4", "--from-lat", "39.9", "--to-lng", "116.4", "--to-lat", "39.9")
	require.NoError(t, err)
	assert.Equal(t, "0.0 km\n", out)

	_, err = execute(t, "distance", "--from-lat", "95")
	assert.Error(t, err)

	out, err = execute(t, "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"gitVersion"`)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gitVersion:")
}
