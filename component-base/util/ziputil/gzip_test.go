package ziputil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func TestRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("keeper commons utils ", 200))

	compressed, err := Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data))
	assert.Equal(t, []byte{0x1f, 0x8b}, compressed[:2])

	out, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestEmptyInput(t *testing.T) {
	compressed, err := Compress(nil)
	require.NoError(t, err)
	out, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecompressInvalid(t *testing.T) {
	_, err := Decompress([]byte("plain text"))
	assert.True(t, errors.IsCode(err, code.ErrDecodingFailed))
}

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.log")
	require.NoError(t, os.WriteFile(path, []byte("line1\nline2\n"), 0o644))

	target, err := CompressFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, path+".gz", target)
	assert.FileExists(t, path)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, DecompressStream(bytes.NewReader(raw), &out))
	assert.Equal(t, "line1\nline2\n", out.String())

	_, err = CompressFile(path, true)
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	_, err = CompressFile(filepath.Join(dir, "missing"), false)
	assert.True(t, errors.IsCode(err, code.ErrIO))
}

func TestDecompressFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.log")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	gz, err := CompressFile(path, true)
	require.NoError(t, err)

	target, err := DecompressFile(gz, false)
	require.NoError(t, err)
	assert.Equal(t, path, target)
	assert.FileExists(t, gz)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = DecompressFile(path, false)
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	bad := filepath.Join(dir, "bad.gz")
	require.NoError(t, os.WriteFile(bad, []byte("not gzip"), 0o644))
	_, err = DecompressFile(bad, true)
	assert.True(t, errors.IsCode(err, code.ErrDecodingFailed))
	assert.NoFileExists(t, filepath.Join(dir, "bad"))
	assert.FileExists(t, bad)
}
