package cryptoutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func TestDigests(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", MD5Hex(nil))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", MD5Hex([]byte("abc")))
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", SHA1Hex([]byte("abc")))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", SHA256Hex([]byte("abc")))

	sum, err := MD5HexReader(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, MD5Hex([]byte("abc")), sum)
}

func TestSaltedDigests(t *testing.T) {
	assert.Equal(t, MD5Hex([]byte("abc!@#")), EncryptWithMD5("abc"))
	assert.Equal(t, SHA256Hex([]byte("abc!@#")), EncryptWithSHA256("abc"))
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", EncryptWithSHA1("abc"))
}

func TestUserPassword(t *testing.T) {
	encrypted := EncryptUserPassword("  alice ", " s3cret ")
	assert.Equal(t, SHA256Hex([]byte("ALICE@s3cret!@#")), encrypted)
	assert.True(t, CheckUserPassword("Alice", "s3cret", encrypted))
	assert.False(t, CheckUserPassword("alice", "other", encrypted))
}

func TestBase64(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", Base64EncodeString("hello"))

	s, err := Base64DecodeString("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = Base64Decode("not base64!")
	assert.True(t, errors.IsCode(err, code.ErrDecodingFailed))
}

func TestTripleDESKnownVector(t *testing.T) {
	k := string([]byte{0x13, 0x34, 0x57, 0x79, 0x9B, 0xBC, 0xDF, 0xF1})
	key := k + k + k

	out, err := TripleDESEncrypt(key, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "85:E8:13:54:0F:0A:B4:05:"), out)
	assert.Len(t, strings.Split(out, ":"), 16)
}

func TestTripleDESRoundTrip(t *testing.T) {
	key := "0123456789abcdefghijklmn"
	plain := "2c9f8e1a7b6d4e3f9a8b7c6d5e4f3a2b"

	out, err := TripleDESEncrypt(key, []byte(plain))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^([0-9A-F]{2}:)*[0-9A-F]{2}$`), out)

	got, err := TripleDESDecrypt(key, out)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	got, err = TripleDESDecrypt(key, strings.ReplaceAll(out, ":", ""))
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	longer, err := TripleDESEncrypt(key+"extra", []byte(plain))
	require.NoError(t, err)
	assert.Equal(t, out, longer)
}

func TestTripleDESErrors(t *testing.T) {
	_, err := TripleDESEncrypt("short", []byte("x"))
	assert.True(t, errors.IsCode(err, code.ErrEncrypt))

	_, err = TripleDESDecrypt("0123456789abcdefghijklmn", "  ")
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	_, err = TripleDESDecrypt("0123456789abcdefghijklmn", "ZZ:ZZ")
	assert.True(t, errors.IsCode(err, code.ErrDecrypt))

	_, err = TripleDESDecrypt("0123456789abcdefghijklmn", "0A:0B")
	assert.True(t, errors.IsCode(err, code.ErrDecrypt))
}

func TestBcrypt(t *testing.T) {
	hashed, err := HashPasswordWithCost("p@ss", 1)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hashed, "p@ss"))
	err = ComparePassword(hashed, "wrong")
	assert.True(t, errors.IsCode(err, code.ErrPasswordIncorrect))
}
