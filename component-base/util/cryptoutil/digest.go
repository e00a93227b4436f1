// Package cryptoutil 提供摘要、Base64、3DES 与 bcrypt 等常用加解密操作.
package cryptoutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"strings"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// Salt 是 EncryptWithMD5 与 EncryptWithSHA256 追加的固定盐值.
const Salt = "!@#"

func hexDigest(h hash.Hash, data []byte) string {
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// MD5Hex 返回小写十六进制 MD5.
func MD5Hex(data []byte) string { return hexDigest(md5.New(), data) }

// SHA1Hex 返回小写十六进制 SHA-1.
func SHA1Hex(data []byte) string { return hexDigest(sha1.New(), data) }

// SHA256Hex 返回小写十六进制 SHA-256.
func SHA256Hex(data []byte) string { return hexDigest(sha256.New(), data) }

// MD5HexReader 读完 r 并返回其 MD5.
func MD5HexReader(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.WrapC(err, code.ErrIO, "read stream for md5")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// EncryptWithMD5 对 s 加盐后取 MD5.
func EncryptWithMD5(s string) string { return MD5Hex([]byte(s + Salt)) }

// EncryptWithSHA256 对 s 加盐后取 SHA-256.
func EncryptWithSHA256(s string) string { return SHA256Hex([]byte(s + Salt)) }

// EncryptWithSHA1 对 s 取 SHA-1，不加盐.
func EncryptWithSHA1(s string) string { return SHA1Hex([]byte(s)) }

// EncryptUserPassword 计算 SHA256(UPPER(trim(username)) + "@" + trim(pwd) + Salt).
func EncryptUserPassword(username, pwd string) string {
	return EncryptWithSHA256(strings.ToUpper(strings.TrimSpace(username)) + "@" + strings.TrimSpace(pwd))
}

// CheckUserPassword 判断 pwd 是否与 EncryptUserPassword 的结果 encrypted 匹配.
func CheckUserPassword(username, pwd, encrypted string) bool {
	return EncryptUserPassword(username, pwd) == encrypted
}
