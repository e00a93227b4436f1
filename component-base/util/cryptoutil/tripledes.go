package cryptoutil

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"encoding/hex"
	"strings"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// TripleDESKeySize 是 3DES 密钥长度，更长的密钥只取前 24 字节.
const TripleDESKeySize = 24

func tripleDESBlock(key string) (cipher.Block, error) {
	if len(key) < TripleDESKeySize {
		return nil, errors.WithCode(code.ErrEncrypt, "3des key must be at least %d bytes, got %d", TripleDESKeySize, len(key))
	}
	block, err := des.NewTripleDESCipher([]byte(key[:TripleDESKeySize]))
	if err != nil {
		return nil, errors.WrapC(err, code.ErrEncrypt, "create 3des cipher")
	}
	return block, nil
}

// TripleDESEncrypt 以 ECB/PKCS5 模式加密 data，密文为冒号分隔的大写十六进制字节，如 "0A:1B:FF".
func TripleDESEncrypt(key string, data []byte) (string, error) {
	block, err := tripleDESBlock(key)
	if err != nil {
		return "", err
	}

	bs := block.BlockSize()
	src := pkcs5Pad(data, bs)
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}

	return formatHex(dst), nil
}

// TripleDESDecrypt 解密 TripleDESEncrypt 的输出，冒号分隔符可有可无.
func TripleDESDecrypt(key, data string) (string, error) {
	if strings.TrimSpace(data) == "" {
		return "", errors.WithCode(code.ErrInvalidArgument, "3des ciphertext is blank")
	}
	block, err := tripleDESBlock(key)
	if err != nil {
		return "", err
	}

	src, err := hex.DecodeString(strings.ReplaceAll(data, ":", ""))
	if err != nil {
		return "", errors.WrapC(err, code.ErrDecrypt, "decode 3des ciphertext")
	}
	bs := block.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return "", errors.WithCode(code.ErrDecrypt, "3des ciphertext length %d is not a multiple of %d", len(src), bs)
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
	plain, err := pkcs5Unpad(dst, bs)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs5Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs5Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.WithCode(code.ErrDecrypt, "bad 3des padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.WithCode(code.ErrDecrypt, "bad 3des padding")
		}
	}
	return data[:len(data)-n], nil
}

func formatHex(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{c}))
	}
	return strings.Join(parts, ":")
}
