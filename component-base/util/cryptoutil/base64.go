package cryptoutil

import (
	"encoding/base64"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// Base64Encode 使用标准字母表编码.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64EncodeString 编码字符串.
func Base64EncodeString(s string) string {
	return Base64Encode([]byte(s))
}

// Base64Decode 解码标准 Base64.
func Base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDecodingFailed, "decode base64")
	}
	return data, nil
}

// Base64DecodeString 解码为字符串.
func Base64DecodeString(s string) (string, error) {
	data, err := Base64Decode(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
