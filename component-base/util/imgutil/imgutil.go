// Package imgutil 在图片与 base64 data URI 之间转换.
package imgutil

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const dataURIMarker = ";base64,"

// MaxImageSize 限制从网络读取的图片大小.
const MaxImageSize = 10 << 20

// ToBase64 把图片字节编码为 data:<mime>;base64,... 形式.
func ToBase64(data []byte) string {
	m := mimetype.Detect(data)
	return "data:" + m.String() + dataURIMarker + base64.StdEncoding.EncodeToString(data)
}

// ReaderToBase64 读取 r 的全部内容并编码为 data URI.
func ReaderToBase64(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "read image")
	}
	return ToBase64(data), nil
}

// FileToBase64 读取本地图片文件并编码为 data URI.
func FileToBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "read image %s", path)
	}
	return ToBase64(data), nil
}

// URLToBase64 下载网络图片并编码为 data URI. client 为空时使用 http.DefaultClient.
func URLToBase64(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.WithCode(code.ErrInvalidArgument, "bad image url %q: %v", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "fetch image %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.WithCode(code.ErrIO, "fetch image %s: status %d", url, resp.StatusCode)
	}
	return ReaderToBase64(io.LimitReader(resp.Body, MaxImageSize))
}

// Decode 解码 base64 图片，支持带 data URI 前缀和不带前缀两种输入.
func Decode(s string) ([]byte, error) {
	if i := strings.Index(s, dataURIMarker); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(dataURIMarker):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.WrapC(err, code.ErrDecodingFailed, "decode image base64")
	}
	return data, nil
}

// Base64ToWriter 把 base64 图片写入 w.
func Base64ToWriter(s string, w io.Writer) error {
	data, err := Decode(s)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return errors.WrapC(err, code.ErrIO, "write image")
	}
	return nil
}

// Base64ToFile 把 base64 图片保存到 path.
func Base64ToFile(s, path string) error {
	data, err := Decode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapC(err, code.ErrIO, "write image %s", path)
	}
	return nil
}
