// Package ziputil gzip 压缩与解压.
package ziputil

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// Ext 是 CompressFile 输出文件的后缀.
const Ext = ".gz"

// Compress 压缩字节切片.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := CompressStream(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress 解压字节切片.
func Decompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := DecompressStream(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressStream 把 r 的内容压缩写入 w，不关闭 w.
func CompressStream(r io.Reader, w io.Writer) error {
	zw := gzip.NewWriter(w)
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return errors.WrapC(err, code.ErrIO, "gzip compress")
	}
	if err := zw.Close(); err != nil {
		return errors.WrapC(err, code.ErrIO, "gzip flush")
	}
	return nil
}

// DecompressStream 把 r 中的 gzip 数据解压写入 w.
func DecompressStream(r io.Reader, w io.Writer) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return errors.WrapC(err, code.ErrDecodingFailed, "open gzip stream")
	}
	defer zr.Close()

	if _, err := io.Copy(w, zr); err != nil {
		return errors.WrapC(err, code.ErrDecodingFailed, "gzip decompress")
	}
	return nil
}

// CompressFile 把 path 压缩为 path+".gz"，deleteSource 为 true 时成功后删除源文件.
func CompressFile(path string, deleteSource bool) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "open %s", path)
	}
	defer src.Close()

	target := path + Ext
	dst, err := os.Create(target)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "create %s", target)
	}
	if err := CompressStream(src, dst); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", errors.WrapC(err, code.ErrIO, "close %s", target)
	}

	if deleteSource {
		src.Close()
		if err := os.Remove(path); err != nil {
			return target, errors.WrapC(err, code.ErrIO, "remove %s", path)
		}
	}
	return target, nil
}

// DecompressFile 把 path（必须以 .gz 结尾）解压到去掉后缀的文件，deleteSource 为 true 时成功后删除源文件.
func DecompressFile(path string, deleteSource bool) (string, error) {
	if !strings.HasSuffix(path, Ext) {
		return "", errors.WithCode(code.ErrInvalidArgument, "%s has no %s suffix", path, Ext)
	}
	target := strings.TrimSuffix(path, Ext)

	src, err := os.Open(path)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "open %s", path)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "create %s", target)
	}
	if err := DecompressStream(src, dst); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", errors.WrapC(err, code.ErrIO, "close %s", target)
	}

	if deleteSource {
		src.Close()
		if err := os.Remove(path); err != nil {
			return target, errors.WrapC(err, code.ErrIO, "remove %s", path)
		}
	}
	return target, nil
}
