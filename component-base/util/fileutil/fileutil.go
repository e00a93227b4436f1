// Package fileutil 处理 gin 中的文件上传与下载.
package fileutil

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	// DefaultFileField 是默认的上传表单字段名.
	DefaultFileField = "uploadFile"

	defaultMimeType = "text/plain; charset=utf-8"
)

// FileWrap 描述一个已落盘的上传文件.
type FileWrap struct {
	// Name 是客户端提交的原始文件名.
	Name string `json:"name"`
	// Path 是保存后的完整路径.
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// EncodeDownloadFileName 按浏览器类型编码下载文件名，IE 系列使用 URL 编码.
func EncodeDownloadFileName(userAgent, name string) string {
	if strings.Contains(userAgent, "MSIE") || strings.Contains(userAgent, "Trident") {
		return url.PathEscape(name)
	}
	return name
}

// MimeTypeByName 按扩展名推断 MIME，未知时返回 text/plain.
func MimeTypeByName(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return defaultMimeType
}

// DetectMimeType 按文件内容识别 MIME.
func DetectMimeType(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.WrapC(err, code.ErrIO, "detect mime type of %s", path)
	}
	return m.String(), nil
}

// SetDownloadHeaders 设置附件下载需要的响应头.
func SetDownloadHeaders(c *gin.Context, name string) {
	encoded := EncodeDownloadFileName(c.GetHeader("User-Agent"), name)

	c.Header("Content-Type", MimeTypeByName(name))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, encoded, url.PathEscape(name)))
	c.Header("Cache-Control", "must-revalidate, post-check=0, pre-check=0")
	c.Header("Expires", time.Now().Add(time.Second).UTC().Format(time.RFC1123))
	c.Header("Pragma", "public")
}

// Download 以附件形式返回 path 指向的文件，下载名为 name.
func Download(c *gin.Context, path, name string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.WrapC(err, code.ErrRecordNotFound, "file %s", path)
	}
	SetDownloadHeaders(c, name)
	c.File(path)
	return nil
}

// TempFileName 返回 yyyyMMddHHmmssSSS_original 形式的文件名.
func TempFileName(original string) string {
	now := time.Now()
	return fmt.Sprintf("%s%03d_%s", now.Format("20060102150405"), now.Nanosecond()/int(time.Millisecond), filepath.Base(original))
}

// SaveUploadedFile 把表单字段 field 中的文件保存到 dir，文件名加时间前缀避免覆盖.
func SaveUploadedFile(c *gin.Context, dir, field string) (*FileWrap, error) {
	if field == "" {
		field = DefaultFileField
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, errors.WrapC(err, code.ErrBind, "read upload field %s", field)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapC(err, code.ErrIO, "create directory %s", dir)
	}

	dst := filepath.Join(dir, TempFileName(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return nil, errors.WrapC(err, code.ErrIO, "save upload %s", fh.Filename)
	}
	return &FileWrap{Name: fh.Filename, Path: dst, Size: fh.Size}, nil
}

// SaveUploadedFiles 保存 multipart 表单中的全部文件.
func SaveUploadedFiles(c *gin.Context, dir string) ([]FileWrap, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.WrapC(err, code.ErrBind, "read multipart form")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapC(err, code.ErrIO, "create directory %s", dir)
	}

	var files []FileWrap
	for _, headers := range form.File {
		for _, fh := range headers {
			if strings.TrimSpace(fh.Filename) == "" {
				continue
			}
			dst := filepath.Join(dir, TempFileName(fh.Filename))
			if err := c.SaveUploadedFile(fh, dst); err != nil {
				return files, errors.WrapC(err, code.ErrIO, "save upload %s", fh.Filename)
			}
			files = append(files, FileWrap{Name: fh.Filename, Path: dst, Size: fh.Size})
		}
	}
	return files, nil
}
