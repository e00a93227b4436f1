// Package json 统一项目中的 JSON 编解码入口，底层使用 jsoniter 的标准库兼容配置.
package json

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// RawMessage 等价于 encoding/json.RawMessage.
type RawMessage = stdjson.RawMessage

var api = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal       = api.Marshal
	Unmarshal     = api.Unmarshal
	MarshalIndent = api.MarshalIndent
	NewDecoder    = api.NewDecoder
	NewEncoder    = api.NewEncoder
)
