package errors

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

var (
	_codes     = map[int]Coder{}
	_codeMutex = &sync.RWMutex{}

	// _unknownCode 是未注册错误码的兜底.
	_unknownCode = defaultCoder{
		C:    1,
		HTTP: http.StatusInternalServerError,
		Ext:  "An internal server error occurred",
		Ref:  "https://github.com/ifkeeper/keeper-commons-utils/blob/main/README.md",
	}
)

// Coder 定义业务错误码.
type Coder interface {
	// Code 返回业务码.
	Code() int
	// HTTPStatus 返回对应的 HTTP 状态码.
	HTTPStatus() int
	// String 返回对外展示的错误描述.
	String() string
	// Reference 返回参考文档地址.
	Reference() string
}

type defaultCoder struct {
	C    int
	HTTP int
	Ext  string
	Ref  string
}

// NewCoder 构造一个 Coder.
func NewCoder(code, httpStatus int, msg, ref string) Coder {
	return defaultCoder{C: code, HTTP: httpStatus, Ext: msg, Ref: ref}
}

func (d defaultCoder) Code() int { return d.C }

func (d defaultCoder) HTTPStatus() int {
	if d.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return d.HTTP
}

func (d defaultCoder) String() string    { return d.Ext }
func (d defaultCoder) Reference() string { return d.Ref }

// Register 注册错误码，已存在时覆盖.
func Register(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by `errors` as unknownCode error code")
	}
	_codeMutex.Lock()
	defer _codeMutex.Unlock()
	_codes[coder.Code()] = coder
}

// MustRegister 注册错误码，已存在时 panic.
func MustRegister(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved by `errors` as ErrUnknown error code")
	}
	_codeMutex.Lock()
	defer _codeMutex.Unlock()
	if _, ok := _codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code: %d already exist", coder.Code()))
	}
	_codes[coder.Code()] = coder
}

// ParseCoderByErr 沿错误链找到第一个带业务码的错误并返回其 Coder.
// err 为 nil 时返回 nil，链上没有业务码时返回未知错误码.
func ParseCoderByErr(err error) Coder {
	if err == nil {
		return nil
	}
	var wc *withCode
	if As(err, &wc) {
		return ParseCoderByCode(wc.code)
	}
	return _unknownCode
}

// ParseCoderByCode 按业务码查找 Coder.
func ParseCoderByCode(code int) Coder {
	_codeMutex.RLock()
	defer _codeMutex.RUnlock()
	if coder, ok := _codes[code]; ok {
		return coder
	}
	return _unknownCode
}

// IsCode 判断错误链上是否存在 code.
func IsCode(err error, code int) bool {
	for err != nil {
		if e, ok := err.(*withCode); ok && e.code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Codes 返回按升序排列的已注册错误码.
func Codes() []Coder {
	_codeMutex.RLock()
	defer _codeMutex.RUnlock()
	keys := make([]int, 0, len(_codes))
	for k := range _codes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]Coder, 0, len(keys))
	for _, k := range keys {
		out = append(out, _codes[k])
	}
	return out
}

func init() {
	Register(_unknownCode)
}
