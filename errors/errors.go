// Package errors 在标准 error 之上提供堆栈记录与业务错误码。
//
// 所有构造函数都会记录调用点的堆栈，通过 %+v 输出；带错误码的错误
// 可以通过 ParseCoderByErr 解析出注册过的 Coder，用于 HTTP 响应。
package errors

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/ifkeeper/keeper-commons-utils/component-base/json"
)

type fundamental struct {
	msg string
	*stack
}

// New 返回带堆栈的错误.
func New(message string) error {
	return &fundamental{msg: message, stack: callers()}
}

// Errorf 按格式生成带堆栈的错误.
func Errorf(format string, args ...interface{}) error {
	return &fundamental{msg: fmt.Sprintf(format, args...), stack: callers()}
}

func (f *fundamental) Error() string { return f.msg }

func (f *fundamental) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			io.WriteString(st, f.msg)
			f.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, f.msg)
	case 'q':
		fmt.Fprintf(st, "%q", f.msg)
	}
}

type withStack struct {
	error
	*stack
}

// WithStack 为 err 追加当前堆栈，err 为 nil 时返回 nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{err: e.err, code: e.code, cause: err, stack: callers()}
	}
	return &withStack{err, callers()}
}

func (w *withStack) Cause() error  { return w.error }
func (w *withStack) Unwrap() error { return w.error }

func (w *withStack) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v", w.Cause())
			w.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, w.Error())
	case 'q':
		fmt.Fprintf(st, "%q", w.Error())
	}
}

// Wrap 用 message 包装 err. 如果 err 带错误码，包装结果保留该错误码.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{err: stderrors.New(message), code: e.code, cause: err, stack: callers()}
	}
	return &withStack{&withMessage{cause: err, msg: message}, callers()}
}

// Wrapf 同 Wrap，消息支持格式化.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{err: fmt.Errorf(format, args...), code: e.code, cause: err, stack: callers()}
	}
	return &withStack{&withMessage{cause: err, msg: fmt.Sprintf(format, args...)}, callers()}
}

type withMessage struct {
	cause error
	msg   string
}

// WithMessage 为 err 附加消息，不记录堆栈.
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &withMessage{cause: err, msg: message}
}

func (w *withMessage) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *withMessage) Cause() error  { return w.cause }
func (w *withMessage) Unwrap() error { return w.cause }

func (w *withMessage) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v\n", w.Cause())
			io.WriteString(st, w.msg)
			return
		}
		fallthrough
	case 's', 'q':
		io.WriteString(st, w.Error())
	}
}

type withCode struct {
	err   error // 本层错误
	code  int   // 业务码
	cause error // 上一层错误
	*stack
}

// WithCode 生成带业务码的错误.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{err: fmt.Errorf(format, args...), code: code, stack: callers()}
}

// WrapC 用业务码包装 err，err 为 nil 时返回 nil.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{err: fmt.Errorf(format, args...), code: code, cause: err, stack: callers()}
}

func (w *withCode) Error() string { return fmt.Sprintf("%v", w) }
func (w *withCode) Cause() error  { return w.cause }
func (w *withCode) Unwrap() error { return w.cause }

// Code 返回业务码.
func (w *withCode) Code() int { return w.code }

// Message 返回本层的错误消息，不含业务码前缀.
func (w *withCode) Message() string { return w.err.Error() }

func (w *withCode) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('#') {
			b, err := json.MarshalIndent(w.toJSON(), "", "    ")
			if err != nil {
				fmt.Fprintf(st, "format error: %v", err)
				return
			}
			st.Write(b)
			return
		}
		if st.Flag('+') {
			if w.cause != nil {
				fmt.Fprintf(st, "  ↳ %+v\n", w.cause)
			}
			fmt.Fprintf(st, "[code: %d][http:%d] %s", w.code, ParseCoderByCode(w.code).HTTPStatus(), w.err.Error())
			w.stack.Format(st, verb)
			return
		}
		fmt.Fprintf(st, "[code: %d] %s", w.code, w.err.Error())
	case 's', 'q':
		io.WriteString(st, w.Error())
	}
}

type withCodeJSON struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Cause   interface{} `json:"cause,omitempty"`
	Stack   []string    `json:"stack,omitempty"`
	HTTP    int         `json:"httpStatus"`
	Ref     string      `json:"reference,omitempty"`
}

func (w *withCode) toJSON() withCodeJSON {
	var cause interface{}
	if w.cause != nil {
		if c, ok := w.cause.(*withCode); ok {
			cause = c.toJSON()
		} else {
			cause = map[string]string{"message": w.cause.Error()}
		}
	}
	coder := ParseCoderByCode(w.code)
	return withCodeJSON{
		Code:    w.code,
		Message: w.err.Error(),
		HTTP:    coder.HTTPStatus(),
		Ref:     coder.Reference(),
		Cause:   cause,
		Stack:   w.stack.ToSlice(),
	}
}

// Cause 沿 Cause 链返回最底层的错误.
func Cause(err error) error {
	type causer interface {
		Cause() error
	}
	for err != nil {
		c, ok := err.(causer)
		if !ok || c.Cause() == nil {
			break
		}
		err = c.Cause()
	}
	return err
}

// Is 与 As 转发到标准库，便于调用方只引入本包.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }
