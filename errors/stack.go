package errors

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// Frame 表示堆栈中的一帧，值为程序计数器加一.
type Frame uintptr

func (f Frame) pc() uintptr { return uintptr(f) - 1 }

func (f Frame) fileLine() (string, int) {
	fn := runtime.FuncForPC(f.pc())
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(f.pc())
}

func (f Frame) name() string {
	fn := runtime.FuncForPC(f.pc())
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

// Format 支持的格式:
//
//	%s    源文件名
//	%d    行号
//	%n    函数名
//	%v    等价于 %s:%d
//	%+s   函数全名与源文件完整路径
//	%+v   等价于 %+s:%d
func (f Frame) Format(s fmt.State, verb rune) {
	file, line := f.fileLine()
	switch verb {
	case 's':
		if s.Flag('+') {
			io.WriteString(s, f.name())
			io.WriteString(s, "\n\t")
			io.WriteString(s, file)
			return
		}
		io.WriteString(s, path.Base(file))
	case 'd':
		io.WriteString(s, strconv.Itoa(line))
	case 'n':
		io.WriteString(s, funcname(f.name()))
	case 'v':
		f.Format(s, 's')
		io.WriteString(s, ":")
		f.Format(s, 'd')
	}
}

// MarshalText 以 "func file:line" 形式输出.
func (f Frame) MarshalText() ([]byte, error) {
	name := f.name()
	if name == "unknown" {
		return []byte(name), nil
	}
	file, line := f.fileLine()
	return []byte(fmt.Sprintf("%s %s:%d", name, file, line)), nil
}

// StackTrace 从内到外的堆栈帧.
type StackTrace []Frame

func (st StackTrace) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			for _, f := range st {
				io.WriteString(s, "\n")
				f.Format(s, verb)
			}
			return
		}
		st.formatSlice(s, verb)
	case 's':
		st.formatSlice(s, verb)
	}
}

func (st StackTrace) formatSlice(s fmt.State, verb rune) {
	io.WriteString(s, "[")
	for i, f := range st {
		if i > 0 {
			io.WriteString(s, " ")
		}
		f.Format(s, verb)
	}
	io.WriteString(s, "]")
}

type stack []uintptr

func (s *stack) Format(st fmt.State, verb rune) {
	if s == nil {
		return
	}
	if verb == 'v' && st.Flag('+') {
		for _, pc := range *s {
			io.WriteString(st, "\n")
			Frame(pc).Format(st, 'v')
		}
	}
}

func (s *stack) StackTrace() StackTrace {
	f := make([]Frame, len(*s))
	for i := range f {
		f[i] = Frame((*s)[i])
	}
	return f
}

// ToSlice 把堆栈展开成字符串，空堆栈返回 nil.
func (s *stack) ToSlice() []string {
	if s == nil || len(*s) == 0 {
		return nil
	}
	var out []string
	frames := runtime.CallersFrames(*s)
	for {
		frame, more := frames.Next()
		out = append(out, fmt.Sprintf("[%s()]%s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return out
}

func callers() *stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	st := stack(pcs[:n])
	return &st
}

func funcname(name string) string {
	if i := strings.LastIndex(name, "/"); i != -1 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[i+1:]
	}
	return name
}
