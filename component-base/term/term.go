// Package term 获取终端尺寸.
package term

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalSize 返回 w 对应终端的宽和高，w 不是终端时返回错误.
func TerminalSize(w io.Writer) (int, int, error) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, fmt.Errorf("given writer is no terminal")
	}
	return term.GetSize(int(f.Fd()))
}
