// Package stringutil 字符串常用操作.
package stringutil

import (
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// Diff 返回 base 中不在 exclude 里的元素，保持原顺序.
func Diff(base, exclude []string) (result []string) {
	excludeMap := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		excludeMap[s] = true
	}
	for _, s := range base {
		if !excludeMap[s] {
			result = append(result, s)
		}
	}
	return result
}

// Unique 去重并保持首次出现的顺序.
func Unique(ss []string) (result []string) {
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}

func CamelCaseToUnderscore(str string) string {
	return govalidator.CamelCaseToUnderscore(str)
}

func UnderscoreToCamelCase(str string) string {
	return govalidator.UnderscoreToCamelCase(str)
}

// StringIn 判断 str 是否在 array 中.
func StringIn(str string, array []string) bool {
	for _, s := range array {
		if s == str {
			return true
		}
	}
	return false
}

// Reverse 按 rune 反转字符串.
func Reverse(s string) string {
	size := len(s)
	buf := make([]byte, size)
	for start := 0; start < size; {
		r, n := utf8.DecodeRuneInString(s[start:])
		start += n
		utf8.EncodeRune(buf[size-start:], r)
	}
	return string(buf)
}

// IsBlank 判断字符串是否为空或只包含空白字符.
func IsBlank(s string) bool {
	return govalidator.IsNull(strings.TrimSpace(s))
}

// DefaultIfBlank s 为空白时返回 def.
func DefaultIfBlank(s, def string) string {
	if IsBlank(s) {
		return def
	}
	return s
}

// IsAlphanumeric 判断 s 是否只由字母和数字组成，空串返回 false.
func IsAlphanumeric(s string) bool {
	return s != "" && govalidator.IsAlphanumeric(s)
}
