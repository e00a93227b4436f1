// Package dateutil 日期格式化、解析与周/月边界计算.
package dateutil

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// 常用布局，对应 yyyy-MM、yyyy-MM-dd、yyyy-MM-dd HH:mm:ss 与带毫秒的形式.
const (
	YYYYMM           = "2006-01"
	YYYYMMDD         = "2006-01-02"
	YYYYMMDDHHMMSS   = "2006-01-02 15:04:05"
	YYYYMMDDHHMMSSMS = "2006-01-02 15:04:05.000"
)

var mondayConfig = &now.Config{WeekStartDay: time.Monday, TimeLocation: time.Local}

func withMonday(t time.Time) *now.Now {
	cfg := *mondayConfig
	cfg.TimeLocation = t.Location()
	return cfg.With(t)
}

// Format 按 layout 格式化，零值时间返回空串.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// Parse 按 layout 在本地时区解析，空白字符串返回零值时间且不报错.
func Parse(s, layout string) (time.Time, error) {
	return ParseInLocation(s, layout, time.Local)
}

// ParseInLocation 同 Parse，使用指定时区.
func ParseInLocation(s, layout string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, errors.WrapC(err, code.ErrInvalidArgument, "parse %q with layout %q", s, layout)
	}
	return t, nil
}

// WeekFirstDay 返回 t 所在周周一 00:00.
func WeekFirstDay(t time.Time) time.Time {
	return withMonday(t).BeginningOfWeek()
}

// WeekLastDay 返回 t 所在周周日 00:00.
func WeekLastDay(t time.Time) time.Time {
	return now.With(withMonday(t).EndOfWeek()).BeginningOfDay()
}

// MonthFirstDay 返回 t 所在月 1 日 00:00.
func MonthFirstDay(t time.Time) time.Time {
	return withMonday(t).BeginningOfMonth()
}

// MonthLastDay 返回 t 所在月最后一天 00:00.
func MonthLastDay(t time.Time) time.Time {
	return now.With(withMonday(t).EndOfMonth()).BeginningOfDay()
}

// After 判断 target 是否严格晚于 refer.
func After(target, refer time.Time) bool {
	return target.After(refer)
}

// AfterString 解析两个字符串后比较，支持本包定义的全部布局以及 RFC3339.
func AfterString(target, refer string) (bool, error) {
	t, err := parseAny(target)
	if err != nil {
		return false, err
	}
	r, err := parseAny(refer)
	if err != nil {
		return false, err
	}
	return t.After(r), nil
}

// ParseInstant 解析毫秒时间戳、RFC3339 或本包定义的布局.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return parseAny(s)
}

func parseAny(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{YYYYMMDDHHMMSSMS, YYYYMMDDHHMMSS, YYYYMMDD, YYYYMM, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.WithCode(code.ErrInvalidArgument, "unrecognized time %q", s)
}
