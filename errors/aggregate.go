package errors

import (
	stderrors "errors"
	"strings"
)

// Aggregate 表示多个错误的集合，常用于配置校验.
type Aggregate interface {
	error
	Errors() []error
	Is(error) bool
}

// NewAggregate 过滤掉 nil 后聚合，列表为空时返回 nil.
func NewAggregate(errlist []error) Aggregate {
	var errs []error
	for _, e := range errlist {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return aggregate(errs)
}

type aggregate []error

func (agg aggregate) Error() string {
	if len(agg) == 1 {
		return agg[0].Error()
	}
	seen := map[string]struct{}{}
	var msgs []string
	agg.visit(func(err error) bool {
		msg := err.Error()
		if _, ok := seen[msg]; ok {
			return false
		}
		seen[msg] = struct{}{}
		msgs = append(msgs, msg)
		return false
	})
	if len(msgs) == 1 {
		return msgs[0]
	}
	return "[" + strings.Join(msgs, ", ") + "]"
}

func (agg aggregate) Is(target error) bool {
	return agg.visit(func(err error) bool {
		return stderrors.Is(err, target)
	})
}

func (agg aggregate) visit(f func(err error) bool) bool {
	for _, err := range agg {
		switch e := err.(type) {
		case aggregate:
			if e.visit(f) {
				return true
			}
		case Aggregate:
			for _, nested := range e.Errors() {
				if f(nested) {
					return true
				}
			}
		default:
			if f(e) {
				return true
			}
		}
	}
	return false
}

func (agg aggregate) Errors() []error { return []error(agg) }

// Flatten 把嵌套的 Aggregate 展开成一层.
func Flatten(agg Aggregate) Aggregate {
	if agg == nil {
		return nil
	}
	var result []error
	for _, err := range agg.Errors() {
		if a, ok := err.(Aggregate); ok {
			if r := Flatten(a); r != nil {
				result = append(result, r.Errors()...)
			}
			continue
		}
		result = append(result, err)
	}
	return NewAggregate(result)
}
