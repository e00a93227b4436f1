// Package options 定义 feed-apiserver 各组件的命令行选项.
package options

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateStruct 按 validate 标签校验 s，每个失败字段返回一个错误.
func validateStruct(s interface{}) []error {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{errors.WrapC(err, code.ErrValidation, "validate options")}
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, errors.WithCode(code.ErrValidation, "%s: failed on the '%s' rule (value %v)",
			fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errs
}
