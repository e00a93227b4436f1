// Package commonsctl 是工具库的命令行入口，每个子命令对应一个工具包.
package commonsctl

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/gosuri/uitable"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/app"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const commandDesc = `commonsctl exposes the keeper commons helpers on the command line.

Find more information at:
    https://github.com/ifkeeper/keeper-commons-utils`

// NewApp creates the commonsctl application.
func NewApp(basename string) *app.App {
	return app.NewApp("commonsctl", basename,
		app.WithDescription(commandDesc),
		app.WithCommands(NewCommands(os.Stdout)...),
	)
}

// NewCommands 返回全部子命令，结果写入 out.
func NewCommands(out io.Writer) []*app.Command {
	return []*app.Command{
		newPostIDCommand(out),
		newWeekIDCommand(out),
		newParseIDCommand(out),
		newUUIDCommand(out),
		newPasswordCommand(out),
		newDigestCommand(out),
		newBase64Command(out),
		newTripleDESCommand(out),
		newTokenCommand(out),
		newGzipCommand(out),
		newDistanceCommand(out),
		newVersionCommand(out),
	}
}

var (
	keyColor = color.New(color.FgCyan).SprintFunc()

	validate     *validator.Validate
	validateOnce sync.Once
)

// printTable 以两列表格输出 key/value.
func printTable(out io.Writer, kvs ...string) error {
	table := uitable.New()
	table.MaxColWidth = 120
	table.Separator = "  "
	for i := 0; i+1 < len(kvs); i += 2 {
		table.AddRow(keyColor(kvs[i]+":"), kvs[i+1])
	}
	_, err := fmt.Fprintln(out, table)
	return err
}

// validateOptions 按 validate 标签校验，错误中的字段名取 mapstructure 标签，与标志名一致.
func validateOptions(s interface{}) []error {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		})
	})

	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, errors.WithCode(code.ErrValidation, "invalid --%s: failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return errs
}
