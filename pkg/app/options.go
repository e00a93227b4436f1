package app

import (
	cliflag "github.com/ifkeeper/keeper-commons-utils/component-base/cli/flag"
)

// CliOptions 是命令行选项需要实现的接口.
type CliOptions interface {
	Flags() (fss cliflag.NamedFlagSets)
	Validate() []error
}

// CompleteableOptions 在校验前补全默认值.
type CompleteableOptions interface {
	Complete() error
}

// PrintableOptions 可以打印自身.
type PrintableOptions interface {
	String() string
}
