package app

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ifkeeper/keeper-commons-utils/errors"
)

// Command 是应用的子命令.
type Command struct {
	usage    string
	desc     string
	options  CliOptions
	commands []*Command
	runFunc  RunCommandFunc
}

// CommandOption 配置 Command.
type CommandOption func(*Command)

// RunCommandFunc 是子命令的执行回调.
type RunCommandFunc func(args []string) error

// WithCommandOptions 设置子命令的选项.
func WithCommandOptions(opt CliOptions) CommandOption {
	return func(c *Command) {
		c.options = opt
	}
}

// WithCommandRunFunc 设置子命令的执行回调.
func WithCommandRunFunc(run RunCommandFunc) CommandOption {
	return func(c *Command) {
		c.runFunc = run
	}
}

// NewCommand 创建子命令，usage 的第一个单词是命令名.
func NewCommand(usage string, desc string, opts ...CommandOption) *Command {
	c := &Command{
		usage: usage,
		desc:  desc,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// AddCommand 添加下级命令.
func (c *Command) AddCommand(cmd *Command) {
	c.commands = append(c.commands, cmd)
}

// AddCommands 添加多个下级命令.
func (c *Command) AddCommands(cmds ...*Command) {
	c.commands = append(c.commands, cmds...)
}

func (c *Command) cobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           c.usage,
		Short:         c.desc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().SortFlags = false

	for _, command := range c.commands {
		cmd.AddCommand(command.cobraCommand())
	}
	if c.runFunc != nil {
		cmd.RunE = c.runCommand
	}
	if c.options != nil {
		fss := c.options.Flags()
		for _, name := range fss.Order {
			cmd.Flags().AddFlagSet(fss.FlagSets[name])
		}
	}
	addHelpCommandFlag(c.usage, cmd.Flags())

	return cmd
}

// runCommand 先用配置文件和环境变量覆盖选项，再补全、校验并执行.
func (c *Command) runCommand(cmd *cobra.Command, args []string) error {
	if c.options != nil {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := viper.Unmarshal(c.options); err != nil {
			return err
		}
		if completeableOptions, ok := c.options.(CompleteableOptions); ok {
			if err := completeableOptions.Complete(); err != nil {
				return err
			}
		}
		if errs := c.options.Validate(); len(errs) != 0 {
			return errors.NewAggregate(errs)
		}
	}

	return c.runFunc(args)
}

// FormatBaseName 把可执行文件名转换为小写并去掉 Windows 下的 .exe 后缀.
func FormatBaseName(basename string) string {
	if runtime.GOOS == "windows" {
		basename = strings.ToLower(basename)
		basename = strings.TrimSuffix(basename, ".exe")
	}

	return basename
}
