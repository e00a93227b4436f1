package flag

import (
	goflag "flag"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ifkeeper/keeper-commons-utils/log"
)

// WordSepNormalizeFunc 把标志名中的 "_" 转换为 "-".
func WordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}
	return pflag.NormalizedName(name)
}

// WarnWordSepNormalizeFunc 与 WordSepNormalizeFunc 相同，但会对旧写法打印警告.
func WarnWordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		nname := strings.ReplaceAll(name, "_", "-")
		log.Warnf("%s is DEPRECATED and will be removed in a future version. Use %s instead.", name, nname)

		return pflag.NormalizedName(nname)
	}
	return pflag.NormalizedName(name)
}

// InitFlags 规范化标志名并合并标准库 flag.
func InitFlags(flags *pflag.FlagSet) {
	flags.SetNormalizeFunc(WordSepNormalizeFunc)
	flags.AddGoFlagSet(goflag.CommandLine)
}

// PrintFlags 以 debug 级别打印所有标志.
func PrintFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		log.Debugf("FLAG: --%s=%q", flag.Name, flag.Value)
	})
}

// AddHelpFlag 注册 --help/-h.
func AddHelpFlag(fs *pflag.FlagSet, name string) {
	fs.BoolP("help", "h", false, "help for "+name)
}
