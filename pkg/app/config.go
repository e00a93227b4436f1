package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ifkeeper/keeper-commons-utils/errors"
)

const configFlagName = "config"

var cfgFile string

//nolint:gochecknoinits
func init() {
	pflag.StringVarP(&cfgFile, configFlagName, "c", cfgFile, "Read configuration from specified `FILE`, "+
		"support JSON, TOML, YAML, HCL, or Java properties formats.")
}

// addConfigFlag 注册 --config，并在 cobra 初始化时按以下顺序查找配置文件:
// --config 指定的文件，当前目录，$HOME/.<prefix>，/etc/<prefix>.
// 环境变量以 basename 大写加下划线为前缀，例如 FEED_APISERVER_REDIS_ADDR.
func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.AddFlag(pflag.Lookup(configFlagName))

	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(basename), "-", "_"))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cobra.OnInitialize(func() {
		if err := loadConfig(cfgFile, basename); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: failed to read configuration file(%s): %v\n", cfgFile, err)
			os.Exit(1)
		}
	})
}

// loadConfig 读取配置文件. 未显式指定且默认路径下不存在时不报错.
func loadConfig(cfg string, basename string) error {
	if cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")

		if names := strings.Split(basename, "-"); len(names) > 1 {
			if home, err := os.UserHomeDir(); err == nil {
				viper.AddConfigPath(filepath.Join(home, "."+names[0]))
			}
			viper.AddConfigPath(filepath.Join("/etc", names[0]))
		}

		viper.SetConfigName(basename)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfg == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// configTable 以表格形式返回全部已加载的配置项.
func configTable() string {
	keys := viper.AllKeys()
	if len(keys) == 0 {
		return ""
	}

	table := uitable.New()
	table.Separator = " "
	table.MaxColWidth = 80
	table.RightAlign(0)
	for _, k := range keys {
		table.AddRow(fmt.Sprintf("%s:", k), viper.Get(k))
	}

	return table.String()
}
