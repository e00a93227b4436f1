// Package options 汇总 feed-apiserver 的全部命令行选项.
package options

import (
	cliflag "github.com/ifkeeper/keeper-commons-utils/component-base/cli/flag"
	"github.com/ifkeeper/keeper-commons-utils/component-base/json"
	genericoptions "github.com/ifkeeper/keeper-commons-utils/internal/pkg/options"
	"github.com/ifkeeper/keeper-commons-utils/log"
)

// Options runs a feed api server.
type Options struct {
	ServerRunOptions       *genericoptions.ServerRunOptions       `json:"server"   mapstructure:"server"`
	InsecureServingOptions *genericoptions.InsecureServingOptions `json:"insecure" mapstructure:"insecure"`
	MySQLOptions           *genericoptions.MySQLOptions           `json:"mysql"    mapstructure:"mysql"`
	RedisOptions           *genericoptions.RedisOptions           `json:"redis"    mapstructure:"redis"`
	KafkaOptions           *genericoptions.KafkaOptions           `json:"kafka"    mapstructure:"kafka"`
	FeedOptions            *genericoptions.FeedOptions            `json:"feed"     mapstructure:"feed"`
	JwtOptions             *genericoptions.JwtOptions             `json:"jwt"      mapstructure:"jwt"`
	Log                    *log.Options                           `json:"log"      mapstructure:"log"`
}

// NewOptions creates a new Options object with default parameters.
func NewOptions() *Options {
	return &Options{
		ServerRunOptions:       genericoptions.NewServerRunOptions(),
		InsecureServingOptions: genericoptions.NewInsecureServingOptions(),
		MySQLOptions:           genericoptions.NewMySQLOptions(),
		RedisOptions:           genericoptions.NewRedisOptions(),
		KafkaOptions:           genericoptions.NewKafkaOptions(),
		FeedOptions:            genericoptions.NewFeedOptions(),
		JwtOptions:             genericoptions.NewJwtOptions(),
		Log:                    log.NewOptions(),
	}
}

// Flags returns flags for a specific APIServer by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.ServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.InsecureServingOptions.AddFlags(fss.FlagSet("insecure serving"))
	o.MySQLOptions.AddFlags(fss.FlagSet("mysql"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.KafkaOptions.AddFlags(fss.FlagSet("kafka"))
	o.FeedOptions.AddFlags(fss.FlagSet("feed"))
	o.JwtOptions.AddFlags(fss.FlagSet("jwt"))
	o.Log.AddFlags(fss.FlagSet("logs"))

	return fss
}

// Complete 补全依赖其他参数的默认值.
func (o *Options) Complete() error {
	o.RedisOptions.Complete()
	return nil
}

// Validate checks Options and return a slice of found errs.
func (o *Options) Validate() []error {
	var errs []error

	errs = append(errs, o.ServerRunOptions.Validate()...)
	errs = append(errs, o.InsecureServingOptions.Validate()...)
	errs = append(errs, o.MySQLOptions.Validate()...)
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.KafkaOptions.Validate()...)
	errs = append(errs, o.FeedOptions.Validate()...)
	errs = append(errs, o.JwtOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
