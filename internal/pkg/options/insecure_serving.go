package options

import (
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// InsecureServingOptions 是 HTTP 监听参数.
type InsecureServingOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address" validate:"ip"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"    validate:"min=1,max=65535"`
}

// NewInsecureServingOptions 返回默认参数.
func NewInsecureServingOptions() *InsecureServingOptions {
	return &InsecureServingOptions{
		BindAddress: "127.0.0.1",
		BindPort:    8080,
	}
}

// Address 返回 host:port.
func (i *InsecureServingOptions) Address() string {
	return net.JoinHostPort(i.BindAddress, strconv.Itoa(i.BindPort))
}

// Validate 校验参数.
func (i *InsecureServingOptions) Validate() []error {
	return validateStruct(i)
}

// AddFlags 注册 insecure.* 标志.
func (i *InsecureServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&i.BindAddress, "insecure.bind-address", i.BindAddress, "The IP address on which to serve the --insecure.bind-port "+
		"(set to 0.0.0.0 for all IPv4 interfaces and :: for all IPv6 interfaces).")
	fs.IntVar(&i.BindPort, "insecure.bind-port", i.BindPort, "The port on which to serve unsecured, unauthenticated access.")
}
