package options

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

// ServerRunOptions 是通用的服务运行参数.
type ServerRunOptions struct {
	Mode            string        `json:"mode"             mapstructure:"mode"             validate:"oneof=debug test release"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	EnableProfiling bool          `json:"enable-profiling" mapstructure:"enable-profiling"`
	EnableMetrics   bool          `json:"enable-metrics"   mapstructure:"enable-metrics"`
	CORSOrigins     []string      `json:"cors-origins"     mapstructure:"cors-origins"`
	RateLimit       float64       `json:"rate-limit"       mapstructure:"rate-limit"       validate:"gte=0"`
	RateBurst       int           `json:"rate-burst"       mapstructure:"rate-burst"       validate:"gte=0"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout" validate:"gte=0"`
}

// NewServerRunOptions 返回默认参数.
func NewServerRunOptions() *ServerRunOptions {
	return &ServerRunOptions{
		Mode:            gin.ReleaseMode,
		Healthz:         true,
		EnableProfiling: false,
		EnableMetrics:   true,
		RateLimit:       0,
		RateBurst:       20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate 校验参数.
func (s *ServerRunOptions) Validate() []error {
	return validateStruct(s)
}

// AddFlags 注册 server.* 标志.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Mode, "server.mode", s.Mode, "Start the server in a specified server mode. Supported server mode: debug, test, release.")
	fs.BoolVar(&s.Healthz, "server.healthz", s.Healthz, "Add self readiness check and install /healthz router.")
	fs.BoolVar(&s.EnableProfiling, "server.enable-profiling", s.EnableProfiling, "Enable profiling via web interface host:port/debug/pprof/ in debug mode.")
	fs.BoolVar(&s.EnableMetrics, "server.enable-metrics", s.EnableMetrics, "Enables metrics on the apiserver at /metrics.")
	fs.StringSliceVar(&s.CORSOrigins, "server.cors-origins", s.CORSOrigins, "Allowed CORS origins. Empty disables CORS headers.")
	fs.Float64Var(&s.RateLimit, "server.rate-limit", s.RateLimit, "Per client IP request rate in requests per second. 0 disables rate limiting.")
	fs.IntVar(&s.RateBurst, "server.rate-burst", s.RateBurst, "Per client IP burst size used with --server.rate-limit.")
	fs.DurationVar(&s.ShutdownTimeout, "server.shutdown-timeout", s.ShutdownTimeout, "Time to wait for in-flight requests on shutdown.")
}
