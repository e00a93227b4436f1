package options

import (
	"time"

	"github.com/spf13/pflag"
)

// JwtOptions 是写接口的鉴权参数，SecretKey 为空时不鉴权.
type JwtOptions struct {
	Realm     string        `json:"realm"      mapstructure:"realm"`
	Issuer    string        `json:"issuer"     mapstructure:"issuer"`
	Audience  string        `json:"audience"   mapstructure:"audience"`
	SecretID  string        `json:"secret-id"  mapstructure:"secret-id"  validate:"required_with=SecretKey"`
	SecretKey string        `json:"-"          mapstructure:"secret-key" validate:"omitempty,min=6"`
	Timeout   time.Duration `json:"timeout"    mapstructure:"timeout"    validate:"gte=0"`
}

// NewJwtOptions 返回默认参数.
func NewJwtOptions() *JwtOptions {
	return &JwtOptions{
		Realm:    "feed jwt",
		Issuer:   "feed-apiserver",
		Audience: "feed.ifkeeper.com",
		Timeout:  2 * time.Hour,
	}
}

// Enabled 配置了密钥时返回 true.
func (j *JwtOptions) Enabled() bool {
	return j.SecretKey != ""
}

// Validate 校验参数.
func (j *JwtOptions) Validate() []error {
	return validateStruct(j)
}

// AddFlags 注册 jwt.* 标志.
func (j *JwtOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&j.Realm, "jwt.realm", j.Realm, "Realm name to display to the user.")
	fs.StringVar(&j.Issuer, "jwt.issuer", j.Issuer, "Issuer of signed tokens.")
	fs.StringVar(&j.Audience, "jwt.audience", j.Audience, "Audience required in tokens.")
	fs.StringVar(&j.SecretID, "jwt.secret-id", j.SecretID, "Secret id carried in the kid header.")
	fs.StringVar(&j.SecretKey, "jwt.secret-key", j.SecretKey, "Private key used to sign jwt token. Empty disables authentication.")
	fs.DurationVar(&j.Timeout, "jwt.timeout", j.Timeout, "JWT token timeout.")
}
