package options

import (
	"net"
	"strconv"
	"time"

	redis "github.com/go-redis/redis/v8"
	"github.com/spf13/pflag"

	"github.com/ifkeeper/keeper-commons-utils/pkg/storage"
)

// RedisOptions 是 redis 连接参数.
type RedisOptions struct {
	Host                  string        `json:"host"                     mapstructure:"host"`
	Port                  int           `json:"port"                     mapstructure:"port"                     validate:"min=0,max=65535"`
	Addrs                 []string      `json:"addrs"                    mapstructure:"addrs"`
	Username              string        `json:"username"                 mapstructure:"username"`
	Password              string        `json:"-"                        mapstructure:"password"`
	Database              int           `json:"database"                 mapstructure:"database"                 validate:"gte=0"`
	MasterName            string        `json:"master-name"              mapstructure:"master-name"`
	MaxActive             int           `json:"optimisation-max-active"  mapstructure:"optimisation-max-active"  validate:"gte=0"`
	Timeout               time.Duration `json:"timeout"                  mapstructure:"timeout"`
	EnableCluster         bool          `json:"enable-cluster"           mapstructure:"enable-cluster"`
	UseSSL                bool          `json:"use-ssl"                  mapstructure:"use-ssl"`
	SSLInsecureSkipVerify bool          `json:"ssl-insecure-skip-verify" mapstructure:"ssl-insecure-skip-verify"`
	KeyPrefix             string        `json:"key-prefix"               mapstructure:"key-prefix"`
}

// NewRedisOptions 返回默认参数.
func NewRedisOptions() *RedisOptions {
	return &RedisOptions{
		Host:      "127.0.0.1",
		Port:      6379,
		MaxActive: 100,
		Timeout:   5 * time.Second,
		KeyPrefix: "feed:",
	}
}

// Complete 未指定 Addrs 时由 Host 和 Port 生成.
func (r *RedisOptions) Complete() {
	if len(r.Addrs) == 0 {
		host := r.Host
		if host == "" {
			host = "127.0.0.1"
		}
		port := r.Port
		if port == 0 {
			port = 6379
		}
		r.Addrs = []string{net.JoinHostPort(host, strconv.Itoa(port))}
	}
}

// Validate 校验参数.
func (r *RedisOptions) Validate() []error {
	return validateStruct(r)
}

// AddFlags 注册 redis.* 标志.
func (r *RedisOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&r.Host, "redis.host", r.Host, "Hostname of your Redis server.")
	fs.IntVar(&r.Port, "redis.port", r.Port, "The port the Redis server is listening on.")
	fs.StringSliceVar(&r.Addrs, "redis.addrs", r.Addrs, "A set of redis address(format: 127.0.0.1:6379).")
	fs.StringVar(&r.Username, "redis.username", r.Username, "Username for access to redis service.")
	fs.StringVar(&r.Password, "redis.password", r.Password, "Optional auth password for Redis db.")
	fs.IntVar(&r.Database, "redis.database", r.Database, "By default, the database is 0. Setting the database is not supported with redis cluster.")
	fs.StringVar(&r.MasterName, "redis.master-name", r.MasterName, "The name of master redis instance.")
	fs.IntVar(&r.MaxActive, "redis.optimisation-max-active", r.MaxActive, "Maximum number of connections in the pool.")
	fs.DurationVar(&r.Timeout, "redis.timeout", r.Timeout, "Timeout when connecting to redis service.")
	fs.BoolVar(&r.EnableCluster, "redis.enable-cluster", r.EnableCluster, "If you are using Redis cluster, enable it here to enable the slots mode.")
	fs.BoolVar(&r.UseSSL, "redis.use-ssl", r.UseSSL, "If set, the server will assume the connection to Redis is encrypted.")
	fs.BoolVar(&r.SSLInsecureSkipVerify, "redis.ssl-insecure-skip-verify", r.SSLInsecureSkipVerify, "Allows usage of self-signed certificates when connecting to an encrypted Redis database.")
	fs.StringVar(&r.KeyPrefix, "redis.key-prefix", r.KeyPrefix, "Prefix of every key written by the server.")
}

// NewClient 创建 redis 客户端.
func (r *RedisOptions) NewClient() redis.UniversalClient {
	r.Complete()
	return storage.NewClient(&storage.Config{
		Addrs:                 r.Addrs,
		MasterName:            r.MasterName,
		Username:              r.Username,
		Password:              r.Password,
		Database:              r.Database,
		MaxActive:             r.MaxActive,
		Timeout:               r.Timeout,
		EnableCluster:         r.EnableCluster,
		UseSSL:                r.UseSSL,
		SSLInsecureSkipVerify: r.SSLInsecureSkipVerify,
	})
}
