package options

import (
	"time"

	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/ifkeeper/keeper-commons-utils/pkg/db"
)

// MySQLOptions 是 MySQL 连接参数.
type MySQLOptions struct {
	Host                  string        `json:"host"                     mapstructure:"host"                     validate:"required"`
	Username              string        `json:"username"                 mapstructure:"username"`
	Password              string        `json:"-"                        mapstructure:"password"`
	Database              string        `json:"database"                 mapstructure:"database"                 validate:"required"`
	MaxIdleConnections    int           `json:"max-idle-connections"     mapstructure:"max-idle-connections"     validate:"gte=0"`
	MaxOpenConnections    int           `json:"max-open-connections"     mapstructure:"max-open-connections"     validate:"gte=0"`
	MaxConnectionLifeTime time.Duration `json:"max-connection-life-time" mapstructure:"max-connection-life-time"`
	LogLevel              int           `json:"log-level"                mapstructure:"log-level"                validate:"min=0,max=3"`
	Timeout               time.Duration `json:"timeout"                  mapstructure:"timeout"`
}

// NewMySQLOptions 返回默认参数.
func NewMySQLOptions() *MySQLOptions {
	return &MySQLOptions{
		Host:                  "127.0.0.1:3306",
		Username:              "",
		Password:              "",
		Database:              "feed",
		MaxIdleConnections:    20,
		MaxOpenConnections:    100,
		MaxConnectionLifeTime: 10 * time.Second,
		LogLevel:              1,
		Timeout:               3 * time.Second,
	}
}

// Validate 校验参数.
func (o *MySQLOptions) Validate() []error {
	return validateStruct(o)
}

// AddFlags 注册 mysql.* 标志.
func (o *MySQLOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Host, "mysql.host", o.Host, "MySQL service host address.")
	fs.StringVar(&o.Username, "mysql.username", o.Username, "Username for access to mysql service.")
	fs.StringVar(&o.Password, "mysql.password", o.Password, "Password for access to mysql, should be used pair with password.")
	fs.StringVar(&o.Database, "mysql.database", o.Database, "Database name for the server to use.")
	fs.IntVar(&o.MaxIdleConnections, "mysql.max-idle-connections", o.MaxIdleConnections, "Maximum idle connections allowed to connect to mysql.")
	fs.IntVar(&o.MaxOpenConnections, "mysql.max-open-connections", o.MaxOpenConnections, "Maximum open connections allowed to connect to mysql.")
	fs.DurationVar(&o.MaxConnectionLifeTime, "mysql.max-connection-life-time", o.MaxConnectionLifeTime, "Maximum connection life time allowed to connect to mysql.")
	fs.IntVar(&o.LogLevel, "mysql.log-level", o.LogLevel, "Specify gorm log level. 0 silent, 1 error, 2 warn, 3 info.")
	fs.DurationVar(&o.Timeout, "mysql.timeout", o.Timeout, "Default timeout for a single SQL statement.")
}

// DBOptions 转换为 pkg/db 的参数.
func (o *MySQLOptions) DBOptions() *db.Options {
	return &db.Options{
		Host:                  o.Host,
		Username:              o.Username,
		Password:              o.Password,
		Database:              o.Database,
		MaxIdleConnections:    o.MaxIdleConnections,
		MaxOpenConnections:    o.MaxOpenConnections,
		MaxConnectionLifeTime: o.MaxConnectionLifeTime,
		LogLevel:              o.LogLevel,
		Timeout:               o.Timeout,
	}
}

// NewClient 打开 MySQL 连接.
func (o *MySQLOptions) NewClient() (*gorm.DB, error) {
	return db.New(o.DBOptions())
}
