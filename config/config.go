// Package config 从 YAML 文件加载 jpqlkit 的运行配置
package config

import (
	core "jpqlkit/data/db"
	"jpqlkit/jpql"
	"jpqlkit/logging"
)

// Config 根配置
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Builder  BuilderConfig  `yaml:"builder"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`  // 秒
	ConnMaxIdleTime int    `yaml:"conn_max_idle_time"` // 秒
}

// BuilderConfig jpql.Builder 的行为开关
type BuilderConfig struct {
	// LegacyHavingGuard 未设置 GROUP BY 时丢弃 HAVING，见 jpql.WithLegacyHavingGuard
	LegacyHavingGuard bool `yaml:"legacy_having_guard"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// DBConfig 转换为 data/db 的连接配置
func (c *Config) DBConfig() core.DBConfig {
	return core.DBConfig{
		Driver:          c.Database.Driver,
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
	}
}

// NewLogger 按日志配置创建 Logger；级别已在 Validate 中校验
func (c *Config) NewLogger() logging.Logger {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logging.InfoLevel
	}
	return logging.NewStdLoggerWithLevel(c.Logging.Prefix, level)
}

// BuilderOptions 转换为 jpql.New 的选项
func (c *Config) BuilderOptions(logger logging.Logger) []jpql.Option {
	opts := []jpql.Option{jpql.WithLogger(logger)}
	if c.Builder.LegacyHavingGuard {
		opts = append(opts, jpql.WithLegacyHavingGuard())
	}
	return opts
}
