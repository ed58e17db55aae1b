package config

const (
	DefaultDatabaseDriver = "sqlite"
	DefaultDatabaseDSN    = ":memory:"
	DefaultLoggingLevel   = "info"
	DefaultLoggingPrefix  = "[jpqlkit]"
)

// ApplyDefaults 为未设置的字段填充默认值。
//
// sqlite 内存库按连接隔离，未显式配置时把最大连接数限制为 1。
func ApplyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == DefaultDatabaseDriver {
		cfg.Database.DSN = DefaultDatabaseDSN
	}
	if cfg.Database.DSN == DefaultDatabaseDSN && cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Prefix == "" {
		cfg.Logging.Prefix = DefaultLoggingPrefix
	}
}

// Default 返回只包含默认值的配置
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
