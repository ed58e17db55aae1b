package config

import (
	"jpqlkit/validation"
)

var (
	supportedDrivers = []string{"sqlite", "sqlite3", "mysql", "postgres", "postgresql", "pgx"}
	supportedLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate 校验配置，返回第一个错误（ErrCodeValidation）
func Validate(cfg *Config) error {
	db := cfg.Database
	return validation.First(
		validation.ValidateRequired(db.Driver, "database.driver"),
		validation.ValidateEnum(db.Driver, "database.driver", supportedDrivers),
		validation.ValidateRequired(db.DSN, "database.dsn"),
		validation.ValidateNonNegative(db.MaxOpenConns, "database.max_open_conns"),
		validation.ValidateNonNegative(db.MaxIdleConns, "database.max_idle_conns"),
		validation.ValidateNonNegative(db.ConnMaxLifetime, "database.conn_max_lifetime"),
		validation.ValidateNonNegative(db.ConnMaxIdleTime, "database.conn_max_idle_time"),
		validation.ValidateEnum(cfg.Logging.Level, "logging.level", supportedLevels),
	)
}
