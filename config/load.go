package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"jpqlkit/errors"
)

// 环境变量名，优先级高于配置文件
const (
	EnvDatabaseDriver    = "JPQLKIT_DATABASE_DRIVER"
	EnvDatabaseDSN       = "JPQLKIT_DATABASE_DSN"
	EnvLoggingLevel      = "JPQLKIT_LOGGING_LEVEL"
	EnvLegacyHavingGuard = "JPQLKIT_BUILDER_LEGACY_HAVING_GUARD"
)

// LoadConfig 读取 YAML 配置文件，依次应用环境变量覆盖、默认值并校验
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(context.Background(), err, errors.ErrCodeInvalidInput,
			fmt.Sprintf("读取配置文件失败: %s", path))
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件 %q 失败: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析 YAML 内容，处理流程与 LoadConfig 相同
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(context.Background(), err, errors.ErrCodeInvalidInput, "解析配置失败")
	}

	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return &cfg, nil
}

// FromEnv 不读取文件，只使用默认值与环境变量
func FromEnv() (*Config, error) {
	return Parse(nil)
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvDatabaseDriver); val != "" {
		cfg.Database.Driver = val
	}
	if val := os.Getenv(EnvDatabaseDSN); val != "" {
		cfg.Database.DSN = val
	}
	if val := os.Getenv(EnvLoggingLevel); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvLegacyHavingGuard); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Builder.LegacyHavingGuard = b
		}
	}
}
