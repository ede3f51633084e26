// Package config loads the application configuration from file and
// environment using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	shared "rentra/internal/shared/config"
)

// Config is the full application configuration tree.
type Config struct {
	Server    shared.ServerConfig    `mapstructure:"server"`
	Database  shared.DatabaseConfig  `mapstructure:"database"`
	Logger    shared.LoggerConfig    `mapstructure:"logger"`
	Redis     shared.RedisConfig     `mapstructure:"redis"`
	Auth      shared.AuthConfig      `mapstructure:"auth"`
	Email     shared.EmailConfig     `mapstructure:"email"`
	Rental    shared.RentalConfig    `mapstructure:"rental"`
	Timesheet shared.TimesheetConfig `mapstructure:"timesheet"`
}

// Load reads configuration from the given file (or the default search
// paths when empty) and the RENTRA_* environment. Environment values
// override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RENTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults plus environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "rentra")
	v.SetDefault("database.database", "rentra")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_exp_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.permission_cache_ttl_seconds", 60)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.port", 587)

	v.SetDefault("rental.currency", "IDR")
	v.SetDefault("rental.timezone", "Asia/Jakarta")

	v.SetDefault("timesheet.standard_hours", 8)
}
