// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the per-environment YAML file and environment
// variables, validates it, and returns the resulting Config.
func Load() (*Config, *viper.Viper, error) {
	// missing env files are fine
	_ = godotenv.Load(".env.local", ".env")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigFile(fmt.Sprintf("./configs/%s.yaml", env))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = env

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, v, nil
}

// Watch re-reads and re-validates the config file whenever it changes on
// disk and hands the fresh Config to onChange. Invalid edits are logged and
// ignored; the previous configuration stays active.
func Watch(v *viper.Viper, log *slog.Logger, onChange func(*Config)) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			log.Warn("ignoring config change, unmarshal failed", "file", e.Name, "error", err)
			return
		}

		if err := validate.Struct(cfg); err != nil {
			log.Warn("ignoring config change, validation failed", "file", e.Name, "error", err)
			return
		}

		log.Info("configuration reloaded", "file", e.Name)
		onChange(&cfg)
	})

	v.WatchConfig()
}
