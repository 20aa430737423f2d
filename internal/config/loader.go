package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "GRIDIRON_PROPHET"
)

// Load reads configuration from the YAML file at configPath, expanding ${VAR}
// placeholders from the environment first. Environment variables prefixed
// GRIDIRON_PROPHET_ override file values. The file must exist.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if err := readConfigFile(v, pathOrDefault(configPath), true); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// LoadWithDefaults behaves like Load but fills optional fields with defaults
// and tolerates a missing config file, so a fully env-driven deployment works
// without one.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := newViper()

	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("prediction.recent_window", 5)
	v.SetDefault("prediction.prior_seasons", 3)
	v.SetDefault("prediction.home_field_advantage", 2.5)
	v.SetDefault("prediction.min_edge", 3.0)
	v.SetDefault("prediction.league_avg_points", 21.0)
	v.SetDefault("prediction.min_importance", 0.15)
	v.SetDefault("odds_api.region", "us")
	v.SetDefault("classifier.model_version", "latest")

	if err := readConfigFile(v, pathOrDefault(configPath), false); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func pathOrDefault(configPath string) string {
	if configPath == "" {
		return defaultConfigPath
	}
	return configPath
}

func readConfigFile(v *viper.Viper, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return fmt.Errorf("config file not found at %s: %w", path, err)
			}
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
