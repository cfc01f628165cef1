package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix            = "WIRECHAT"
	envConfigDefaultPath = "WIRECHAT_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "client.yaml"
)

// Load builds configuration from defaults, optional config file, env vars, and returns the resolved path.
// Precedence: defaults < config file < env vars < caller overrides (see UpdateFrom).
// A missing file is created with the defaults so users have something to edit.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	defaults := Default()
	path := resolveConfigPath(explicitPath)

	v := newViper(defaults)
	v.SetConfigFile(path)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist):
		if writeErr := writeDefaultConfig(path, defaults); writeErr != nil {
			warn(logger, writeErr, path, "failed to write default config")
		} else if logger != nil {
			logger.Info().Str("path", path).Msg("created default config")
		}
	default:
		return defaults, path, fmt.Errorf("read config: %w", err)
	}

	// Decode into a zero value: viper already holds the defaults, and decoding
	// over Default() would merge list values element by element.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults, path, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, path, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func newViper(defaults Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range map[string]any{
		"gateway_url":      defaults.GatewayURL,
		"server_name":      defaults.ServerName,
		"nicknames":        defaults.Nicknames,
		"channels":         defaults.Channels,
		"quit_message":     defaults.QuitMessage,
		"diag_addr":        defaults.DiagAddr,
		"log_level":        defaults.LogLevel,
		"shutdown_timeout": defaults.ShutdownTimeout,
	} {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func warn(logger *zerolog.Logger, err error, path, msg string) {
	if logger != nil {
		logger.Warn().Err(err).Str("path", path).Msg(msg)
	}
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wirechat", defaultConfigName)
	}
	return defaultConfigName
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
