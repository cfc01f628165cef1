package config

import (
	"errors"
	"time"
)

// ErrNoNicknames is returned by Validate when no nickname is configured.
var ErrNoNicknames = errors.New("config: at least one nickname is required")

// Config holds client configuration values.
type Config struct {
	GatewayURL      string        `mapstructure:"gateway_url" yaml:"gateway_url"`
	ServerName      string        `mapstructure:"server_name" yaml:"server_name"`
	Nicknames       []string      `mapstructure:"nicknames" yaml:"nicknames"`
	Channels        []string      `mapstructure:"channels" yaml:"channels"`
	QuitMessage     string        `mapstructure:"quit_message" yaml:"quit_message"`
	DiagAddr        string        `mapstructure:"diag_addr" yaml:"diag_addr"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		GatewayURL:      "ws://localhost:8080/irc",
		ServerName:      "localhost",
		Nicknames:       []string{"wirechat", "wirechat_", "wirechat__"},
		Channels:        []string{},
		QuitMessage:     "Leaving",
		DiagAddr:        "127.0.0.1:9090",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.GatewayURL != "" {
		c.GatewayURL = other.GatewayURL
	}
	if other.ServerName != "" {
		c.ServerName = other.ServerName
	}
	if len(other.Nicknames) > 0 {
		c.Nicknames = other.Nicknames
	}
	if len(other.Channels) > 0 {
		c.Channels = other.Channels
	}
	if other.QuitMessage != "" {
		c.QuitMessage = other.QuitMessage
	}
	if other.DiagAddr != "" {
		c.DiagAddr = other.DiagAddr
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
}

// Validate reports configuration the client cannot start with.
func (c Config) Validate() error {
	if len(c.Nicknames) == 0 {
		return ErrNoNicknames
	}
	return nil
}
