package config

import (
	"fmt"
	"time"
)

const (
	defaultServerHost         = "0.0.0.0"
	defaultServerPort         = 8090
	defaultServerWriteTimeout = 60 * time.Second
	defaultServerReadTimeout  = 60 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:         defaultServerHost,
		Port:         defaultServerPort,
		WriteTimeout: defaultServerWriteTimeout,
		ReadTimeout:  defaultServerReadTimeout,
		IdleTimeout:  defaultServerIdleTimeout,
	}
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("server host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if cfg.WriteTimeout <= 0 || cfg.ReadTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	return nil
}

func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
