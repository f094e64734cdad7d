package config

import (
	"fmt"
	"time"
)

const (
	defaultHostTimeout       = 10 * time.Second
	defaultHostMaxRetryTimes = 3
	defaultHostRetryInterval = 500 * time.Millisecond
)

// HostLedgerConfig defines the gateway used to read from and submit to the
// ledger the protocol runs on
type HostLedgerConfig struct {
	// URL of the host ledger gateway, including the protocol prefix
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func DefaultHostLedgerConfig() *HostLedgerConfig {
	return &HostLedgerConfig{
		Timeout:       defaultHostTimeout,
		MaxRetryTimes: defaultHostMaxRetryTimes,
		RetryInterval: defaultHostRetryInterval,
	}
}

func (cfg *HostLedgerConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("host ledger url is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("host ledger timeout should be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("host ledger max retry times should be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("host ledger retry interval should be positive")
	}

	return nil
}
