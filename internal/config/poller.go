package config

import (
	"errors"
	"time"
)

const (
	defaultAuctionPollingInterval = 30 * time.Second
	defaultDustPollingInterval    = 10 * time.Minute
)

type PollerConfig struct {
	AuctionPollingInterval time.Duration `mapstructure:"auction-polling-interval"`
	DustPollingInterval    time.Duration `mapstructure:"dust-polling-interval"`
}

func DefaultPollerConfig() *PollerConfig {
	return &PollerConfig{
		AuctionPollingInterval: defaultAuctionPollingInterval,
		DustPollingInterval:    defaultDustPollingInterval,
	}
}

func (cfg *PollerConfig) Validate() error {
	if cfg.AuctionPollingInterval <= 0 {
		return errors.New("auction-polling-interval must be positive")
	}

	// dust sweeping is optional, a non-positive interval falls back to the default
	if cfg.DustPollingInterval <= 0 {
		cfg.DustPollingInterval = defaultDustPollingInterval
	}

	return nil
}
