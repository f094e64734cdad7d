package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("all required fields set", func(t *testing.T) {
		cfg := &PollerConfig{
			AuctionPollingInterval: 1 * time.Minute,
			DustPollingInterval:    3 * time.Minute,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Minute, cfg.DustPollingInterval)
	})

	t.Run("dust polling interval not set - should use default", func(t *testing.T) {
		cfg := &PollerConfig{
			AuctionPollingInterval: 1 * time.Minute,
			DustPollingInterval:    0, // not set
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultDustPollingInterval, cfg.DustPollingInterval)
	})

	t.Run("dust polling interval negative - should use default", func(t *testing.T) {
		cfg := &PollerConfig{
			AuctionPollingInterval: 1 * time.Minute,
			DustPollingInterval:    -1 * time.Minute, // negative
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultDustPollingInterval, cfg.DustPollingInterval)
	})

	t.Run("auction polling interval not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			AuctionPollingInterval: 0,
			DustPollingInterval:    2 * time.Minute,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auction-polling-interval must be positive")
	})
}
