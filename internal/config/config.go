package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Db       DbConfig         `mapstructure:"db"`
	Host     HostLedgerConfig `mapstructure:"host"`
	Protocol ProtocolConfig   `mapstructure:"protocol"`
	Poller   PollerConfig     `mapstructure:"poller"`
	Server   ServerConfig     `mapstructure:"server"`
	Metrics  MetricsConfig    `mapstructure:"metrics"`
	Queue    *QueueConfig     `mapstructure:"queue"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return err
	}

	if err := cfg.Host.Validate(); err != nil {
		return err
	}

	if err := cfg.Protocol.Validate(); err != nil {
		return err
	}

	if err := cfg.Poller.Validate(); err != nil {
		return err
	}

	if err := cfg.Server.Validate(); err != nil {
		return err
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}

	// queue is optional, events are not published without it
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// New returns a fully parsed Config object from a given file directory
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	// environment variables override the file, e.g. PROTOCOL_MIN-COMMIT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	cfg := Config{
		Host:     *DefaultHostLedgerConfig(),
		Protocol: *DefaultProtocolConfig(),
		Poller:   *DefaultPollerConfig(),
		Server:   *DefaultServerConfig(),
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", cfgFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
