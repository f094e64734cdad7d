package config

import (
	"errors"
	"time"
)

const defaultQueuePublishTimeout = 5 * time.Second

// QueueConfig configures the RabbitMQ queue protocol events are published to
type QueueConfig struct {
	User           string        `mapstructure:"queue_user"`
	Password       string        `mapstructure:"queue_password"`
	Url            string        `mapstructure:"url"`
	Name           string        `mapstructure:"name"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.User == "" {
		return errors.New("missing queue user")
	}
	if cfg.Password == "" {
		return errors.New("missing queue password")
	}
	if cfg.Url == "" {
		return errors.New("missing queue url")
	}
	if cfg.Name == "" {
		return errors.New("missing queue name")
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultQueuePublishTimeout
	}

	return nil
}
