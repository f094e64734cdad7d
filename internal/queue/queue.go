package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// channel is the part of *amqp.Channel the manager uses
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// QueueManager publishes committed protocol events. A manager built without
// a queue config drops every event.
type QueueManager struct {
	mu      sync.Mutex
	name    string
	timeout time.Duration
	conn    *amqp.Connection
	channel channel
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	if cfg == nil {
		log.Info().Msg("Queue is not configured, protocol events will not be published")
		return &QueueManager{}, nil
	}

	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, cfg.Url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}
	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(cfg.Name, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.Name, err)
	}

	return &QueueManager{
		name:    cfg.Name,
		timeout: cfg.PublishTimeout,
		conn:    conn,
		channel: ch,
	}, nil
}

func (qm *QueueManager) enabled() bool {
	return qm.channel != nil
}

// PublishEvents sends events in order. Events are published after their
// operation committed, so failures are logged and counted but not returned.
func (qm *QueueManager) PublishEvents(ctx context.Context, events []types.ProtocolEvent) {
	if !qm.enabled() || len(events) == 0 {
		return
	}
	qm.mu.Lock()
	defer qm.mu.Unlock()

	for _, event := range events {
		if err := qm.publish(ctx, event); err != nil {
			metrics.RecordQueueSendError()
			log.Ctx(ctx).Error().Err(err).
				Str("event", event.Type.String()).
				Msg("failed to publish protocol event")
		}
	}
}

func (qm *QueueManager) publish(ctx context.Context, event types.ProtocolEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if qm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, qm.timeout)
		defer cancel()
	}
	return qm.channel.PublishWithContext(ctx, "", qm.name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Type:         event.Type.String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")
	qm.mu.Lock()
	defer qm.mu.Unlock()
	if qm.channel != nil {
		if err := qm.channel.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue channel")
		}
		qm.channel = nil
	}
	if qm.conn != nil {
		if err := qm.conn.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue connection")
		}
		qm.conn = nil
	}
}
