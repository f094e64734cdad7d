package services

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/clients/hostledger"
	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// EventPublisher receives the events of every committed operation
type EventPublisher interface {
	PublishEvents(ctx context.Context, events []types.ProtocolEvent)
}

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	host      hostledger.HostLedgerInterface
	publisher EventPublisher
	protocol  *protocol.Protocol
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	host hostledger.HostLedgerInterface,
	publisher EventPublisher,
) *Service {
	return &Service{
		cfg:       cfg,
		db:        db,
		host:      host,
		publisher: publisher,
	}
}

// Protocol returns the protocol instance, nil until Bootstrap succeeded
func (s *Service) Protocol() *protocol.Protocol {
	return s.protocol
}

// Bootstrap loads the persisted protocol state and builds the protocol on
// top of it. The service commits every operation of the protocol.
func (s *Service) Bootstrap(ctx context.Context) error {
	state, err := s.loadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load protocol state: %w", err)
	}
	s.protocol = protocol.New(&s.cfg.Protocol, s.host, s, state)
	return nil
}

// StartPollers starts the background loops, Bootstrap must have succeeded
func (s *Service) StartPollers(ctx context.Context) {
	s.StartAuctionPoller(ctx)
	s.StartDustPoller(ctx)
}
