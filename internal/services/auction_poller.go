package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/utils/poller"
)

// StartAuctionPoller periodically delegates idle backing to the highest bidder
func (s *Service) StartAuctionPoller(ctx context.Context) {
	auctionPoller := poller.NewPoller(
		"auction",
		s.cfg.Poller.AuctionPollingInterval,
		s.delegateIdle,
	)
	go auctionPoller.Start(ctx)
}

func (s *Service) delegateIdle(ctx context.Context) error {
	id, amount, err := s.protocol.DelegateIdle(ctx)
	if err != nil {
		return err
	}
	if amount == 0 {
		log.Ctx(ctx).Debug().Msg("Nothing to delegate")
		return nil
	}

	log.Ctx(ctx).Info().
		Stringer("validator", id).
		Uint64("amount", amount).
		Msg("Delegated idle backing")
	return nil
}
