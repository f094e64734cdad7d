package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/utils/poller"
)

// StartDustPoller periodically credits untracked protocol balance to the ledger
func (s *Service) StartDustPoller(ctx context.Context) {
	dustPoller := poller.NewPoller(
		"dust",
		s.cfg.Poller.DustPollingInterval,
		s.sweepDust,
	)
	go dustPoller.Start(ctx)
}

func (s *Service) sweepDust(ctx context.Context) error {
	swept, err := s.protocol.SweepDust(ctx)
	if err != nil {
		return err
	}
	if swept > 0 {
		log.Ctx(ctx).Info().Uint64("amount", swept).Msg("Swept dust into backing")
	}
	return nil
}
