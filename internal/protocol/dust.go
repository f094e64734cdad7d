package protocol

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils"
)

// SweepDust credits backing that reached the protocol account outside of any
// operation, e.g. direct transfers, to idle backing. No receipt tokens are
// issued so the peg rises. It returns the amount swept.
func (p *Protocol) SweepDust(ctx context.Context) (uint64, error) {
	var dust uint64
	err := p.execute(ctx, "sweep_dust", func(t *tx) error {
		balance, err := t.host.Balance(t.ctx, t.account)
		if err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to get protocol balance: %w", err))
		}
		minBalance, err := t.host.MinBalance(t.ctx, t.account)
		if err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to get protocol min balance: %w", err))
		}
		dust = utils.SaturatingSub(utils.SaturatingSub(balance, minBalance), t.state.IdleBacking)
		if dust == 0 {
			t.noop = true
			return nil
		}

		if err := t.state.Ledger.Credit(dust, 0); err != nil {
			return err
		}
		t.state.IdleBacking += dust
		t.event(types.ProtocolEvent{
			Type:    types.EventDustSwept,
			Account: t.account,
			Amount:  dust,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dust, nil
}
