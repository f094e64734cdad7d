package protocol

import (
	"context"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils"
)

// Bid offers a Neutral validator as the next recipient of delegated stake.
// The least saturated validator, the one with the lowest buffer, wins and
// ties keep the incumbent. It reports whether the candidate is now the
// highest bidder.
func (p *Protocol) Bid(ctx context.Context, id types.ValidatorID) (bool, error) {
	var won bool
	err := p.execute(ctx, "bid", func(t *tx) error {
		candidate, err := t.state.Registry.Get(id)
		if err != nil {
			return err
		}
		if candidate.Status != types.StatusNeutral {
			return types.Errorf(types.InvalidState,
				"validator %s is %s and cannot bid", id, candidate.Status)
		}
		if t.state.HighestBidder == id {
			won = true
			t.noop = true
			return nil
		}

		incumbent, ok := t.neutralHighestBidder()
		if ok && candidate.Buffer >= incumbent.Buffer {
			t.noop = true
			return nil
		}

		t.state.HighestBidder = id
		won = true
		t.event(types.ProtocolEvent{
			Type:      types.EventBidAccepted,
			Validator: id,
			Details:   map[string]any{"buffer": candidate.Buffer},
		})
		return nil
	})
	return won, err
}

// neutralHighestBidder returns the current highest bidder when it can still
// receive stake
func (t *tx) neutralHighestBidder() (registry.Record, bool) {
	if t.state.HighestBidder.IsNone() {
		return registry.Record{}, false
	}
	rec, err := t.state.Registry.Get(t.state.HighestBidder)
	if err != nil || rec.Status != types.StatusNeutral {
		return registry.Record{}, false
	}
	return rec, true
}

// Delegate moves amount of idle backing to the highest bidder
func (p *Protocol) Delegate(ctx context.Context, amount uint64) (types.ValidatorID, error) {
	var bidder types.ValidatorID
	err := p.execute(ctx, "delegate", func(t *tx) error {
		var err error
		bidder, err = t.delegate(amount)
		return err
	})
	if err != nil {
		return types.NoValidator, err
	}
	return bidder, nil
}

// DelegateIdle delegates as much idle backing as one round allows to the
// highest bidder. Nothing happens when there is no Neutral bidder or the
// amount would be below the minimum delegation.
func (p *Protocol) DelegateIdle(ctx context.Context) (types.ValidatorID, uint64, error) {
	var (
		bidder types.ValidatorID
		amount uint64
	)
	err := p.execute(ctx, "delegate_idle", func(t *tx) error {
		rec, ok := t.neutralHighestBidder()
		if !ok {
			t.noop = true
			return nil
		}
		headroom := utils.SaturatingSub(t.cfg.MaxStakePerAccount, rec.Commit+rec.Delegated)
		amount = min(t.state.IdleBacking, t.cfg.MaxDelegationPerRound, headroom)
		if amount == 0 || amount < t.cfg.MinDelegation {
			amount = 0
			t.noop = true
			return nil
		}
		var err error
		bidder, err = t.delegate(amount)
		return err
	})
	if err != nil {
		return types.NoValidator, 0, err
	}
	return bidder, amount, nil
}

func (t *tx) delegate(amount uint64) (types.ValidatorID, error) {
	if amount == 0 {
		return types.NoValidator, types.Errorf(types.BadRequest, "delegation amount must be positive")
	}
	rec, ok := t.neutralHighestBidder()
	if !ok {
		return types.NoValidator, types.Errorf(types.InvalidState, "there is no Neutral highest bidder")
	}
	if amount > t.state.IdleBacking {
		return types.NoValidator, types.Errorf(types.InsufficientFunds,
			"idle backing %d cannot cover delegation of %d", t.state.IdleBacking, amount)
	}
	stake := rec.Commit + rec.Delegated
	if stake+amount < stake || stake+amount > t.cfg.MaxStakePerAccount {
		return types.NoValidator, types.Errorf(types.CapacityExceeded,
			"validator %s would hold more than %d", rec.ID, t.cfg.MaxStakePerAccount)
	}

	if _, err := t.state.Registry.Update(rec.ID, func(rec *registry.Record) error {
		rec.Delegated += amount
		return nil
	}); err != nil {
		return types.NoValidator, err
	}
	t.state.IdleBacking -= amount
	t.emit(types.Payment(t.account, rec.Escrow, amount))
	t.event(types.ProtocolEvent{
		Type:      types.EventStakeDelegated,
		Validator: rec.ID,
		Account:   rec.Escrow,
		Amount:    amount,
	})
	return rec.ID, nil
}
