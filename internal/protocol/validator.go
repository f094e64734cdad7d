package protocol

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// authorize loads the record of id and checks that caller operates it
func (t *tx) authorize(caller types.Address, id types.ValidatorID) (registry.Record, error) {
	rec, err := t.state.Registry.Get(id)
	if err != nil {
		return registry.Record{}, err
	}
	if rec.Operator != caller {
		return registry.Record{}, types.Errorf(types.Unauthorized,
			"%s is not the operator of validator %s", caller, id)
	}
	return rec, nil
}

// RegisterValidator creates a NotDelegatable validator for operator, staking
// through escrow
func (p *Protocol) RegisterValidator(
	ctx context.Context, operator, escrow types.Address,
) (types.ValidatorID, error) {
	var id types.ValidatorID
	err := p.execute(ctx, "register_validator", func(t *tx) error {
		if operator == t.account || escrow == t.account {
			return types.Errorf(types.BadRequest, "the protocol account cannot operate a validator")
		}
		if operator == escrow {
			return types.Errorf(types.BadRequest, "operator and escrow must differ")
		}
		var err error
		id, err = t.state.Registry.Register(operator, escrow)
		if err != nil {
			return err
		}
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorRegistered,
			Validator: id,
			Account:   operator,
			Details:   map[string]any{"escrow": escrow},
		})
		return nil
	})
	if err != nil {
		return types.NoValidator, err
	}
	log.Ctx(ctx).Info().Stringer("validator", id).Str("operator", operator.String()).Msg("validator registered")
	return id, nil
}

// Commit moves amount of the operator's own stake into the escrow
func (p *Protocol) Commit(ctx context.Context, caller types.Address, id types.ValidatorID, amount uint64) error {
	return p.execute(ctx, "commit", func(t *tx) error {
		if amount == 0 {
			return types.Errorf(types.BadRequest, "commit amount must be positive")
		}
		rec, err := t.authorize(caller, id)
		if err != nil {
			return err
		}
		stake := rec.Commit + rec.Delegated
		if stake+amount < stake || stake+amount > t.cfg.MaxStakePerAccount {
			return types.Errorf(types.CapacityExceeded,
				"validator %s would hold more than %d", id, t.cfg.MaxStakePerAccount)
		}
		if _, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			rec.Commit += amount
			return nil
		}); err != nil {
			return err
		}
		t.emit(types.Payment(caller, rec.Escrow, amount))
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorCommitted,
			Validator: id,
			Account:   caller,
			Amount:    amount,
		})
		return nil
	})
}

// Uncommit returns amount of commit to the operator. Online validators must
// keep at least the minimum commit.
func (p *Protocol) Uncommit(ctx context.Context, caller types.Address, id types.ValidatorID, amount uint64) error {
	return p.execute(ctx, "uncommit", func(t *tx) error {
		if amount == 0 {
			return types.Errorf(types.BadRequest, "uncommit amount must be positive")
		}
		rec, err := t.authorize(caller, id)
		if err != nil {
			return err
		}
		if amount > rec.Commit {
			return types.Errorf(types.InsufficientFunds,
				"validator %s has %d committed, cannot uncommit %d", id, rec.Commit, amount)
		}
		if rec.Status != types.StatusNotDelegatable && rec.Commit-amount < t.cfg.MinCommit {
			return types.Errorf(types.InvalidState,
				"online validator %s must keep at least %d committed", id, t.cfg.MinCommit)
		}
		if _, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			rec.Commit -= amount
			return nil
		}); err != nil {
			return err
		}
		t.emit(types.Payment(rec.Escrow, rec.Operator, amount))
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorUncommitted,
			Validator: id,
			Account:   caller,
			Amount:    amount,
		})
		return nil
	})
}

// CloseValidator sweeps the balances of a validator and removes it.
// Delegated stake returns to idle backing and the commit to the operator.
func (p *Protocol) CloseValidator(ctx context.Context, caller types.Address, id types.ValidatorID) error {
	return p.execute(ctx, "close_validator", func(t *tx) error {
		rec, err := t.authorize(caller, id)
		if err != nil {
			return err
		}
		if rec.Status == types.StatusDelinquent || rec.Delinquency > 0 {
			return types.Errorf(types.InvalidState,
				"validator %s has unresolved delinquency and cannot be closed", id)
		}

		if rec.Status == types.StatusNeutral {
			t.emit(types.KeyRegOffline(rec.Escrow))
		}
		t.emit(
			types.Payment(rec.Escrow, t.account, rec.Delegated),
			types.Payment(rec.Escrow, rec.Operator, rec.Commit),
		)
		t.state.IdleBacking += rec.Delegated
		t.state.Queue.Remove(id)
		if t.state.HighestBidder == id {
			t.state.HighestBidder = types.NoValidator
		}
		if err := t.state.Registry.Close(id); err != nil {
			return err
		}

		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorClosed,
			Validator: id,
			Account:   caller,
			Amount:    rec.Delegated,
			Details:   map[string]any{"commit": rec.Commit},
		})
		return nil
	})
}
