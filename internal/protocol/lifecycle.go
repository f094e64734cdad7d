package protocol

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils/state"
)

// setStatus moves rec to next, rejecting transitions the state machine does
// not allow
func setStatus(rec *registry.Record, next types.ValidatorStatus) error {
	if !state.IsQualifiedStateForValidatorStateChange(rec.Status, next) {
		return types.Errorf(types.InvalidState,
			"validator %s cannot move from %s to %s", rec.ID, rec.Status, next)
	}
	rec.Status = next
	return nil
}

// clearBidder drops id as highest bidder
func (t *tx) clearBidder(id types.ValidatorID) {
	if t.state.HighestBidder == id {
		t.state.HighestBidder = types.NoValidator
	}
}

func validateKeys(keys types.ParticipationKeys, round uint64) error {
	if len(keys.VoteKey) == 0 || len(keys.SelectionKey) == 0 || len(keys.StateProofKey) == 0 {
		return types.Errorf(types.BadRequest, "vote, selection and state proof keys are required")
	}
	if keys.VoteKeyDilution == 0 {
		return types.Errorf(types.BadRequest, "vote key dilution must be positive")
	}
	if keys.VoteFirstValid > round || keys.VoteLastValid <= round {
		return types.Errorf(types.BadRequest,
			"participation keys valid for rounds [%d, %d] do not cover round %d",
			keys.VoteFirstValid, keys.VoteLastValid, round)
	}
	return nil
}

// GoOnline registers the escrow's participation keys. The validator becomes
// Neutral, or Delinquent again when it went offline with unresolved
// delinquency.
func (p *Protocol) GoOnline(
	ctx context.Context, caller types.Address, id types.ValidatorID, keys types.ParticipationKeys,
) error {
	return p.execute(ctx, "go_online", func(t *tx) error {
		rec, err := t.authorize(caller, id)
		if err != nil {
			return err
		}
		if !state.IsQualifiedState(rec.Status, types.QualifiedStatesForGoOnline()) {
			return types.Errorf(types.InvalidState, "validator %s is already %s", id, rec.Status)
		}
		if rec.Commit < t.cfg.MinCommit {
			return types.Errorf(types.InsufficientFunds,
				"validator %s has %d committed, at least %d is required", id, rec.Commit, t.cfg.MinCommit)
		}

		round, err := t.currentRound()
		if err != nil {
			return err
		}
		if err := validateKeys(keys, round); err != nil {
			return err
		}
		balance, err := t.host.Balance(t.ctx, rec.Escrow)
		if err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to get balance of %s: %w", rec.Escrow, err))
		}
		minBalance, err := t.host.MinBalance(t.ctx, rec.Escrow)
		if err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to get min balance of %s: %w", rec.Escrow, err))
		}
		if balance < minBalance+t.cfg.KeyRegFee {
			return types.Errorf(types.InsufficientFunds,
				"escrow %s holds %d, %d is required to go online", rec.Escrow, balance, minBalance+t.cfg.KeyRegFee)
		}

		next := types.StatusNeutral
		if rec.Delinquency > 0 {
			next = types.StatusDelinquent
		}
		if _, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			// the delinquency window restarts when the validator comes back
			rec.LastDelinquencyReport = max(rec.LastDelinquencyReport, round)
			return setStatus(rec, next)
		}); err != nil {
			return err
		}

		t.emit(types.KeyRegOnline(rec.Escrow, keys))
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorOnline,
			Validator: id,
			Account:   rec.Escrow,
			Details:   map[string]any{"status": next},
		})
		return nil
	})
}

// GoOffline takes a validator out of consensus participation and the auction
func (p *Protocol) GoOffline(ctx context.Context, caller types.Address, id types.ValidatorID) error {
	return p.execute(ctx, "go_offline", func(t *tx) error {
		rec, err := t.authorize(caller, id)
		if err != nil {
			return err
		}
		if rec.Status == types.StatusNotDelegatable {
			t.noop = true
			return nil
		}
		if _, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			return setStatus(rec, types.StatusNotDelegatable)
		}); err != nil {
			return err
		}
		t.clearBidder(id)

		t.emit(types.KeyRegOffline(rec.Escrow))
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorOffline,
			Validator: id,
			Account:   rec.Escrow,
		})
		return nil
	})
}

// ReportDelinquency flags an online validator that has not proposed a block
// for DelinquencyRounds rounds
func (p *Protocol) ReportDelinquency(ctx context.Context, id types.ValidatorID) error {
	return p.execute(ctx, "report_delinquency", func(t *tx) error {
		rec, err := t.state.Registry.Get(id)
		if err != nil {
			return err
		}
		if !state.IsQualifiedState(rec.Status, types.QualifiedStatesForDelinquencyReport()) {
			return types.Errorf(types.InvalidState, "validator %s is %s and cannot be reported", id, rec.Status)
		}
		round, err := t.currentRound()
		if err != nil {
			return err
		}
		since := max(rec.LastBlockReported, rec.LastDelinquencyReport)
		if round <= since+t.cfg.DelinquencyRounds {
			return types.Errorf(types.StaleReport,
				"validator %s was last seen at round %d, delinquency can be reported after round %d",
				id, since, since+t.cfg.DelinquencyRounds)
		}

		updated, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			rec.Delinquency++
			rec.LastDelinquencyReport = round
			return setStatus(rec, types.StatusDelinquent)
		})
		if err != nil {
			return err
		}
		t.clearBidder(id)

		t.event(types.ProtocolEvent{
			Type:      types.EventDelinquencyReported,
			Validator: id,
			Details:   map[string]any{"delinquency": updated.Delinquency},
		})
		return nil
	})
}

// SolveDelinquency settles a block the delinquent validator proposed and
// works its delinquency counter down by one. The validator is Neutral again
// once the counter reaches zero.
func (p *Protocol) SolveDelinquency(
	ctx context.Context, reporter types.Address, id types.ValidatorID, round uint64,
) (RewardSettlement, error) {
	var settlement RewardSettlement
	err := p.execute(ctx, "solve_delinquency", func(t *tx) error {
		rec, err := t.state.Registry.Get(id)
		if err != nil {
			return err
		}
		if rec.Status != types.StatusDelinquent {
			return types.Errorf(types.InvalidState, "validator %s is %s, not delinquent", id, rec.Status)
		}
		if round <= rec.LastDelinquencyReport || round <= rec.LastBlockReported {
			return types.Errorf(types.StaleReport,
				"round %d is not after the last report of validator %s", round, id)
		}
		proposal, err := t.blockProposal(round)
		if err != nil {
			return err
		}
		if proposal.Proposer != rec.Escrow {
			return types.Errorf(types.Unauthorized,
				"round %d was proposed by %s, not by validator %s", round, proposal.Proposer, id)
		}

		settlement, err = t.settleReward(rec, reporter, proposal)
		if err != nil {
			return err
		}
		updated, err := t.state.Registry.Update(id, func(rec *registry.Record) error {
			if rec.Delinquency > 0 {
				rec.Delinquency--
			}
			rec.LastBlockReported = round
			if rec.Delinquency == 0 {
				return setStatus(rec, types.StatusNeutral)
			}
			return nil
		})
		if err != nil {
			return err
		}

		t.event(types.ProtocolEvent{
			Type:      types.EventDelinquencySolved,
			Validator: id,
			Account:   reporter,
			Amount:    proposal.Payout,
			Details: map[string]any{
				"block":       round,
				"delinquency": updated.Delinquency,
				"status":      updated.Status,
			},
		})
		return nil
	})
	return settlement, err
}
