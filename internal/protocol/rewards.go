package protocol

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/peg"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils/state"
)

// RewardSettlement describes how a block payout was split
type RewardSettlement struct {
	Validator    types.ValidatorID `json:"validator"`
	Round        uint64            `json:"round"`
	Payout       uint64            `json:"payout"`
	Fee          uint64            `json:"fee"`
	FeeRecipient types.Address     `json:"fee_recipient"`
	Net          uint64            `json:"net"`
	OnTime       bool              `json:"on_time"`
}

func (t *tx) blockProposal(round uint64) (*types.BlockProposal, error) {
	current, err := t.currentRound()
	if err != nil {
		return nil, err
	}
	if round == 0 || round > current {
		return nil, types.Errorf(types.BadRequest, "round %d has not been produced yet", round)
	}
	proposal, err := t.host.BlockProposal(t.ctx, round)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to get proposal of round %d: %w", round, err))
	}
	if proposal == nil || proposal.Proposer.IsEmpty() {
		return nil, types.Errorf(types.NotFound, "no proposal known for round %d", round)
	}
	out := *proposal
	out.Round = round
	return &out, nil
}

// ReportBlock settles the payout of the block proposed in round. The
// commission goes to the operator when reported within
// OperatorReportMaxTime rounds, to the reporter otherwise, and the rest
// accrues to the protocol without issuing receipt tokens.
func (p *Protocol) ReportBlock(ctx context.Context, reporter types.Address, round uint64) (RewardSettlement, error) {
	var settlement RewardSettlement
	err := p.execute(ctx, "report_block", func(t *tx) error {
		proposal, err := t.blockProposal(round)
		if err != nil {
			return err
		}
		rec, err := t.state.Registry.GetByEscrow(proposal.Proposer)
		if err != nil {
			return err
		}
		if round <= rec.LastBlockReported {
			return types.Errorf(types.StaleReport,
				"round %d is not after the last reported block %d of validator %s",
				round, rec.LastBlockReported, rec.ID)
		}
		if !state.IsQualifiedState(rec.Status, types.QualifiedStatesForBlockReport()) {
			return types.Errorf(types.InvalidState,
				"validator %s is %s, its blocks settle through delinquency resolution", rec.ID, rec.Status)
		}
		// blocks older than an unresolved delinquency report cannot clear it
		if rec.Delinquency > 0 && round <= rec.LastDelinquencyReport {
			return types.Errorf(types.StaleReport,
				"round %d is not after the last delinquency report %d of validator %s",
				round, rec.LastDelinquencyReport, rec.ID)
		}

		settlement, err = t.settleReward(rec, reporter, proposal)
		if err != nil {
			return err
		}
		if _, err := t.state.Registry.Update(rec.ID, func(rec *registry.Record) error {
			rec.Delinquency = 0
			rec.LastBlockReported = round
			return nil
		}); err != nil {
			return err
		}

		t.event(types.ProtocolEvent{
			Type:      types.EventBlockReported,
			Validator: rec.ID,
			Account:   reporter,
			Amount:    proposal.Payout,
			Details: map[string]any{
				"block":         round,
				"fee":           settlement.Fee,
				"fee_recipient": settlement.FeeRecipient,
				"on_time":       settlement.OnTime,
			},
		})
		return nil
	})
	return settlement, err
}

// settleReward splits the payout of proposal between the fee recipient and
// the protocol
func (t *tx) settleReward(
	rec registry.Record, reporter types.Address, proposal *types.BlockProposal,
) (RewardSettlement, error) {
	current, err := t.currentRound()
	if err != nil {
		return RewardSettlement{}, err
	}
	fee, err := peg.MulDiv(proposal.Payout, t.cfg.ValidatorCommission, 100)
	if err != nil {
		return RewardSettlement{}, err
	}
	s := RewardSettlement{
		Validator: rec.ID,
		Round:     proposal.Round,
		Payout:    proposal.Payout,
		Fee:       fee,
		Net:       proposal.Payout - fee,
		OnTime:    current-proposal.Round <= t.cfg.OperatorReportMaxTime,
	}

	s.FeeRecipient = reporter
	if s.OnTime {
		s.FeeRecipient = rec.Operator
		if _, err := t.state.Registry.Update(rec.ID, func(rec *registry.Record) error {
			rec.Performance++
			return nil
		}); err != nil {
			return RewardSettlement{}, err
		}
	}

	if err := t.state.Ledger.Credit(s.Net, 0); err != nil {
		return RewardSettlement{}, err
	}
	t.state.IdleBacking += s.Net
	t.emit(
		types.Payment(rec.Escrow, s.FeeRecipient, s.Fee),
		types.Payment(rec.Escrow, t.account, s.Net),
	)
	return s, nil
}
