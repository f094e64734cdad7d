package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// loadState reads the persisted state. A fresh deployment has no state
// document yet and starts from an empty state.
func (s *Service) loadState(ctx context.Context) (*protocol.State, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Info().Msg("No protocol state found, starting from an empty ledger")
			return protocol.NewState(&s.cfg.Protocol), nil
		}
		return nil, err
	}

	state, err := protocol.RestoreState(&s.cfg.Protocol, snap)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().
		Uint64("total_backing", snap.TotalBacking).
		Uint64("total_supply", snap.TotalSupply).
		Int("validators", len(snap.Validators)).
		Msg("Protocol state restored")
	return state, nil
}

// LoadSnapshot assembles the persisted state as a protocol snapshot
func (s *Service) LoadSnapshot(ctx context.Context) (*protocol.Snapshot, error) {
	var (
		stateDoc      *model.ProtocolStateDocument
		validatorDocs []*model.ValidatorDocument
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		stateDoc, err = s.db.GetProtocolState(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		validatorDocs, err = s.db.GetAllValidators(ctx)
		if err != nil {
			return fmt.Errorf("failed to get validators: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	validators := make([]registry.Record, 0, len(validatorDocs))
	for _, doc := range validatorDocs {
		rec, err := doc.ToValidatorRecord()
		if err != nil {
			return nil, fmt.Errorf("invalid validator %d: %w", doc.ID, err)
		}
		validators = append(validators, rec)
	}

	return &protocol.Snapshot{
		TotalBacking:    stateDoc.TotalBacking,
		TotalSupply:     stateDoc.TotalSupply,
		PegRatio:        stateDoc.PegRatio,
		IdleBacking:     stateDoc.IdleBacking,
		HighestBidder:   types.ValidatorID(stateDoc.HighestBidder),
		ExhaustedPeriod: stateDoc.ExhaustedPeriod,
		NextValidatorID: types.ValidatorID(stateDoc.NextValidatorID),
		QueueSlots:      stateDoc.BurnQueueSlots(),
		Validators:      validators,
	}, nil
}

func stateDocument(changes *protocol.ChangeSet) *model.ProtocolStateDocument {
	return &model.ProtocolStateDocument{
		ID:              model.ProtocolStateID,
		TotalBacking:    changes.Ledger.TotalBacking(),
		TotalSupply:     changes.Ledger.TotalSupply(),
		PegRatio:        changes.Ledger.PegRatio(),
		IdleBacking:     changes.IdleBacking,
		HighestBidder:   uint64(changes.HighestBidder),
		ExhaustedPeriod: changes.ExhaustedPeriod,
		NextValidatorID: uint64(changes.NextValidatorID),
		BurnQueue:       model.BurnQueueToDocument(changes.QueueSlots),
		LastOperation:   changes.Operation,
		LastRound:       changes.Round,
	}
}
