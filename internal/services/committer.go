package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/protocol"
)

// Commit persists the change set and submits its effects to the host ledger
// in one database transaction. The host submission runs last so a rejected
// group aborts the transaction. Events are published once committed.
func (s *Service) Commit(ctx context.Context, changes *protocol.ChangeSet) error {
	groupID := uuid.New().String()
	// the driver may run the callback again on transient errors, the host
	// must see the group only once
	submitted := false

	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		stateDoc := stateDocument(changes)
		stateDoc.UpdatedAt = time.Now().UTC()
		if err := s.db.SaveProtocolState(txCtx, stateDoc); err != nil {
			return fmt.Errorf("failed to save protocol state: %w", err)
		}

		for _, rec := range changes.Updated {
			if err := s.db.UpsertValidator(txCtx, model.FromValidatorRecord(rec)); err != nil {
				return fmt.Errorf("failed to save validator %s: %w", rec.ID, err)
			}
		}
		for _, id := range changes.Removed {
			err := s.db.DeleteValidator(txCtx, uint64(id))
			if err != nil && !db.IsNotFoundError(err) {
				return fmt.Errorf("failed to delete validator %s: %w", id, err)
			}
		}

		if len(changes.Effects) == 0 {
			return nil
		}
		group := model.NewEffectGroupDocument(groupID, changes.Operation, changes.Round, changes.Effects)
		if err := s.db.SaveEffectGroup(txCtx, group); err != nil {
			return fmt.Errorf("failed to save effect group: %w", err)
		}
		if submitted {
			return nil
		}
		if err := s.host.Submit(txCtx, changes.Effects); err != nil {
			return err
		}
		submitted = true
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("operation", changes.Operation).
			Bool("effects_submitted", submitted).
			Msg("failed to commit operation")
		return err
	}

	log.Ctx(ctx).Debug().
		Str("operation", changes.Operation).
		Str("effect_group", groupID).
		Int("validators_updated", len(changes.Updated)).
		Msg("operation persisted")
	s.publisher.PublishEvents(ctx, changes.Events)
	return nil
}
