//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

func TestProtocolState(t *testing.T) {
	ctx := context.Background()

	_, err := testDB.GetProtocolState(ctx)
	require.True(t, db.IsNotFoundError(err))

	state := &model.ProtocolStateDocument{
		TotalBacking:    2_000,
		TotalSupply:     1_500,
		PegRatio:        1_333_333,
		IdleBacking:     2_000,
		NextValidatorID: 3,
		BurnQueue:       model.BurnQueueToDocument([]types.ValidatorID{2, 0, 1}),
		LastOperation:   "mint",
		LastRound:       42,
		UpdatedAt:       time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, testDB.SaveProtocolState(ctx, state))

	state.IdleBacking = 1_000
	state.LastOperation = "delegate"
	require.NoError(t, testDB.SaveProtocolState(ctx, state))

	loaded, err := testDB.GetProtocolState(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ProtocolStateID, loaded.ID)
	assert.Equal(t, uint64(1_000), loaded.IdleBacking)
	assert.Equal(t, "delegate", loaded.LastOperation)
	assert.Equal(t, []types.ValidatorID{2, 0, 1}, loaded.BurnQueueSlots())
}

func TestEffectGroup(t *testing.T) {
	ctx := context.Background()
	from := types.Address("4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi")
	effects := []types.Effect{types.Payment(from, from, 10)}

	first := model.NewEffectGroupDocument("group-1", "mint", 10, effects)
	require.NoError(t, testDB.SaveEffectGroup(ctx, first))
	err := testDB.SaveEffectGroup(ctx, first)
	assert.True(t, db.IsDuplicateKeyError(err))

	second := model.NewEffectGroupDocument("group-2", "burn", 11, effects)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, testDB.SaveEffectGroup(ctx, second))

	groups, err := testDB.GetEffectGroups(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "group-2", groups[0].ID)

	mints, err := testDB.GetEffectGroups(ctx, "mint", 10)
	require.NoError(t, err)
	require.Len(t, mints, 1)
	assert.Equal(t, types.EffectPayment.String(), mints[0].Effects[0].Type)
}
