//go:build integration

package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

func randomValidator(t *testing.T, id uint64) *model.ValidatorDocument {
	return &model.ValidatorDocument{
		ID:       id,
		Operator: testutil.RandomAddress(t).String(),
		Escrow:   testutil.RandomAddress(t).String(),
		Commit:   1_000,
		Status:   types.StatusNotDelegatable.String(),
	}
}

func TestValidator(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		v := randomValidator(t, 1001)
		require.NoError(t, testDB.UpsertValidator(ctx, v))

		byID, err := testDB.GetValidatorByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, v, byID)

		byOperator, err := testDB.GetValidatorByOperator(ctx, v.Operator)
		require.NoError(t, err)
		assert.Equal(t, v.ID, byOperator.ID)
	})
	t.Run("duplicate operator", func(t *testing.T) {
		v := randomValidator(t, 1002)
		require.NoError(t, testDB.UpsertValidator(ctx, v))

		other := randomValidator(t, 1003)
		other.Operator = v.Operator
		err := testDB.UpsertValidator(ctx, other)
		assert.True(t, db.IsDuplicateKeyError(err))

		_, err = testDB.GetValidatorByID(ctx, other.ID)
		assert.True(t, db.IsNotFoundError(err))
	})
	t.Run("upsert updates in place", func(t *testing.T) {
		v := randomValidator(t, 1004)
		require.NoError(t, testDB.UpsertValidator(ctx, v))

		v.Delegated = 500
		v.Status = types.StatusNeutral.String()
		require.NoError(t, testDB.UpsertValidator(ctx, v))

		loaded, err := testDB.GetValidatorByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), loaded.Delegated)
		assert.Equal(t, types.StatusNeutral.String(), loaded.Status)
	})
	t.Run("delete", func(t *testing.T) {
		v := randomValidator(t, 1005)
		require.NoError(t, testDB.UpsertValidator(ctx, v))
		require.NoError(t, testDB.DeleteValidator(ctx, v.ID))

		_, err := testDB.GetValidatorByID(ctx, v.ID)
		assert.True(t, db.IsNotFoundError(err))

		err = testDB.DeleteValidator(ctx, v.ID)
		assert.True(t, db.IsNotFoundError(err))
	})
	t.Run("list is sorted by id", func(t *testing.T) {
		all, err := testDB.GetAllValidators(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, all)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}
	})
}
