package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

func TestRegisterValidator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	operator, escrow := testutil.RandomAddress(t), testutil.RandomAddress(t)

	id, err := env.p.RegisterValidator(ctx, operator, escrow)
	require.NoError(t, err)

	rec, err := env.p.ValidatorByOperator(operator)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, types.StatusNotDelegatable, rec.Status)

	_, err = env.p.RegisterValidator(ctx, operator, testutil.RandomAddress(t))
	requireCode(t, err, types.AlreadyExists)
	_, err = env.p.RegisterValidator(ctx, testutil.RandomAddress(t), escrow)
	requireCode(t, err, types.AlreadyExists)
	_, err = env.p.RegisterValidator(ctx, env.account, testutil.RandomAddress(t))
	requireCode(t, err, types.BadRequest)
	_, err = env.p.RegisterValidator(ctx, operator, operator)
	requireCode(t, err, types.BadRequest)

	_, err = env.p.ValidatorByOperator(testutil.RandomAddress(t))
	requireCode(t, err, types.NotFound)
}

func TestCommitAndUncommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.register(t, 0)

	err := env.p.Commit(ctx, testutil.RandomAddress(t), v.id, 100)
	requireCode(t, err, types.Unauthorized)
	err = env.p.Commit(ctx, v.operator, v.id, 1_000_001)
	requireCode(t, err, types.CapacityExceeded)

	require.NoError(t, env.p.Commit(ctx, v.operator, v.id, 1_500))
	err = env.p.Uncommit(ctx, v.operator, v.id, 1_501)
	requireCode(t, err, types.InsufficientFunds)

	env.host.balances[v.escrow] = 10_000
	require.NoError(t, env.p.GoOnline(ctx, v.operator, v.id, validKeys(env.host.round)))

	err = env.p.Uncommit(ctx, v.operator, v.id, 501)
	requireCode(t, err, types.InvalidState)
	require.NoError(t, env.p.Uncommit(ctx, v.operator, v.id, 500))
	assert.Equal(t, []types.Effect{types.Payment(v.escrow, v.operator, 500)}, env.committer.last(t).Effects)

	// offline validators can withdraw everything
	require.NoError(t, env.p.GoOffline(ctx, v.operator, v.id))
	require.NoError(t, env.p.Uncommit(ctx, v.operator, v.id, 1_000))
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Zero(t, rec.Commit)
}

func TestCloseValidator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fund(t, 100)
	v := env.online(t, 1_000)
	_, err := env.p.Bid(ctx, v.id)
	require.NoError(t, err)
	_, err = env.p.Delegate(ctx, 60)
	require.NoError(t, err)
	_, err = env.p.Snitch(ctx, v.id)
	require.NoError(t, err)

	err = env.p.CloseValidator(ctx, testutil.RandomAddress(t), v.id)
	requireCode(t, err, types.Unauthorized)

	require.NoError(t, env.p.CloseValidator(ctx, v.operator, v.id))
	cs := env.committer.last(t)
	assert.Equal(t, []types.Effect{
		types.KeyRegOffline(v.escrow),
		types.Payment(v.escrow, env.account, 60),
		types.Payment(v.escrow, v.operator, 1_000),
	}, cs.Effects)
	assert.Equal(t, []types.ValidatorID{v.id}, cs.Removed)
	assert.Empty(t, cs.Updated)

	_, err = env.p.Validator(v.id)
	requireCode(t, err, types.NotFound)
	ledger := env.p.Ledger()
	assert.Equal(t, uint64(100), ledger.IdleBacking)
	assert.True(t, ledger.HighestBidder.IsNone())
	assert.NotContains(t, env.p.BurnQueue(), v.id)
	env.requireBackingHeld(t)

	// the operator can register again
	_, err = env.p.RegisterValidator(ctx, v.operator, v.escrow)
	require.NoError(t, err)
}
