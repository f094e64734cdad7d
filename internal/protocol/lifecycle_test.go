package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

func TestGoOnline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	keys := validKeys(env.host.round)

	v := env.register(t, 500)
	env.host.minBalances[v.escrow] = 100
	env.host.balances[v.escrow] = 109

	err := env.p.GoOnline(ctx, testutil.RandomAddress(t), v.id, keys)
	requireCode(t, err, types.Unauthorized)

	err = env.p.GoOnline(ctx, v.operator, v.id, keys)
	requireCode(t, err, types.InsufficientFunds)
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotDelegatable, rec.Status, "commit below minimum keeps the validator offline")

	require.NoError(t, env.p.Commit(ctx, v.operator, v.id, 500))
	err = env.p.GoOnline(ctx, v.operator, v.id, keys)
	requireCode(t, err, types.InsufficientFunds)

	env.host.balances[v.escrow] = 110
	expired := keys
	expired.VoteLastValid = env.host.round
	err = env.p.GoOnline(ctx, v.operator, v.id, expired)
	requireCode(t, err, types.BadRequest)

	require.NoError(t, env.p.GoOnline(ctx, v.operator, v.id, keys))
	rec, err = env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNeutral, rec.Status)
	assert.Equal(t, []types.Effect{types.KeyRegOnline(v.escrow, keys)}, env.committer.last(t).Effects)

	err = env.p.GoOnline(ctx, v.operator, v.id, keys)
	requireCode(t, err, types.InvalidState)
}

func TestGoOffline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.online(t, 1_000)

	require.NoError(t, env.p.GoOffline(ctx, v.operator, v.id))
	assert.Equal(t, []types.Effect{types.KeyRegOffline(v.escrow)}, env.committer.last(t).Effects)
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotDelegatable, rec.Status)

	commits := len(env.committer.changes)
	require.NoError(t, env.p.GoOffline(ctx, v.operator, v.id))
	assert.Len(t, env.committer.changes, commits)
}

func TestDelinquencyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.online(t, 1_000)
	_, err := env.p.Bid(ctx, v.id)
	require.NoError(t, err)

	// online at round 10, the first report is allowed after round 110
	env.host.round = 110
	err = env.p.ReportDelinquency(ctx, v.id)
	requireCode(t, err, types.StaleReport)

	env.host.round = 111
	require.NoError(t, env.p.ReportDelinquency(ctx, v.id))
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDelinquent, rec.Status)
	assert.Equal(t, uint64(1), rec.Delinquency)
	assert.True(t, env.p.Ledger().HighestBidder.IsNone())

	env.host.round = 212
	require.NoError(t, env.p.ReportDelinquency(ctx, v.id))

	_, err = env.p.Bid(ctx, v.id)
	requireCode(t, err, types.InvalidState)
	err = env.p.CloseValidator(ctx, v.operator, v.id)
	requireCode(t, err, types.InvalidState)

	// work the counter down with proposed blocks
	env.host.round = 300
	env.host.proposals[212] = &types.BlockProposal{Proposer: v.escrow, Payout: 1_000}
	env.host.proposals[240] = &types.BlockProposal{Proposer: testutil.RandomAddress(t), Payout: 1_000}
	env.host.proposals[250] = &types.BlockProposal{Proposer: v.escrow, Payout: 1_000}
	env.host.proposals[260] = &types.BlockProposal{Proposer: v.escrow, Payout: 2_000}
	reporter := testutil.RandomAddress(t)

	_, err = env.p.SolveDelinquency(ctx, reporter, v.id, 212)
	requireCode(t, err, types.StaleReport)
	_, err = env.p.SolveDelinquency(ctx, reporter, v.id, 240)
	requireCode(t, err, types.Unauthorized)

	settlement, err := env.p.SolveDelinquency(ctx, reporter, v.id, 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), settlement.Fee)
	assert.Equal(t, v.operator, settlement.FeeRecipient)
	rec, err = env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Delinquency)
	assert.Equal(t, types.StatusDelinquent, rec.Status)
	assert.Equal(t, uint64(250), rec.LastBlockReported)

	_, err = env.p.SolveDelinquency(ctx, reporter, v.id, 250)
	requireCode(t, err, types.StaleReport)

	_, err = env.p.SolveDelinquency(ctx, reporter, v.id, 260)
	require.NoError(t, err)
	rec, err = env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Zero(t, rec.Delinquency)
	assert.Equal(t, types.StatusNeutral, rec.Status)
	assert.Equal(t, uint64(2_700), env.p.Ledger().TotalBacking)
	env.requireBackingHeld(t)

	_, err = env.p.SolveDelinquency(ctx, reporter, v.id, 260)
	requireCode(t, err, types.InvalidState)
}

func TestGoOnline_KeepsUnresolvedDelinquency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.online(t, 1_000)

	env.host.round = 200
	require.NoError(t, env.p.ReportDelinquency(ctx, v.id))
	require.NoError(t, env.p.GoOffline(ctx, v.operator, v.id))

	err := env.p.CloseValidator(ctx, v.operator, v.id)
	requireCode(t, err, types.InvalidState)

	env.host.round = 500
	require.NoError(t, env.p.GoOnline(ctx, v.operator, v.id, validKeys(env.host.round)))
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDelinquent, rec.Status)
	assert.Equal(t, uint64(500), rec.LastDelinquencyReport)

	err = env.p.ReportDelinquency(ctx, types.ValidatorID(99))
	requireCode(t, err, types.NotFound)
}

func TestReportDelinquency_OfflineValidator(t *testing.T) {
	env := newTestEnv(t)
	v := env.register(t, 0)
	env.host.round = 1_000
	err := env.p.ReportDelinquency(context.Background(), v.id)
	requireCode(t, err, types.InvalidState)
}
