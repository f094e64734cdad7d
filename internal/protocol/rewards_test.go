package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

func TestReportBlock_OnTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.online(t, 1_000)
	env.host.proposals[5] = &types.BlockProposal{Proposer: v.escrow, Payout: 1_000}
	reporter := testutil.RandomAddress(t)

	settlement, err := env.p.ReportBlock(ctx, reporter, 5)
	require.NoError(t, err)
	assert.Equal(t, RewardSettlement{
		Validator:    v.id,
		Round:        5,
		Payout:       1_000,
		Fee:          100,
		FeeRecipient: v.operator,
		Net:          900,
		OnTime:       true,
	}, settlement)
	assert.Equal(t, []types.Effect{
		types.Payment(v.escrow, v.operator, 100),
		types.Payment(v.escrow, env.account, 900),
	}, env.committer.last(t).Effects)

	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Performance)
	assert.Equal(t, uint64(5), rec.LastBlockReported)

	ledger := env.p.Ledger()
	assert.Equal(t, uint64(900), ledger.TotalBacking)
	assert.Zero(t, ledger.TotalSupply)
	assert.Equal(t, uint64(900), ledger.IdleBacking)
	env.requireBackingHeld(t)

	// the same block cannot be reported twice
	before := env.p.Snapshot()
	_, err = env.p.ReportBlock(ctx, reporter, 5)
	requireCode(t, err, types.StaleReport)
	assert.Equal(t, before, env.p.Snapshot())
}

func TestReportBlock_LateReportPaysReporter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	holder := env.fund(t, 1_000)
	v := env.online(t, 1_000)
	env.host.round = 1_000
	env.host.proposals[600] = &types.BlockProposal{Proposer: v.escrow, Payout: 500}
	reporter := testutil.RandomAddress(t)

	settlement, err := env.p.ReportBlock(ctx, reporter, 600)
	require.NoError(t, err)
	assert.False(t, settlement.OnTime)
	assert.Equal(t, reporter, settlement.FeeRecipient)
	assert.Equal(t, uint64(50), settlement.Fee)

	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Zero(t, rec.Performance)

	// rewards raise the peg for existing holders
	ledger := env.p.Ledger()
	assert.Equal(t, uint64(1_450_000), ledger.PegRatio)
	res, err := env.p.Burn(ctx, holder, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(145), res.BackingOut)
}

func TestReportBlock_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reporter := testutil.RandomAddress(t)
	v := env.online(t, 1_000)

	env.host.proposals[3] = &types.BlockProposal{Proposer: testutil.RandomAddress(t), Payout: 10}
	_, err := env.p.ReportBlock(ctx, reporter, 3)
	requireCode(t, err, types.NotFound)

	_, err = env.p.ReportBlock(ctx, reporter, 4)
	requireCode(t, err, types.NotFound)

	_, err = env.p.ReportBlock(ctx, reporter, 11)
	requireCode(t, err, types.BadRequest)

	env.host.round = 200
	require.NoError(t, env.p.ReportDelinquency(ctx, v.id))
	env.host.proposals[150] = &types.BlockProposal{Proposer: v.escrow, Payout: 10}
	_, err = env.p.ReportBlock(ctx, reporter, 150)
	requireCode(t, err, types.InvalidState)
}

func TestReportBlock_OfflineValidatorKeepsDelinquency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := env.online(t, 1_000)
	reporter := testutil.RandomAddress(t)
	env.host.round = 200
	require.NoError(t, env.p.ReportDelinquency(ctx, v.id))

	env.host.proposals[190] = &types.BlockProposal{Proposer: v.escrow, Payout: 0}
	_, err := env.p.SolveDelinquency(ctx, reporter, v.id, 190)
	requireCode(t, err, types.StaleReport)

	// going offline does not open a side door for the same block
	require.NoError(t, env.p.GoOffline(ctx, v.operator, v.id))
	_, err = env.p.ReportBlock(ctx, reporter, 190)
	requireCode(t, err, types.StaleReport)

	env.host.round = 201
	require.NoError(t, env.p.GoOnline(ctx, v.operator, v.id, validKeys(env.host.round)))
	rec, err := env.p.Validator(v.id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDelinquent, rec.Status)
	assert.Equal(t, uint64(1), rec.Delinquency)
}
