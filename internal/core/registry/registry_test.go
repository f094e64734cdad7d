package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

var testParams = Params{
	BufferMax:                1_000_000,
	PerformanceStakeIncrease: 1_000,
	PerformanceStep:          10,
}

func TestRegistry_Register(t *testing.T) {
	r := New(testParams)
	operator, escrow := testutil.RandomAddress(t), testutil.RandomAddress(t)

	id, err := r.Register(operator, escrow)
	require.NoError(t, err)
	assert.Equal(t, types.ValidatorID(1), id)

	rec, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotDelegatable, rec.Status)
	assert.Equal(t, testParams.BufferMax, rec.Buffer, "zero capacity means full buffer")
	assert.Zero(t, rec.Commit)
	assert.Zero(t, rec.Delegated)

	byOperator, err := r.GetByOperator(operator)
	require.NoError(t, err)
	assert.Equal(t, rec, byOperator)

	byEscrow, err := r.GetByEscrow(escrow)
	require.NoError(t, err)
	assert.Equal(t, rec, byEscrow)

	t.Run("duplicate operator", func(t *testing.T) {
		_, err := r.Register(operator, testutil.RandomAddress(t))
		assert.True(t, types.IsErrorCode(err, types.AlreadyExists))
	})
	t.Run("duplicate escrow", func(t *testing.T) {
		_, err := r.Register(testutil.RandomAddress(t), escrow)
		assert.True(t, types.IsErrorCode(err, types.AlreadyExists))
	})
	t.Run("not found", func(t *testing.T) {
		_, err := r.Get(42)
		assert.True(t, types.IsErrorCode(err, types.NotFound))
		_, err = r.GetByOperator(testutil.RandomAddress(t))
		assert.True(t, types.IsErrorCode(err, types.NotFound))
	})
}

func TestRegistry_UpdateRecomputesBuffer(t *testing.T) {
	r := New(testParams)
	id, err := r.Register(testutil.RandomAddress(t), testutil.RandomAddress(t))
	require.NoError(t, err)

	rec, err := r.Update(id, func(rec *Record) error {
		rec.Commit = 1_000
		rec.Delegated = 500
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), rec.Buffer)

	// 20 performance points add two increases of capacity
	rec, err = r.Update(id, func(rec *Record) error {
		rec.Performance = 25
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(500*1_000_000/3_000), rec.Buffer)

	// delinquency eats capacity down to zero
	rec, err = r.Update(id, func(rec *Record) error {
		rec.Delinquency = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, testParams.BufferMax, rec.Buffer)

	// over-delegation is clamped
	rec, err = r.Update(id, func(rec *Record) error {
		rec.Delinquency = 0
		rec.Performance = 0
		rec.Delegated = 10_000
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, testParams.BufferMax, rec.Buffer)
}

func TestRegistry_UpdateKeepsIdentity(t *testing.T) {
	r := New(testParams)
	operator := testutil.RandomAddress(t)
	id, err := r.Register(operator, testutil.RandomAddress(t))
	require.NoError(t, err)

	rec, err := r.Update(id, func(rec *Record) error {
		rec.ID = 99
		rec.Operator = testutil.RandomAddress(t)
		rec.Buffer = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, operator, rec.Operator)
	assert.Equal(t, testParams.BufferMax, rec.Buffer)
}

func TestRegistry_FailedUpdateHasNoEffect(t *testing.T) {
	r := New(testParams)
	id, err := r.Register(testutil.RandomAddress(t), testutil.RandomAddress(t))
	require.NoError(t, err)
	before, err := r.Get(id)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = r.Update(id, func(rec *Record) error {
		rec.Commit = 77
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegistry_Close(t *testing.T) {
	r := New(testParams)
	operator := testutil.RandomAddress(t)
	id, err := r.Register(operator, testutil.RandomAddress(t))
	require.NoError(t, err)

	_, err = r.Update(id, func(rec *Record) error {
		rec.Status = types.StatusDelinquent
		return nil
	})
	require.NoError(t, err)

	err = r.Close(id)
	assert.True(t, types.IsErrorCode(err, types.InvalidState))

	_, err = r.Update(id, func(rec *Record) error {
		rec.Status = types.StatusNotDelegatable
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.Close(id))

	_, err = r.GetByOperator(operator)
	assert.True(t, types.IsErrorCode(err, types.NotFound))

	// the operator may register again, ids are never reused
	newID, err := r.Register(operator, testutil.RandomAddress(t))
	require.NoError(t, err)
	assert.Equal(t, types.ValidatorID(2), newID)
}

func TestRegistry_CloneAndChanges(t *testing.T) {
	r := New(testParams)
	first, err := r.Register(testutil.RandomAddress(t), testutil.RandomAddress(t))
	require.NoError(t, err)
	second, err := r.Register(testutil.RandomAddress(t), testutil.RandomAddress(t))
	require.NoError(t, err)

	c := r.Clone()
	updated, removed := c.Changes()
	assert.Empty(t, updated)
	assert.Empty(t, removed)

	_, err = c.Update(first, func(rec *Record) error {
		rec.Commit = 10
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, c.Close(second))

	updated, removed = c.Changes()
	require.Len(t, updated, 1)
	assert.Equal(t, first, updated[0].ID)
	assert.Equal(t, []types.ValidatorID{second}, removed)

	// the original is untouched
	orig, err := r.Get(first)
	require.NoError(t, err)
	assert.Zero(t, orig.Commit)
	assert.True(t, r.Exists(second))
}

func TestRestore(t *testing.T) {
	r := New(testParams)
	id, err := r.Register(testutil.RandomAddress(t), testutil.RandomAddress(t))
	require.NoError(t, err)
	_, err = r.Update(id, func(rec *Record) error {
		rec.Commit = 100
		rec.Delegated = 50
		return nil
	})
	require.NoError(t, err)

	restored, err := Restore(testParams, 1, r.All())
	require.NoError(t, err)
	assert.Equal(t, r.All(), restored.All())
	assert.Equal(t, types.ValidatorID(2), restored.NextID())

	_, err = Restore(testParams, 1, append(r.All(), r.All()...))
	assert.True(t, types.IsErrorCode(err, types.AlreadyExists))
}
