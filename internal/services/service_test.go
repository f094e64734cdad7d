package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db"
	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/tests/mocks"
	"github.com/babylonlabs-io/liquid-staking-core/testutil"
)

type recordingPublisher struct {
	events []types.ProtocolEvent
}

func (p *recordingPublisher) PublishEvents(ctx context.Context, events []types.ProtocolEvent) {
	p.events = append(p.events, events...)
}

func testConfig(t *testing.T) *config.Config {
	protocolCfg := config.DefaultProtocolConfig()
	protocolCfg.Account = testutil.RandomAddress(t).String()
	protocolCfg.Scale = 1_000_000
	return &config.Config{
		Protocol: *protocolCfg,
		Poller:   *config.DefaultPollerConfig(),
	}
}

// runTransaction makes the db mock execute the transaction callback
func runTransaction(dbClient *mocks.DbInterface) {
	dbClient.On("WithTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func newTestService(t *testing.T) (*Service, *mocks.DbInterface, *mocks.HostLedgerInterface, *recordingPublisher) {
	dbClient := mocks.NewDbInterface(t)
	host := mocks.NewHostLedgerInterface(t)
	publisher := &recordingPublisher{}
	s := NewService(testConfig(t), dbClient, host, publisher)

	dbClient.On("GetProtocolState", mock.Anything).
		Return(nil, &db.NotFoundError{Key: model.ProtocolStateID, Message: "protocol state not found"}).
		Once()
	// validators load concurrently with the state document
	dbClient.On("GetAllValidators", mock.Anything).Return(nil, nil).Maybe()
	require.NoError(t, s.Bootstrap(context.Background()))
	require.NotNil(t, s.Protocol())
	return s, dbClient, host, publisher
}

func TestCommitPersistsAndSubmits(t *testing.T) {
	ctx := context.Background()
	s, dbClient, host, publisher := newTestService(t)
	runTransaction(dbClient)

	var saved *model.ProtocolStateDocument
	dbClient.On("SaveProtocolState", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*model.ProtocolStateDocument)
		}).
		Return(nil)
	dbClient.On("SaveEffectGroup", mock.Anything, mock.MatchedBy(func(g *model.EffectGroupDocument) bool {
		return g.Operation == "mint" && len(g.Effects) == 2
	})).Return(nil).Once()
	host.On("Submit", mock.Anything, mock.MatchedBy(func(effects []types.Effect) bool {
		return len(effects) == 2 &&
			effects[0].Type == types.EffectPayment &&
			effects[1].Type == types.EffectAssetTransfer
	})).Return(nil).Once()

	caller := testutil.RandomAddress(t)
	res, err := s.Protocol().Mint(ctx, caller, 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), res.Minted)

	require.NotNil(t, saved)
	assert.Equal(t, uint64(5_000), saved.TotalBacking)
	assert.Equal(t, uint64(5_000), saved.IdleBacking)
	assert.Equal(t, "mint", saved.LastOperation)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, types.EventLstMinted, publisher.events[0].Type)
}

func TestCommitStoresRegisteredValidator(t *testing.T) {
	ctx := context.Background()
	s, dbClient, _, publisher := newTestService(t)
	runTransaction(dbClient)

	operator := testutil.RandomAddress(t)
	escrow := testutil.RandomAddress(t)
	dbClient.On("SaveProtocolState", mock.Anything, mock.Anything).Return(nil).Once()
	dbClient.On("UpsertValidator", mock.Anything, mock.MatchedBy(func(v *model.ValidatorDocument) bool {
		return v.Operator == operator.String() &&
			v.Escrow == escrow.String() &&
			v.Status == types.StatusNotDelegatable.String()
	})).Return(nil).Once()

	id, err := s.Protocol().RegisterValidator(ctx, operator, escrow)
	require.NoError(t, err)
	assert.False(t, id.IsNone())

	// registration moves no funds, so nothing reaches the host
	dbClient.AssertNotCalled(t, "SaveEffectGroup", mock.Anything, mock.Anything)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, types.EventValidatorRegistered, publisher.events[0].Type)
}

func TestCommitHostRejectionLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s, dbClient, host, publisher := newTestService(t)
	runTransaction(dbClient)

	dbClient.On("SaveProtocolState", mock.Anything, mock.Anything).Return(nil)
	dbClient.On("SaveEffectGroup", mock.Anything, mock.Anything).Return(nil)
	host.On("Submit", mock.Anything, mock.Anything).
		Return(types.NewErrorWithMsg(400, types.BadRequest, "group rejected")).
		Once()

	_, err := s.Protocol().Mint(ctx, testutil.RandomAddress(t), 5_000)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.BadRequest))

	ledger := s.Protocol().Ledger()
	assert.Zero(t, ledger.TotalBacking)
	assert.Zero(t, ledger.TotalSupply)
	assert.Empty(t, publisher.events)
}

func TestCommitDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	s, dbClient, _, publisher := newTestService(t)
	runTransaction(dbClient)

	dbClient.On("SaveProtocolState", mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).
		Once()

	_, err := s.Protocol().Mint(ctx, testutil.RandomAddress(t), 5_000)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.InternalServiceError))
	assert.Zero(t, s.Protocol().Ledger().TotalBacking)
	assert.Empty(t, publisher.events)
}

func TestCommitSubmitsOnceWhenTransactionRetries(t *testing.T) {
	ctx := context.Background()
	s, dbClient, host, _ := newTestService(t)

	dbClient.On("WithTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			if err := fn(ctx); err != nil {
				return err
			}
			return fn(ctx)
		})
	dbClient.On("SaveProtocolState", mock.Anything, mock.Anything).Return(nil).Twice()
	dbClient.On("SaveEffectGroup", mock.Anything, mock.Anything).Return(nil).Twice()
	host.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.Protocol().Mint(ctx, testutil.RandomAddress(t), 5_000)
	require.NoError(t, err)
}

func TestBootstrapRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	dbClient := mocks.NewDbInterface(t)
	host := mocks.NewHostLedgerInterface(t)
	s := NewService(testConfig(t), dbClient, host, &recordingPublisher{})

	operator := testutil.RandomAddress(t)
	escrow := testutil.RandomAddress(t)
	dbClient.On("GetProtocolState", mock.Anything).Return(&model.ProtocolStateDocument{
		ID:              model.ProtocolStateID,
		TotalBacking:    3_000,
		TotalSupply:     3_000,
		PegRatio:        1_000_000,
		IdleBacking:     1_000,
		HighestBidder:   1,
		NextValidatorID: 2,
		BurnQueue:       []uint64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}, nil).Once()
	dbClient.On("GetAllValidators", mock.Anything).Return([]*model.ValidatorDocument{{
		ID:        1,
		Operator:  operator.String(),
		Escrow:    escrow.String(),
		Commit:    1_000,
		Delegated: 2_000,
		Status:    types.StatusNeutral.String(),
	}}, nil).Once()

	require.NoError(t, s.Bootstrap(ctx))

	ledger := s.Protocol().Ledger()
	assert.Equal(t, uint64(3_000), ledger.TotalBacking)
	assert.Equal(t, types.ValidatorID(1), ledger.HighestBidder)
	assert.Equal(t, types.ValidatorID(1), s.Protocol().BurnQueue()[0])

	rec, err := s.Protocol().ValidatorByOperator(operator)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000), rec.Delegated)
}

func TestBootstrapRejectsInconsistentState(t *testing.T) {
	ctx := context.Background()
	dbClient := mocks.NewDbInterface(t)
	s := NewService(testConfig(t), dbClient, mocks.NewHostLedgerInterface(t), &recordingPublisher{})

	// backing held does not add up to total backing
	dbClient.On("GetProtocolState", mock.Anything).Return(&model.ProtocolStateDocument{
		TotalBacking: 3_000,
		TotalSupply:  3_000,
		PegRatio:     1_000_000,
		IdleBacking:  1_000,
	}, nil).Once()
	dbClient.On("GetAllValidators", mock.Anything).Return(nil, nil).Once()

	require.Error(t, s.Bootstrap(ctx))
	assert.Nil(t, s.Protocol())
}
