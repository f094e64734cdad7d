package db

import (
	"context"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// WithTransaction runs fn atomically, all calls inside fn must use txCtx
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error

	/**
	 * GetProtocolState retrieves the protocol state singleton.
	 * @param ctx The context
	 * @return The protocol state or NotFoundError if the protocol was never initialized
	 */
	GetProtocolState(ctx context.Context) (*model.ProtocolStateDocument, error)
	SaveProtocolState(ctx context.Context, state *model.ProtocolStateDocument) error

	/**
	 * UpsertValidator inserts or replaces a validator document.
	 * @param ctx The context
	 * @param validator The validator document
	 * @return An error if the operation failed, DuplicateKeyError if the
	 * operator or escrow belongs to another validator
	 */
	UpsertValidator(ctx context.Context, validator *model.ValidatorDocument) error
	GetValidatorByID(ctx context.Context, id uint64) (*model.ValidatorDocument, error)
	GetValidatorByOperator(ctx context.Context, operator string) (*model.ValidatorDocument, error)
	GetAllValidators(ctx context.Context) ([]*model.ValidatorDocument, error)
	DeleteValidator(ctx context.Context, id uint64) error

	SaveEffectGroup(ctx context.Context, group *model.EffectGroupDocument) error
	GetEffectGroups(ctx context.Context, operation string, limit int64) ([]*model.EffectGroupDocument, error)
}
