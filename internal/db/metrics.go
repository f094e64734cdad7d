package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/liquid-staking-core/internal/db/model"
	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.run("WithTransaction", func() error {
		return d.db.WithTransaction(ctx, fn)
	})
}

func (d *DbWithMetrics) GetProtocolState(ctx context.Context) (result *model.ProtocolStateDocument, err error) {
	//nolint:errcheck
	d.run("GetProtocolState", func() error {
		result, err = d.db.GetProtocolState(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveProtocolState(ctx context.Context, state *model.ProtocolStateDocument) error {
	return d.run("SaveProtocolState", func() error {
		return d.db.SaveProtocolState(ctx, state)
	})
}

func (d *DbWithMetrics) UpsertValidator(ctx context.Context, validator *model.ValidatorDocument) error {
	return d.run("UpsertValidator", func() error {
		return d.db.UpsertValidator(ctx, validator)
	})
}

func (d *DbWithMetrics) GetValidatorByID(ctx context.Context, id uint64) (result *model.ValidatorDocument, err error) {
	//nolint:errcheck
	d.run("GetValidatorByID", func() error {
		result, err = d.db.GetValidatorByID(ctx, id)
		return err
	})
	return
}

func (d *DbWithMetrics) GetValidatorByOperator(ctx context.Context, operator string) (result *model.ValidatorDocument, err error) {
	//nolint:errcheck
	d.run("GetValidatorByOperator", func() error {
		result, err = d.db.GetValidatorByOperator(ctx, operator)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllValidators(ctx context.Context) (result []*model.ValidatorDocument, err error) {
	//nolint:errcheck
	d.run("GetAllValidators", func() error {
		result, err = d.db.GetAllValidators(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) DeleteValidator(ctx context.Context, id uint64) error {
	return d.run("DeleteValidator", func() error {
		return d.db.DeleteValidator(ctx, id)
	})
}

func (d *DbWithMetrics) SaveEffectGroup(ctx context.Context, group *model.EffectGroupDocument) error {
	return d.run("SaveEffectGroup", func() error {
		return d.db.SaveEffectGroup(ctx, group)
	})
}

func (d *DbWithMetrics) GetEffectGroups(ctx context.Context, operation string, limit int64) (result []*model.EffectGroupDocument, err error) {
	//nolint:errcheck
	d.run("GetEffectGroups", func() error {
		result, err = d.db.GetEffectGroups(ctx, operation, limit)
		return err
	})
	return
}

// run is private method for executing db method and recording its duration.
// Not found errors are not failures.
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	failure := err != nil && !IsNotFoundError(err)
	metrics.RecordDbLatency(duration, method, failure)
	return err
}
