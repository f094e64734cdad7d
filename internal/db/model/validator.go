package model

import (
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

const ValidatorCollection = "validator"

type ValidatorDocument struct {
	ID                    uint64 `bson:"_id"` // Primary key
	Operator              string `bson:"operator"`
	Escrow                string `bson:"escrow"`
	Commit                uint64 `bson:"commit"`
	Delegated             uint64 `bson:"delegated"`
	Performance           uint64 `bson:"performance"`
	Buffer                uint64 `bson:"buffer"` // derived, kept for queries
	Status                string `bson:"status"`
	LastBlockReported     uint64 `bson:"last_block_reported"`
	LastDelinquencyReport uint64 `bson:"last_delinquency_report"`
	Delinquency           uint64 `bson:"delinquency"`
}

func FromValidatorRecord(rec registry.Record) *ValidatorDocument {
	return &ValidatorDocument{
		ID:                    uint64(rec.ID),
		Operator:              rec.Operator.String(),
		Escrow:                rec.Escrow.String(),
		Commit:                rec.Commit,
		Delegated:             rec.Delegated,
		Performance:           rec.Performance,
		Buffer:                rec.Buffer,
		Status:                rec.Status.String(),
		LastBlockReported:     rec.LastBlockReported,
		LastDelinquencyReport: rec.LastDelinquencyReport,
		Delinquency:           rec.Delinquency,
	}
}

// ToValidatorRecord converts the document back, the buffer is left to the
// registry to recompute
func (d *ValidatorDocument) ToValidatorRecord() (registry.Record, error) {
	status, err := types.ValidatorStatusFromString(d.Status)
	if err != nil {
		return registry.Record{}, err
	}
	operator, err := types.ParseAddress(d.Operator)
	if err != nil {
		return registry.Record{}, err
	}
	escrow, err := types.ParseAddress(d.Escrow)
	if err != nil {
		return registry.Record{}, err
	}
	return registry.Record{
		ID:                    types.ValidatorID(d.ID),
		Operator:              operator,
		Escrow:                escrow,
		Commit:                d.Commit,
		Delegated:             d.Delegated,
		Performance:           d.Performance,
		Status:                status,
		LastBlockReported:     d.LastBlockReported,
		LastDelinquencyReport: d.LastDelinquencyReport,
		Delinquency:           d.Delinquency,
	}, nil
}
