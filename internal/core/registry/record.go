package registry

import (
	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// Record is the accounting state of one validator
type Record struct {
	ID       types.ValidatorID
	Operator types.Address
	// Escrow is the account holding the validator's stake; it is the account
	// that goes online and shows up as block proposer.
	Escrow types.Address

	Commit      uint64
	Delegated   uint64
	Performance uint64
	Buffer      uint64
	Status      types.ValidatorStatus

	LastBlockReported     uint64
	LastDelinquencyReport uint64
	Delinquency           uint64
}

// Params drive the buffer computation
type Params struct {
	BufferMax                uint64
	PerformanceStakeIncrease uint64
	PerformanceStep          uint64
}

// EffectiveCapacity is commit plus the performance bonus minus the
// delinquency penalty, floored at zero.
func (p Params) EffectiveCapacity(r *Record) sdkmath.Int {
	increase := sdkmath.NewIntFromUint64(p.PerformanceStakeIncrease)
	bonus := sdkmath.ZeroInt()
	if p.PerformanceStep > 0 {
		bonus = increase.Mul(sdkmath.NewIntFromUint64(r.Performance / p.PerformanceStep))
	}
	penalty := increase.Mul(sdkmath.NewIntFromUint64(r.Delinquency))

	capacity := sdkmath.NewIntFromUint64(r.Commit).Add(bonus).Sub(penalty)
	if capacity.IsNegative() {
		return sdkmath.ZeroInt()
	}
	return capacity
}

// ComputeBuffer returns delegated/capacity scaled to BufferMax and clamped
func (p Params) ComputeBuffer(r *Record) uint64 {
	capacity := p.EffectiveCapacity(r)
	if capacity.IsZero() {
		return p.BufferMax
	}
	bufferMax := sdkmath.NewIntFromUint64(p.BufferMax)
	buffer := sdkmath.NewIntFromUint64(r.Delegated).Mul(bufferMax).Quo(capacity)
	if buffer.GT(bufferMax) {
		return p.BufferMax
	}
	return buffer.Uint64()
}
