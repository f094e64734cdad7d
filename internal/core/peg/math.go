package peg

import (
	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// MulDiv returns floor(a*b/c) using a 256-bit intermediate
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, types.Errorf(types.InvalidState, "division by zero")
	}
	q := sdkmath.NewIntFromUint64(a).
		Mul(sdkmath.NewIntFromUint64(b)).
		Quo(sdkmath.NewIntFromUint64(c))
	return toUint64(q)
}

// MulDivCeil returns ceil(a*b/c) using a 256-bit intermediate
func MulDivCeil(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, types.Errorf(types.InvalidState, "division by zero")
	}
	divisor := sdkmath.NewIntFromUint64(c)
	q := sdkmath.NewIntFromUint64(a).
		Mul(sdkmath.NewIntFromUint64(b)).
		Add(divisor.SubRaw(1)).
		Quo(divisor)
	return toUint64(q)
}

func toUint64(v sdkmath.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, types.Errorf(types.CapacityExceeded, "result %s does not fit in 64 bits", v.String())
	}
	return v.Uint64(), nil
}
