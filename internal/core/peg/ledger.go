// Package peg keeps the total backing and receipt-token supply of the
// protocol and derives the exchange ratio between them.
package peg

import (
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// Ledger is a value type; copying it snapshots the accounting state.
type Ledger struct {
	scale        uint64
	totalBacking uint64
	totalSupply  uint64
	pegRatio     uint64
}

func New(scale uint64) Ledger {
	return Ledger{
		scale:    scale,
		pegRatio: scale,
	}
}

// FromSnapshot restores a persisted ledger. The ratio is re-derived from the
// counters; the stored ratio is only used while supply is zero.
func FromSnapshot(scale, totalBacking, totalSupply, pegRatio uint64) (Ledger, error) {
	if scale == 0 {
		return Ledger{}, fmt.Errorf("scale must be positive")
	}
	if pegRatio == 0 {
		pegRatio = scale
	}
	l := Ledger{
		scale:        scale,
		totalBacking: totalBacking,
		totalSupply:  totalSupply,
		pegRatio:     pegRatio,
	}
	if err := l.RecomputePeg(); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

func (l Ledger) Scale() uint64        { return l.scale }
func (l Ledger) TotalBacking() uint64 { return l.totalBacking }
func (l Ledger) TotalSupply() uint64  { return l.totalSupply }
func (l Ledger) PegRatio() uint64     { return l.pegRatio }

// RecomputePeg sets the ratio to totalBacking*scale/totalSupply. A zero supply
// leaves the ratio unchanged.
func (l *Ledger) RecomputePeg() error {
	if l.totalSupply == 0 {
		return nil
	}
	ratio, err := MulDiv(l.totalBacking, l.scale, l.totalSupply)
	if err != nil {
		return err
	}
	l.pegRatio = ratio
	return nil
}

// MintAmount returns the receipt tokens issued for backingIn at the current peg
func (l *Ledger) MintAmount(backingIn uint64) (uint64, error) {
	if err := l.RecomputePeg(); err != nil {
		return 0, err
	}
	if l.pegRatio == 0 {
		return 0, types.Errorf(types.InvalidState, "peg ratio is zero, minting is disabled")
	}
	return MulDiv(backingIn, l.scale, l.pegRatio)
}

// BurnAmount returns the backing released for receiptIn at the current peg
func (l *Ledger) BurnAmount(receiptIn uint64) (uint64, error) {
	if err := l.RecomputePeg(); err != nil {
		return 0, err
	}
	return MulDiv(receiptIn, l.pegRatio, l.scale)
}

// ReceiptFor returns the receipt tokens that must be burned to release
// backing, rounded up.
func (l *Ledger) ReceiptFor(backing uint64) (uint64, error) {
	if err := l.RecomputePeg(); err != nil {
		return 0, err
	}
	if l.pegRatio == 0 {
		return 0, types.Errorf(types.InvalidState, "peg ratio is zero")
	}
	return MulDivCeil(backing, l.scale, l.pegRatio)
}

// Credit adds to both counters and recomputes the peg
func (l *Ledger) Credit(backingDelta, supplyDelta uint64) error {
	backing, err := add(l.totalBacking, backingDelta)
	if err != nil {
		return err
	}
	supply, err := add(l.totalSupply, supplyDelta)
	if err != nil {
		return err
	}
	next := *l
	next.totalBacking = backing
	next.totalSupply = supply
	if err := next.RecomputePeg(); err != nil {
		return err
	}
	*l = next
	return nil
}

// Debit subtracts from both counters and recomputes the peg. Neither counter
// may go negative.
func (l *Ledger) Debit(backingDelta, supplyDelta uint64) error {
	if backingDelta > l.totalBacking {
		return types.Errorf(types.CounterUnderflow,
			"debit of %d backing exceeds total backing %d", backingDelta, l.totalBacking)
	}
	if supplyDelta > l.totalSupply {
		return types.Errorf(types.CounterUnderflow,
			"debit of %d supply exceeds total supply %d", supplyDelta, l.totalSupply)
	}
	next := *l
	next.totalBacking -= backingDelta
	next.totalSupply -= supplyDelta
	if err := next.RecomputePeg(); err != nil {
		return err
	}
	*l = next
	return nil
}

func add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, types.Errorf(types.CapacityExceeded, "counter overflow adding %d to %d", b, a)
	}
	return sum, nil
}
