package protocol

import (
	"context"

	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type MintResult struct {
	BackingIn uint64 `json:"backing_in"`
	Minted    uint64 `json:"minted"`
	PegRatio  uint64 `json:"peg_ratio"`
}

type BurnResult struct {
	// Requested is the backing the receipt tokens were worth
	Requested       uint64 `json:"requested"`
	BackingOut      uint64 `json:"backing_out"`
	ReceiptBurned   uint64 `json:"receipt_burned"`
	ReceiptRefunded uint64 `json:"receipt_refunded"`
	// Deferred is set when the remainder was not attempted because the
	// queue was already exhausted this round; retry in a later round
	Deferred bool `json:"deferred"`
	// Exhausted is set when idle backing and the burn queue together could
	// not cover the request
	Exhausted bool `json:"exhausted"`
}

// Mint takes backingIn from caller into idle backing and issues receipt
// tokens at the current peg
func (p *Protocol) Mint(ctx context.Context, caller types.Address, backingIn uint64) (MintResult, error) {
	var res MintResult
	err := p.execute(ctx, "mint", func(t *tx) error {
		if backingIn == 0 {
			return types.Errorf(types.BadRequest, "mint amount must be positive")
		}
		minted, err := t.state.Ledger.MintAmount(backingIn)
		if err != nil {
			return err
		}
		if minted == 0 {
			return types.Errorf(types.InsufficientFunds, "%d backing is worth no receipt tokens", backingIn)
		}
		if err := t.state.Ledger.Credit(backingIn, minted); err != nil {
			return err
		}
		t.state.IdleBacking += backingIn

		t.emit(
			types.Payment(caller, t.account, backingIn),
			types.AssetTransfer(t.account, caller, minted),
		)
		t.event(types.ProtocolEvent{
			Type:    types.EventLstMinted,
			Account: caller,
			Amount:  minted,
			Details: map[string]any{"backing_in": backingIn},
		})
		res = MintResult{
			BackingIn: backingIn,
			Minted:    minted,
			PegRatio:  t.state.Ledger.PegRatio(),
		}
		return nil
	})
	return res, err
}

// Burn redeems receiptIn receipt tokens. Backing is paid from idle backing
// first and then drained from the burn queue. Whatever cannot be served is
// left with the caller.
func (p *Protocol) Burn(ctx context.Context, caller types.Address, receiptIn uint64) (BurnResult, error) {
	var res BurnResult
	err := p.execute(ctx, "burn", func(t *tx) error {
		var err error
		res, err = t.burn(caller, receiptIn)
		return err
	})
	if err != nil {
		return BurnResult{}, err
	}
	switch {
	case res.Deferred:
		metrics.IncBurnOutcome("deferred")
	case res.Exhausted:
		metrics.IncBurnOutcome("exhausted")
	default:
		metrics.IncBurnOutcome("settled")
	}
	return res, nil
}

func (t *tx) burn(caller types.Address, receiptIn uint64) (BurnResult, error) {
	if receiptIn == 0 {
		return BurnResult{}, types.Errorf(types.BadRequest, "burn amount must be positive")
	}
	if receiptIn > t.state.Ledger.TotalSupply() {
		return BurnResult{}, types.Errorf(types.InsufficientFunds,
			"burn of %d exceeds the outstanding supply %d", receiptIn, t.state.Ledger.TotalSupply())
	}
	requested, err := t.state.Ledger.BurnAmount(receiptIn)
	if err != nil {
		return BurnResult{}, err
	}
	if requested == 0 {
		return BurnResult{}, types.Errorf(types.BadRequest, "%d receipt tokens are worth no backing", receiptIn)
	}
	res := BurnResult{Requested: requested}

	fromIdle := min(t.state.IdleBacking, requested)
	t.state.IdleBacking -= fromIdle
	res.BackingOut = fromIdle
	t.emit(types.Payment(t.account, caller, fromIdle))

	if remaining := requested - fromIdle; remaining > 0 {
		round, err := t.currentRound()
		if err != nil {
			return BurnResult{}, err
		}
		if t.state.ExhaustedPeriod == round && !t.state.Queue.IsFull() {
			res.Deferred = true
		} else {
			burned, withdrawals, err := t.state.Queue.Drain(t.state.Registry, remaining)
			if err != nil {
				return BurnResult{}, err
			}
			for _, w := range withdrawals {
				t.emit(types.Payment(w.Escrow, caller, w.Amount))
			}
			res.BackingOut += burned
			if burned < remaining {
				t.state.ExhaustedPeriod = round
				res.Exhausted = true
			}
		}
	}

	res.ReceiptBurned = receiptIn
	if res.BackingOut < requested {
		// price the partial burn at the current peg, rounded against the caller
		burned, err := t.state.Ledger.ReceiptFor(res.BackingOut)
		if err != nil {
			return BurnResult{}, err
		}
		res.ReceiptBurned = min(burned, receiptIn)
	}
	res.ReceiptRefunded = receiptIn - res.ReceiptBurned

	if err := t.state.Ledger.Debit(res.BackingOut, res.ReceiptBurned); err != nil {
		return BurnResult{}, err
	}
	t.emit(types.AssetTransfer(caller, t.account, res.ReceiptBurned))

	if res.BackingOut > 0 {
		t.event(types.ProtocolEvent{
			Type:    types.EventLstBurned,
			Account: caller,
			Amount:  res.ReceiptBurned,
			Details: map[string]any{
				"backing_out": res.BackingOut,
				"refunded":    res.ReceiptRefunded,
				"exhausted":   res.Exhausted,
			},
		})
	}
	if res.Deferred {
		t.event(types.ProtocolEvent{
			Type:    types.EventBurnDeferred,
			Account: caller,
			Amount:  res.ReceiptRefunded,
		})
	}
	return res, nil
}

// Snitch offers a validator to the burn queue. It returns the validator left
// out of the queue, if any.
func (p *Protocol) Snitch(ctx context.Context, id types.ValidatorID) (types.ValidatorID, error) {
	var evicted types.ValidatorID
	err := p.execute(ctx, "snitch", func(t *tx) error {
		if t.state.Queue.Contains(id) {
			if !t.state.Registry.Exists(id) {
				return types.Errorf(types.NotFound, "validator %s not found", id)
			}
			t.noop = true
			return nil
		}
		var err error
		evicted, err = t.state.Queue.Snitch(t.state.Registry, id)
		if err != nil {
			return err
		}
		if evicted == id {
			// candidate had the lowest buffer, queue unchanged
			t.noop = true
			return nil
		}
		t.event(types.ProtocolEvent{
			Type:      types.EventValidatorSnitched,
			Validator: id,
			Details:   map[string]any{"evicted": evicted},
		})
		return nil
	})
	if err != nil {
		return types.NoValidator, err
	}
	return evicted, nil
}
