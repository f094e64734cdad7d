package protocol

import (
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// LedgerView is the read-only view of the global ledger state
type LedgerView struct {
	TotalBacking    uint64            `json:"total_backing"`
	TotalSupply     uint64            `json:"total_supply"`
	PegRatio        uint64            `json:"peg_ratio"`
	Scale           uint64            `json:"scale"`
	IdleBacking     uint64            `json:"idle_backing"`
	HighestBidder   types.ValidatorID `json:"highest_bidder"`
	ExhaustedPeriod uint64            `json:"exhausted_period"`
}

func (p *Protocol) Validator(id types.ValidatorID) (registry.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Registry.Get(id)
}

func (p *Protocol) ValidatorByOperator(operator types.Address) (registry.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Registry.GetByOperator(operator)
}

func (p *Protocol) Validators() []registry.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Registry.All()
}

func (p *Protocol) Ledger() LedgerView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return LedgerView{
		TotalBacking:    p.state.Ledger.TotalBacking(),
		TotalSupply:     p.state.Ledger.TotalSupply(),
		PegRatio:        p.state.Ledger.PegRatio(),
		Scale:           p.state.Ledger.Scale(),
		IdleBacking:     p.state.IdleBacking,
		HighestBidder:   p.state.HighestBidder,
		ExhaustedPeriod: p.state.ExhaustedPeriod,
	}
}

// BurnQueue returns the raw queue slots, empty ones included
func (p *Protocol) BurnQueue() []types.ValidatorID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Queue.Slots()
}

func (p *Protocol) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Snapshot()
}
