package protocol

import (
	"fmt"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/burnqueue"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/peg"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// State is everything a protocol operation reads and writes
type State struct {
	Ledger        peg.Ledger
	IdleBacking   uint64
	HighestBidder types.ValidatorID
	// ExhaustedPeriod is the last round in which a burn could not be fully
	// served from idle backing and the burn queue, 0 when it never happened
	ExhaustedPeriod uint64
	Queue           burnqueue.Queue
	Registry        *registry.Registry
}

// Snapshot is the persisted form of State
type Snapshot struct {
	TotalBacking    uint64              `json:"total_backing"`
	TotalSupply     uint64              `json:"total_supply"`
	PegRatio        uint64              `json:"peg_ratio"`
	IdleBacking     uint64              `json:"idle_backing"`
	HighestBidder   types.ValidatorID   `json:"highest_bidder"`
	ExhaustedPeriod uint64              `json:"exhausted_period"`
	NextValidatorID types.ValidatorID   `json:"next_validator_id"`
	QueueSlots      []types.ValidatorID `json:"queue_slots"`
	Validators      []registry.Record   `json:"validators"`
}

func registryParams(cfg *config.ProtocolConfig) registry.Params {
	return registry.Params{
		BufferMax:                cfg.BufferMax,
		PerformanceStakeIncrease: cfg.PerformanceStakeIncrease,
		PerformanceStep:          cfg.PerformanceStep,
	}
}

// NewState returns the state of a freshly initialized protocol
func NewState(cfg *config.ProtocolConfig) *State {
	return &State{
		Ledger:   peg.New(cfg.Scale),
		Registry: registry.New(registryParams(cfg)),
	}
}

// RestoreState rebuilds the state from a snapshot and checks that the
// backing held by the protocol matches the ledger.
func RestoreState(cfg *config.ProtocolConfig, snap *Snapshot) (*State, error) {
	ledger, err := peg.FromSnapshot(cfg.Scale, snap.TotalBacking, snap.TotalSupply, snap.PegRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to restore ledger: %w", err)
	}
	queue, err := burnqueue.FromSlots(snap.QueueSlots)
	if err != nil {
		return nil, fmt.Errorf("failed to restore burn queue: %w", err)
	}
	reg, err := registry.Restore(registryParams(cfg), snap.NextValidatorID, snap.Validators)
	if err != nil {
		return nil, fmt.Errorf("failed to restore registry: %w", err)
	}
	for _, id := range queue.Entries() {
		if !reg.Exists(id) {
			return nil, types.Errorf(types.InvalidState, "burn queue references unknown validator %s", id)
		}
	}
	if !snap.HighestBidder.IsNone() && !reg.Exists(snap.HighestBidder) {
		return nil, types.Errorf(types.InvalidState, "highest bidder %s is not registered", snap.HighestBidder)
	}

	s := &State{
		Ledger:          ledger,
		IdleBacking:     snap.IdleBacking,
		HighestBidder:   snap.HighestBidder,
		ExhaustedPeriod: snap.ExhaustedPeriod,
		Queue:           queue,
		Registry:        reg,
	}
	if err := s.checkBacking(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the persisted form of s
func (s *State) Snapshot() *Snapshot {
	return &Snapshot{
		TotalBacking:    s.Ledger.TotalBacking(),
		TotalSupply:     s.Ledger.TotalSupply(),
		PegRatio:        s.Ledger.PegRatio(),
		IdleBacking:     s.IdleBacking,
		HighestBidder:   s.HighestBidder,
		ExhaustedPeriod: s.ExhaustedPeriod,
		NextValidatorID: s.Registry.NextID(),
		QueueSlots:      s.Queue.Slots(),
		Validators:      s.Registry.All(),
	}
}

// clone returns a copy that can be mutated without touching s
func (s *State) clone() *State {
	c := *s
	c.Registry = s.Registry.Clone()
	return &c
}

// checkBacking verifies that total backing equals idle backing plus all
// delegated stake
func (s *State) checkBacking() error {
	held := s.IdleBacking + s.Registry.TotalDelegated()
	if held != s.Ledger.TotalBacking() {
		return types.Errorf(types.InvalidState,
			"total backing %d does not match idle %d plus delegated %d",
			s.Ledger.TotalBacking(), s.IdleBacking, s.Registry.TotalDelegated())
	}
	return nil
}
