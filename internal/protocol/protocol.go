// Package protocol runs the liquid staking operations. Each operation executes
// on a private copy of the state under a single lock; the copy replaces the
// live state only after the Committer has persisted it and submitted its host
// effects, so a failed operation leaves nothing behind.
package protocol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/peg"
	"github.com/babylonlabs-io/liquid-staking-core/internal/core/registry"
	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

// HostReader is the read side of the ledger the protocol runs on
type HostReader interface {
	CurrentRound(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, account types.Address) (uint64, error)
	MinBalance(ctx context.Context, account types.Address) (uint64, error)
	BlockProposal(ctx context.Context, round uint64) (*types.BlockProposal, error)
}

// Committer persists the outcome of an operation and submits its effects.
// Either all of it happens or Commit returns an error and nothing does.
type Committer interface {
	Commit(ctx context.Context, changes *ChangeSet) error
}

// ChangeSet is what a successful operation changed
type ChangeSet struct {
	Operation string
	// Round is the host round the operation observed, 0 if it read none
	Round           uint64
	Ledger          peg.Ledger
	IdleBacking     uint64
	HighestBidder   types.ValidatorID
	ExhaustedPeriod uint64
	NextValidatorID types.ValidatorID
	QueueSlots      []types.ValidatorID
	Updated         []registry.Record
	Removed         []types.ValidatorID
	Effects         []types.Effect
	Events          []types.ProtocolEvent
}

type Protocol struct {
	mu        sync.Mutex
	cfg       *config.ProtocolConfig
	account   types.Address
	host      HostReader
	committer Committer
	state     *State
}

func New(cfg *config.ProtocolConfig, host HostReader, committer Committer, state *State) *Protocol {
	if state == nil {
		state = NewState(cfg)
	}
	return &Protocol{
		cfg:       cfg,
		account:   cfg.ProtocolAccount(),
		host:      host,
		committer: committer,
		state:     state,
	}
}

// Account returns the protocol account
func (p *Protocol) Account() types.Address {
	return p.account
}

// tx is one in-flight operation
type tx struct {
	ctx     context.Context
	cfg     *config.ProtocolConfig
	account types.Address
	host    HostReader
	state   *State

	round       uint64
	roundLoaded bool
	effects     []types.Effect
	events      []types.ProtocolEvent
	// noop operations skip the commit
	noop bool
}

// currentRound reads the host round once per operation
func (t *tx) currentRound() (uint64, error) {
	if t.roundLoaded {
		return t.round, nil
	}
	round, err := t.host.CurrentRound(t.ctx)
	if err != nil {
		return 0, types.NewInternalServiceError(fmt.Errorf("failed to get current round: %w", err))
	}
	t.round = round
	t.roundLoaded = true
	return round, nil
}

func (t *tx) emit(effects ...types.Effect) {
	for _, e := range effects {
		// zero transfers are dropped, key registrations always go through
		if (e.Type == types.EffectPayment || e.Type == types.EffectAssetTransfer) && e.Amount == 0 {
			continue
		}
		t.effects = append(t.effects, e)
	}
}

func (t *tx) event(ev types.ProtocolEvent) {
	t.events = append(t.events, ev)
}

func (t *tx) changeSet(operation string) *ChangeSet {
	updated, removed := t.state.Registry.Changes()
	for i := range t.events {
		t.events[i].Round = t.round
	}
	return &ChangeSet{
		Operation:       operation,
		Round:           t.round,
		Ledger:          t.state.Ledger,
		IdleBacking:     t.state.IdleBacking,
		HighestBidder:   t.state.HighestBidder,
		ExhaustedPeriod: t.state.ExhaustedPeriod,
		NextValidatorID: t.state.Registry.NextID(),
		QueueSlots:      t.state.Queue.Slots(),
		Updated:         updated,
		Removed:         removed,
		Effects:         t.effects,
		Events:          t.events,
	}
}

// execute runs fn as one atomic operation
func (p *Protocol) execute(ctx context.Context, operation string, fn func(t *tx) error) error {
	start := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()

	t := &tx{
		ctx:     ctx,
		cfg:     p.cfg,
		account: p.account,
		host:    p.host,
		state:   p.state.clone(),
	}
	err := fn(t)
	if err == nil && !t.noop {
		err = p.commit(ctx, operation, t)
	}
	metrics.RecordOperationDuration(time.Since(start), operation, err != nil)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("operation", operation).Msg("operation aborted")
		return err
	}
	if t.noop {
		return nil
	}

	p.state = t.state
	p.recordState()
	log.Ctx(ctx).Info().
		Str("operation", operation).
		Int("effects", len(t.effects)).
		Uint64("total_backing", p.state.Ledger.TotalBacking()).
		Uint64("total_supply", p.state.Ledger.TotalSupply()).
		Uint64("idle_backing", p.state.IdleBacking).
		Msg("operation committed")
	return nil
}

func (p *Protocol) commit(ctx context.Context, operation string, t *tx) error {
	if err := t.state.checkBacking(); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := p.committer.Commit(ctx, t.changeSet(operation)); err != nil {
		var protocolErr *types.Error
		if errors.As(err, &protocolErr) {
			return err
		}
		return types.NewInternalServiceError(fmt.Errorf("failed to commit %s: %w", operation, err))
	}
	return nil
}

func (p *Protocol) recordState() {
	metrics.RecordLedger(
		p.state.Ledger.TotalBacking(),
		p.state.Ledger.TotalSupply(),
		p.state.Ledger.PegRatio(),
		p.state.IdleBacking,
	)
	metrics.RecordBurnQueueOccupancy(p.state.Queue.Len())
	counts := make(map[string]int)
	for status, n := range p.state.Registry.CountByStatus() {
		counts[status.String()] = n
	}
	metrics.RecordValidatorsByStatus(counts)
}
