package hostledger

import (
	"context"
	"time"

	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type hostLedgerWithMetrics struct {
	host HostLedgerInterface
}

func NewHostLedgerWithMetrics(host HostLedgerInterface) *hostLedgerWithMetrics {
	return &hostLedgerWithMetrics{host: host}
}

func (h *hostLedgerWithMetrics) CurrentRound(ctx context.Context) (uint64, error) {
	return runHostLedgerMethodWithMetrics("CurrentRound", func() (uint64, error) {
		return h.host.CurrentRound(ctx)
	})
}

func (h *hostLedgerWithMetrics) Balance(ctx context.Context, account types.Address) (uint64, error) {
	return runHostLedgerMethodWithMetrics("Balance", func() (uint64, error) {
		return h.host.Balance(ctx, account)
	})
}

func (h *hostLedgerWithMetrics) MinBalance(ctx context.Context, account types.Address) (uint64, error) {
	return runHostLedgerMethodWithMetrics("MinBalance", func() (uint64, error) {
		return h.host.MinBalance(ctx, account)
	})
}

func (h *hostLedgerWithMetrics) BlockProposal(ctx context.Context, round uint64) (*types.BlockProposal, error) {
	return runHostLedgerMethodWithMetrics("BlockProposal", func() (*types.BlockProposal, error) {
		return h.host.BlockProposal(ctx, round)
	})
}

func (h *hostLedgerWithMetrics) Submit(ctx context.Context, effects []types.Effect) error {
	_, err := runHostLedgerMethodWithMetrics("Submit", func() (struct{}, error) {
		return struct{}{}, h.host.Submit(ctx, effects)
	})
	return err
}

func runHostLedgerMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	result, err := f()
	metrics.RecordHostClientLatency(time.Since(startTime), method, err != nil)
	return result, err
}
