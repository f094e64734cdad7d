package hostledger

import (
	"context"

	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

//go:generate mockery --name=HostLedgerInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_host_ledger_client.go
type HostLedgerInterface interface {
	CurrentRound(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, account types.Address) (uint64, error)
	MinBalance(ctx context.Context, account types.Address) (uint64, error)
	// BlockProposal returns nil when the host knows no proposal for round
	BlockProposal(ctx context.Context, round uint64) (*types.BlockProposal, error)
	// Submit applies effects as one atomic group. It is not idempotent and
	// is never retried.
	Submit(ctx context.Context, effects []types.Effect) error
}
