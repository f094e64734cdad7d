package hostledger

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/clients/client"
	"github.com/babylonlabs-io/liquid-staking-core/internal/config"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
	"github.com/babylonlabs-io/liquid-staking-core/internal/utils"
)

const (
	statusPath  = "/v1/status"
	accountPath = "/v1/accounts/{account}"
	blockPath   = "/v1/blocks/{round}"
	effectsPath = "/v1/effects"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.HostLedgerConfig
}

func NewClient(cfg *config.HostLedgerConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return strings.TrimRight(c.cfg.URL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

type empty struct{}

type statusResponse struct {
	Round uint64 `json:"round"`
}

type accountResponse struct {
	Address    string `json:"address"`
	Balance    uint64 `json:"balance"`
	MinBalance uint64 `json:"min_balance"`
}

type submitRequest struct {
	Effects []types.Effect `json:"effects"`
}

type submitResponse struct {
	GroupID string `json:"group_id"`
}

func (c *Client) CurrentRound(ctx context.Context) (uint64, error) {
	callForStatus := func() (*statusResponse, error) {
		return client.SendRequest[empty, statusResponse](ctx, c, http.MethodGet, &client.HttpClientOptions{
			Path:         statusPath,
			TemplatePath: statusPath,
		}, nil)
	}

	status, err := clientCallWithRetry(ctx, callForStatus, c.cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to get current round: %w", err)
	}
	return status.Round, nil
}

func (c *Client) account(ctx context.Context, account types.Address) (*accountResponse, error) {
	callForAccount := func() (*accountResponse, error) {
		return client.SendRequest[empty, accountResponse](ctx, c, http.MethodGet, &client.HttpClientOptions{
			Path:         "/v1/accounts/" + account.String(),
			TemplatePath: accountPath,
		}, nil)
	}

	resp, err := clientCallWithRetry(ctx, callForAccount, c.cfg)
	if err != nil {
		// unfunded accounts are unknown to the host
		if types.IsErrorCode(err, types.NotFound) {
			return &accountResponse{Address: account.String()}, nil
		}
		return nil, fmt.Errorf("failed to get account %s: %w", account, err)
	}
	return resp, nil
}

func (c *Client) Balance(ctx context.Context, account types.Address) (uint64, error) {
	resp, err := c.account(ctx, account)
	if err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *Client) MinBalance(ctx context.Context, account types.Address) (uint64, error) {
	resp, err := c.account(ctx, account)
	if err != nil {
		return 0, err
	}
	return resp.MinBalance, nil
}

func (c *Client) BlockProposal(ctx context.Context, round uint64) (*types.BlockProposal, error) {
	callForBlock := func() (*types.BlockProposal, error) {
		return client.SendRequest[empty, types.BlockProposal](ctx, c, http.MethodGet, &client.HttpClientOptions{
			Path:         fmt.Sprintf("/v1/blocks/%d", round),
			TemplatePath: blockPath,
		}, nil)
	}

	proposal, err := clientCallWithRetry(ctx, callForBlock, c.cfg)
	if err != nil {
		if types.IsErrorCode(err, types.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get block %d: %w", round, err)
	}
	return proposal, nil
}

func (c *Client) Submit(ctx context.Context, effects []types.Effect) error {
	if len(effects) == 0 {
		return nil
	}
	resp, err := client.SendRequest[submitRequest, submitResponse](ctx, c, http.MethodPost, &client.HttpClientOptions{
		Path:         effectsPath,
		TemplatePath: effectsPath,
	}, &submitRequest{Effects: effects})
	if err != nil {
		return fmt.Errorf("host rejected %d effects: %w", len(effects), err)
	}
	log.Ctx(ctx).Debug().Str("group_id", resp.GroupID).Int("effects", len(effects)).Msg("effects submitted")
	return nil
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[*T], cfg *config.HostLedgerConfig,
) (*T, error) {
	method := utils.GetFunctionName(1)
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(client.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Str("method", method).
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call host ledger, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
