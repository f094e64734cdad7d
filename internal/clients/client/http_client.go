package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/liquid-staking-core/internal/observability/metrics"
	"github.com/babylonlabs-io/liquid-staking-core/internal/types"
)

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout      time.Duration
	Path         string
	TemplatePath string // Metrics purpose
	Headers      map[string]string
}

// SendRequest sends an HTTP request with the JSON encoded payload and decodes
// the JSON response into R. Non 2xx responses become *types.Error with a
// code derived from the status.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path
	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
				fmt.Errorf("failed to marshal request payload: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
			fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	timer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)
	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		timer(0)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, types.NewError(http.StatusRequestTimeout, types.InternalServiceError,
				fmt.Errorf("request to %s timed out: %w", opts.TemplatePath, err))
		}
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
			fmt.Errorf("failed to send request to %s: %w", opts.TemplatePath, err))
	}
	defer resp.Body.Close()
	timer(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Ctx(ctx).Debug().
			Int("status", resp.StatusCode).
			Str("path", opts.TemplatePath).
			Str("body", string(raw)).
			Msg("unexpected response from host")
		return nil, errorFromStatus(resp.StatusCode, opts.TemplatePath, raw)
	}

	var out R
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, types.NewError(http.StatusInternalServerError, types.InternalServiceError,
			fmt.Errorf("failed to decode response from %s: %w", opts.TemplatePath, err))
	}
	return &out, nil
}

func errorFromStatus(status int, path string, body []byte) *types.Error {
	err := fmt.Errorf("%s returned %d: %s", path, status, bytes.TrimSpace(body))
	switch {
	case status == http.StatusNotFound:
		return types.NewError(status, types.NotFound, err)
	case status == http.StatusConflict:
		return types.NewError(status, types.AlreadyExists, err)
	case status >= 400 && status < 500:
		return types.NewError(status, types.BadRequest, err)
	default:
		return types.NewError(status, types.InternalServiceError, err)
	}
}

// IsRetryable reports whether a failed request may succeed when sent again
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if types.IsErrorCode(err, types.NotFound) ||
		types.IsErrorCode(err, types.AlreadyExists) ||
		types.IsErrorCode(err, types.BadRequest) {
		return false
	}
	return true
}
