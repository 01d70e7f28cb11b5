package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"world-dashboard/apperrors"
	"world-dashboard/config"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// Client performs JSON GET requests with per-request timeouts and retries.
// Transport failures and 5xx responses are retried, everything else fails fast.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	retry      config.RetryConfig
	logger     *slog.Logger
}

// NewClient creates a client. A zero timeout disables the per-request deadline.
func NewClient(timeout time.Duration, policy config.RetryConfig, logger *slog.Logger) *Client {
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
		retry:      policy,
		logger:     logger,
	}
}

// GetJSON requests endpoint with params and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTransport, "invalid endpoint", err)
	}
	u.RawQuery = params.Encode()
	api := u.Host

	start := time.Now()
	var body []byte
	err = retry.Do(
		func() error {
			var err error
			body, err = c.fetch(ctx, u.String())
			return err
		},
		retry.Attempts(c.retry.Attempts),
		retry.Delay(c.retry.Delay),
		retry.MaxDelay(c.retry.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying API request",
				"api", api,
				"attempt", n+1,
				"error", err,
			)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.logger.Warn("API request failed",
			"api", api,
			"error", err,
			"duration", time.Since(start),
		)
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(apperrors.CodeMalformedResponse, fmt.Sprintf("failed to parse response from %s", api), err)
	}

	c.logger.Debug("API request completed",
		"api", api,
		"duration", time.Since(start),
	)
	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(apperrors.Wrap(apperrors.CodeTransport, "failed to create request", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, "failed to execute request", redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := apperrors.Wrap(apperrors.CodeUpstreamStatus,
			fmt.Sprintf("API error (status %d): %s", resp.StatusCode, truncate(body, 200)), nil)
		if resp.StatusCode >= 500 {
			return nil, statusErr
		}
		return nil, retry.Unrecoverable(statusErr)
	}
	return body, nil
}

// redact strips the query string from url errors so API keys never reach the logs.
func redact(err error) error {
	if ue, ok := err.(*url.Error); ok {
		if u, perr := url.Parse(ue.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
		}
	}
	return err
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
