// Package catalog provides the HTTP transport for signed lookup
// requests. It reports the status code and raw body without
// interpreting either; response policy lives with the caller.
package catalog

import (
	"context"
	"io"
	"net/http"
	"time"

	"paapi-lookup/internal/config"
	"paapi-lookup/internal/utils"
	"paapi-lookup/pkg/errors"

	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Fetch issues a GET against a fully formed signed URL and returns the
// status code with the raw response body. Network-level failures come
// back as transport errors; non-200 statuses are not errors here.
func (c *Client) Fetch(ctx context.Context, requestURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, errors.WrapTransportError(err, "lookup request failed", "failed to create request")
	}
	req.Header.Set("traceparent", utils.TraceparentFromContext(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.WrapTransportError(err, "lookup request failed", "http request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.WrapTransportError(err, "lookup request failed", "failed to read response body")
	}

	c.logger.Debug("catalog response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(body)))

	return resp.StatusCode, body, nil
}
