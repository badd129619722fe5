// Package providers fetches exchange rates from external sources.
package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/sethvargo/go-retry"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	maxBodyBytes       = 16 << 20
)

// fetcher performs GET requests with exponential backoff. Transport errors and
// 5xx/429 responses are retried; other statuses fail immediately.
type fetcher struct {
	client      *http.Client
	baseBackoff time.Duration
	maxRetries  uint64
}

func newFetcher(client *http.Client) fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return fetcher{client: client, baseBackoff: time.Second, maxRetries: 2}
}

func (f fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	backoff := retry.WithMaxRetries(f.maxRetries, retry.NewExponential(f.baseBackoff))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(fmt.Errorf("unexpected status %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", apperrors.ErrProvider, redact(rawURL), err)
	}
	return body, nil
}

// redact hides the API token when a URL ends up in an error message.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
