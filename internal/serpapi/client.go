package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// StatusError is returned when SerpApi answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("serpapi: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsAuthError reports whether err is a credential rejection (401/403).
func IsAuthError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) &&
		(se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden)
}

// IsRateLimitError reports whether err is a SerpApi rate-limit response (429).
func IsRateLimitError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// Client is an HTTP client for the SerpApi search endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxTries   uint64
	interval   time.Duration
}

// NewClient creates a SerpApi client with a bounded request timeout and a
// fixed number of total attempts per request.
func NewClient(apiKey string, timeout time.Duration, maxTries int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxTries < 1 {
		maxTries = 3
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxTries:   uint64(maxTries),
		interval:   500 * time.Millisecond,
	}
}

// Request performs one GET against SerpApi with the given parameters plus the
// configured api_key, retrying transient failures (network errors and non-2xx
// statuses) with exponential backoff. Credential rejections (401/403) fail
// fast without retry. Errors propagate unchanged; translation to user-facing
// responses happens at the REST boundary.
func (c *Client) Request(ctx context.Context, params map[string]string) (map[string]any, error) {
	var result map[string]any

	operation := func() error {
		data, err := c.do(ctx, params)
		if err != nil {
			if IsAuthError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = data
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.interval
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, c.maxTries-1), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		log.Printf("[SerpApi] Request failed (engine=%s): %v", params["engine"], err)
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, params map[string]string) (map[string]any, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return data, nil
}
