package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "rmxlrc"

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	// Code is the HTTP status code.
	Code int

	// Status is the status line, e.g. "503 Service Unavailable".
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Transient reports whether the status is worth retrying (5xx and 429).
func (e *StatusError) Transient() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// RetryPolicy bounds how often and how patiently a GET is retried.
//
// The wait before retry n (0-based) is Cooldown * Exponent^n seconds.
//
// Example:
//
//	policy := RetryPolicy{MaxAttempts: 3, Cooldown: 0.5, Exponent: 2}
//	// waits 0.5s, then 1s, then gives up
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first one.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Cooldown is the base wait in seconds.
	Cooldown float64

	// Exponent grows the wait after each failed try.
	Exponent float64
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Cooldown: 0.5, Exponent: 2}
}

// delay returns the wait before retry number tries (0-based).
func (p RetryPolicy) delay(tries int) time.Duration {
	seconds := p.Cooldown * math.Pow(p.Exponent, float64(tries))
	return time.Duration(seconds * float64(time.Second))
}

// Client wraps HTTP GETs with the configuration the lyrics provider needs.
//
// Client provides:
//   - A fixed User-Agent and optional extra headers on every request
//   - A per-request timeout
//   - Bounded retries with exponential cooldown for transport errors,
//     5xx and 429 responses
//
// Example usage:
//
//	client := NewClient(10*time.Second, DefaultRetryPolicy(), logger)
//	client.SetHeader("cookie", "x-mxm-token-guid=")
//
//	body, err := client.Get(ctx, "https://example.com/ws/1.1/token.get", url.Values{"app_id": {"x"}})
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	retry      RetryPolicy
	logger     zerolog.Logger
}

// NewClient creates a new HTTP client.
//
// A timeout of zero disables the per-request timeout; callers should
// always pass one in production.
func NewClient(timeout time.Duration, retry RetryPolicy, logger zerolog.Logger) *Client {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: DefaultUserAgent,
		headers:   make(map[string]string),
		retry:     retry,
		logger:    logger.With().Str("component", "http").Logger(),
	}
}

// SetHeader adds a header sent with every request. It must be called
// before the client is shared between goroutines.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetUserAgent overrides DefaultUserAgent.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// Get performs a GET request with the given query parameters and returns
// the response body.
//
// Transport errors, 5xx and 429 responses are retried according to the
// retry policy. Other non-200 responses fail immediately with a
// *StatusError. Cancellation of ctx stops retrying at once.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	target := rawURL
	if len(query) > 0 {
		target = rawURL + "?" + query.Encode()
	}

	var lastErr error
	for tries := 0; tries < c.retry.MaxAttempts; tries++ {
		if tries > 0 {
			c.logger.Debug().Err(lastErr).Int("attempt", tries+1).Str("url", rawURL).Msg("retrying request")
			if err := c.waitForRetry(ctx, tries-1); err != nil {
				return nil, err
			}
		}

		body, err := c.get(ctx, target)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// A body cut short by a timeout or reset is a transport error.
		return nil, &url.Error{Op: "Get", URL: target, Err: err}
	}
	return body, nil
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.retry.delay(tries)):
		return nil
	}
}

// retryable reports whether err is a transient failure. Status errors are
// retryable only for 5xx and 429; everything else that reached this point
// is a transport failure and is retried.
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return false
}
