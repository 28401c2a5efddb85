package httpclient

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// RetryHandlerConfig configures the retry handler. The policy wraps the
// whole fetch-and-status check: transport errors and non-2xx responses are
// both retryable.
type RetryHandlerConfig struct {
	MaxAttempts  int           `json:"max_attempts"`
	BaseDelay    time.Duration `json:"base_delay"`
	MaxDelay     time.Duration `json:"max_delay"`
	EnableJitter bool          `json:"enable_jitter"`
}

// DefaultRetryHandlerConfig returns the default retry policy: at most 3
// attempts total with exponential backoff between 4s and 10s.
func DefaultRetryHandlerConfig() RetryHandlerConfig {
	return RetryHandlerConfig{
		MaxAttempts:  3,
		BaseDelay:    4 * time.Second,
		MaxDelay:     10 * time.Second,
		EnableJitter: false,
	}
}

// RetryHandler retries HTTP requests with exponential backoff.
type RetryHandler struct {
	maxAttempts  int
	baseDelay    time.Duration
	maxDelay     time.Duration
	enableJitter bool
	logger       zerolog.Logger
}

// NewRetryHandler creates a new retry handler.
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &RetryHandler{
		maxAttempts:  maxAttempts,
		baseDelay:    config.BaseDelay,
		maxDelay:     config.MaxDelay,
		enableJitter: config.EnableJitter,
		logger:       logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// CalculateDelay returns the backoff delay before the given retry attempt
// (attempt counts from 0 for the first retry).
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	delay := rh.baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if delay > rh.maxDelay {
		delay = rh.maxDelay
	}
	if rh.enableJitter && delay > 0 {
		jitter := time.Duration(rand.Intn(int(delay.Milliseconds()/10)+1)) * time.Millisecond
		delay += jitter
	}
	return delay
}

// isRetryable treats any transport error and any non-2xx response as a
// failed attempt.
func isRetryable(resp *HTTPResponse, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode < 200 || resp.StatusCode >= 300
}

// waitForRetry sleeps for the backoff delay, honoring context cancellation.
func (rh *RetryHandler) waitForRetry(ctx context.Context, attempt int, url string) error {
	delay := rh.CalculateDelay(attempt)

	rh.logger.Warn().
		Str("url", url).
		Int("attempt", attempt+1).
		Int("max_attempts", rh.maxAttempts).
		Dur("delay", delay).
		Msg("Attempt failed, waiting before retry")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// DoWithRetry executes an HTTP request with retry logic. It returns the
// last response on success, or the last error (wrapped) once all attempts
// are exhausted. A non-2xx final response is surfaced as an HTTPError.
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastResp *HTTPResponse
	var lastErr error

	for attempt := 0; attempt < rh.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := doFunc(req)
		lastResp = resp
		lastErr = err

		if !isRetryable(resp, err) {
			return resp, nil
		}

		if attempt < rh.maxAttempts-1 {
			if waitErr := rh.waitForRetry(ctx, attempt, req.URL); waitErr != nil {
				return nil, waitErr
			}
		}
	}

	if lastErr != nil {
		return nil, WrapError(lastErr, "all retry attempts failed")
	}

	body := lastResp.Body
	if len(body) > 1024 {
		body = body[:1024]
	}
	return lastResp, NewHTTPErrorWithURL(lastResp.StatusCode, string(body), req.URL)
}
