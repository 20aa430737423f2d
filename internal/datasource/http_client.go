package datasource

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/gridiron-prophet/internal/metrics"
)

// HTTPClientConfig holds configuration for outbound HTTP clients.
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the breaker opens
}

// DefaultHTTPClientConfig returns recommended defaults. The odds API bills
// per request, so the rate ceiling stays low.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      200 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         2.0,
		CircuitBreakerMax: 5,
	}
}

// breaker counts consecutive transport failures. Once the threshold is hit
// every call fails fast until a request gets through again. Scheduled jobs
// share one client, so the state is mutex guarded.
type breaker struct {
	mu        sync.Mutex
	max       int
	failures  int
	open      bool
	lastError error
}

func (b *breaker) check() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return fmt.Errorf("circuit breaker open: %v", b.lastError)
	}
	return nil
}

// fail records a transport failure and reports whether this one opened the
// breaker.
func (b *breaker) fail(err error) (tripped bool, failures int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.lastError = err
	if !b.open && b.failures >= b.max {
		b.open = true
		return true, b.failures
	}
	return false, b.failures
}

func (b *breaker) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.open = false
}

// RateLimitedHTTPClient layers a request rate limit and a circuit breaker on
// top of retryablehttp.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	breaker breaker
	log     *logrus.Entry
}

// NewRateLimitedHTTPClient builds a client from the given limits.
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, baseLogger *logrus.Logger) *RateLimitedHTTPClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.Logger = nil

	return &RateLimitedHTTPClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		breaker: breaker{max: cfg.CircuitBreakerMax},
		log:     baseLogger.WithField("component", "http_client"),
	}
}

// Do executes a request, waiting out the rate limiter first. Responses below
// 500 count as upstream contact and reset the breaker even when the status
// itself is an error.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.breaker.check(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(retryReq.WithContext(ctx))
	if err != nil {
		if tripped, failures := c.breaker.fail(err); tripped {
			metrics.RecordCircuitBreakerTrip()
			c.log.WithError(err).WithField("consecutive_errors", failures).
				Error("Circuit breaker opened")
		}
		return nil, err
	}

	if resp.StatusCode < http.StatusInternalServerError {
		c.breaker.reset()
	}
	return resp, nil
}

// Get executes a GET request against url.
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Close releases idle connections.
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryPolicy retries transport errors plus the upstream statuses worth a
// second attempt.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err != nil {
		return true, err
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}
