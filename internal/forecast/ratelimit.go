package forecast

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedFetcher wraps a Fetcher with a token bucket so that callers
// outside the batch job (live dashboard lookups) cannot flood the remote service.
type RateLimitedFetcher struct {
	fetcher Fetcher
	limiter *rate.Limiter
	maxWait time.Duration
}

// NewRateLimitedFetcher allows rps requests per second with bursts of up to burst.
// rps may be fractional. A call waits at most maxWait for a token; zero means
// it waits as long as its context allows.
func NewRateLimitedFetcher(fetcher Fetcher, rps float64, burst int, maxWait time.Duration) *RateLimitedFetcher {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		maxWait: maxWait,
	}
}

// Fetch waits for limiter permission, then forwards with the caller's context.
// maxWait bounds only the wait, never the fetch.
func (r *RateLimitedFetcher) Fetch(ctx context.Context, lat, lon float64) ([]Period, error) {
	if err := r.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return r.fetcher.Fetch(ctx, lat, lon)
}

func (r *RateLimitedFetcher) wait(ctx context.Context) error {
	if r.maxWait <= 0 {
		return r.limiter.Wait(ctx)
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.maxWait)
	defer cancel()
	return r.limiter.Wait(waitCtx)
}

var _ Fetcher = (*RateLimitedFetcher)(nil)
