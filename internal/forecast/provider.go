package forecast

import (
	"context"
	"errors"
)

var (
	// ErrFetchFailed is returned when a remote call fails at the transport level
	// or answers with a non-success status.
	ErrFetchFailed = errors.New("forecast fetch failed")

	// ErrMalformedResponse is returned when a remote answer lacks the fields
	// needed to build a forecast.
	ErrMalformedResponse = errors.New("malformed forecast response")

	// ErrRateLimited is returned when a rate-limited fetcher refuses to wait
	// for a token within the caller's deadline.
	ErrRateLimited = errors.New("forecast rate limit exceeded")
)

// Fetcher abstracts a point forecast source (e.g. the National Weather Service).
// Implementations return either the full ordered period list or an error,
// never a partial result.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) ([]Period, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, lat, lon float64) ([]Period, error)

func (f FetcherFunc) Fetch(ctx context.Context, lat, lon float64) ([]Period, error) {
	return f(ctx, lat, lon)
}
