// Package nws fetches point forecasts from the National Weather Service API
// (api.weather.gov). A forecast takes two requests: the points endpoint maps
// a coordinate to its grid forecast URL, which is then fetched for periods.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/smartpack/internal/forecast"
)

const (
	DefaultBaseURL   = "https://api.weather.gov/points"
	DefaultUserAgent = "smartpack/1.0 (github.com/i474232898/smartpack)"
)

// Options tunes a Client. Zero values fall back to the defaults above and to
// a single attempt per request.
type Options struct {
	BaseURL    string
	UserAgent  string
	MaxRetries int

	// BreakerName labels the circuit breaker. Clients never share a breaker.
	BreakerName string
}

// Client implements forecast.Fetcher for the National Weather Service.
type Client struct {
	baseURL   string
	userAgent string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewClient creates a Client sharing the given HTTP client.
func NewClient(client *http.Client, opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	if opts.BreakerName == "" {
		opts.BreakerName = "nws"
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         opts.BreakerName,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      opts.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		logger:  logger,
	}
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []periodPayload `json:"periods"`
	} `json:"properties"`
}

type periodPayload struct {
	Name                       string   `json:"name"`
	StartTime                  string   `json:"startTime"`
	Temperature                *float64 `json:"temperature"`
	WindSpeed                  string   `json:"windSpeed"`
	WindDirection              string   `json:"windDirection"`
	ShortForecast              string   `json:"shortForecast"`
	DetailedForecast           string   `json:"detailedForecast"`
	ProbabilityOfPrecipitation struct {
		Value *float64 `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

// Fetch resolves the grid forecast URL for lat/lon and returns its periods in
// feed order. Errors wrap forecast.ErrFetchFailed or forecast.ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) ([]forecast.Period, error) {
	forecastURL, err := c.forecastURL(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("resolve forecast url: %w", err)
	}

	periods, err := c.fetchPeriods(ctx, forecastURL)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	return periods, nil
}

func (c *Client) forecastURL(ctx context.Context, lat, lon float64) (string, error) {
	pointsURL := fmt.Sprintf("%s/%.4f,%.4f", c.baseURL, lat, lon)
	c.logger.Debug("fetching point metadata", zap.String("url", pointsURL))

	var points pointsResponse
	if err := c.getJSON(ctx, pointsURL, &points); err != nil {
		return "", err
	}

	if points.Properties.Forecast == "" {
		return "", fmt.Errorf("%w: forecast url missing for %.4f,%.4f", forecast.ErrMalformedResponse, lat, lon)
	}
	return points.Properties.Forecast, nil
}

func (c *Client) fetchPeriods(ctx context.Context, forecastURL string) ([]forecast.Period, error) {
	c.logger.Debug("fetching forecast feed", zap.String("url", forecastURL))

	var payload forecastResponse
	if err := c.getJSON(ctx, forecastURL, &payload); err != nil {
		return nil, err
	}

	if len(payload.Properties.Periods) == 0 {
		return nil, fmt.Errorf("%w: no forecast periods", forecast.ErrMalformedResponse)
	}

	periods := make([]forecast.Period, 0, len(payload.Properties.Periods))
	for _, p := range payload.Properties.Periods {
		period := forecast.Period{
			StartTime:        p.StartTime,
			Name:             p.Name,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
			Temperature:      p.Temperature,
			WindDirection:    p.WindDirection,
			RainProbability:  p.ProbabilityOfPrecipitation.Value,
		}

		if wind, err := ParseWindSpeed(p.WindSpeed); err == nil {
			period.WindSpeed = forecast.Float(wind)
		} else {
			c.logger.Debug("skipping wind speed", zap.String("period", p.Name), zap.Error(err))
		}

		periods = append(periods, period)
	}
	return periods, nil
}

// getJSON issues a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		// NWS answers 403 without a User-Agent.
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/geo+json")
		return req, nil
	}

	resp, err := doRequest(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", forecast.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", forecast.ErrMalformedResponse, url, err)
	}
	return nil
}

var _ forecast.Fetcher = (*Client)(nil)
