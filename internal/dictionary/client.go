package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rcrowley/go-metrics"
)

const (
	DefaultBaseURL    = "https://api.dictionaryapi.dev"
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second

	entriesPath = "/api/v2/entries/en/{word}"
)

// WaitFunc suspends the caller for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Wait is the default WaitFunc.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Config struct {
	BaseURL string
	// MaxRetries is the number of retries after the first rate-limited response.
	MaxRetries int
	// BaseDelay is the first backoff; retry n waits BaseDelay * 2^n.
	BaseDelay time.Duration
	Timeout   time.Duration
	Wait      WaitFunc
	Registry  metrics.Registry
}

// Client looks up English definitions from the Free Dictionary API.
type Client struct {
	config     Config
	httpClient *resty.Client
	metrics    lookupMetrics
}

type lookupMetrics struct {
	outcomes map[Outcome]metrics.Counter
	retries  metrics.Counter
	duration metrics.Timer
}

func newLookupMetrics(r metrics.Registry) lookupMetrics {
	m := lookupMetrics{
		outcomes: make(map[Outcome]metrics.Counter),
		retries:  metrics.GetOrRegisterCounter("dictionary.lookup.retries", r),
		duration: metrics.GetOrRegisterTimer("dictionary.lookup.duration", r),
	}
	for _, o := range []Outcome{OutcomeFound, OutcomeNotFound, OutcomeTransientFailure, OutcomePermanentFailure} {
		m.outcomes[o] = metrics.GetOrRegisterCounter("dictionary.lookup."+o.String(), r)
	}
	return m
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.Wait == nil {
		config.Wait = Wait
	}
	if config.Registry == nil {
		config.Registry = metrics.DefaultRegistry
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("Accept", "application/json")
	if config.Timeout > 0 {
		httpClient.SetTimeout(config.Timeout)
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		metrics:    newLookupMetrics(config.Registry),
	}
}

// Lookup fetches the first definition of word. Rate-limited responses are
// retried with exponential backoff; every other failure returns at once.
// Lookup never returns an error: failures are reported through Result.Outcome.
func (c *Client) Lookup(ctx context.Context, word string) Result {
	start := time.Now()
	result := c.lookupWithRetry(ctx, word)
	c.metrics.duration.UpdateSince(start)
	c.metrics.outcomes[result.Outcome].Inc(1)

	logger := slog.Default().With("word", word, "outcome", result.Outcome.String(), "attempts", result.Attempts)
	switch result.Outcome {
	case OutcomeFound:
		logger.Debug("Definition found", "definition", result.Definition)
	case OutcomeNotFound:
		logger.Debug("No definition found")
	default:
		logger.Error("Failed to fetch definition", "error", result.Err)
	}
	return result
}

func (c *Client) lookupWithRetry(ctx context.Context, word string) Result {
	var result Result
	for attempt := 0; ; attempt++ {
		result = c.fetch(ctx, word)
		result.Attempts = attempt + 1
		if !errors.Is(result.Err, ErrRateLimited) {
			return result
		}
		if attempt >= c.config.MaxRetries {
			result.Err = fmt.Errorf("failed after %d retries: %w", c.config.MaxRetries, result.Err)
			return result
		}

		backoff := c.config.BaseDelay * time.Duration(math.Pow(2, float64(attempt)))
		slog.Default().Info("Rate limited by dictionary API, retrying",
			"word", word,
			"attempt", attempt+1,
			"backoff", backoff)
		c.metrics.retries.Inc(1)

		if err := c.config.Wait(ctx, backoff); err != nil {
			result.Err = fmt.Errorf("wait for backoff > %w", err)
			return result
		}
	}
}

func (c *Client) fetch(ctx context.Context, word string) Result {
	result := Result{Word: word}

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get(entriesPath)
	if err != nil {
		result.Outcome = OutcomeTransientFailure
		result.Err = fmt.Errorf("client.R.Get > %w", err)
		return result
	}
	result.SourceURL = res.Request.URL

	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		result.Outcome = OutcomeNotFound
		return result
	case http.StatusTooManyRequests:
		result.Outcome = OutcomeTransientFailure
		result.Err = ErrRateLimited
		return result
	default:
		result.Outcome = OutcomePermanentFailure
		result.Err = fmt.Errorf("%w: status code: %d, body: %s", ErrUnexpectedStatus, res.StatusCode(), string(res.Body()))
		return result
	}

	definition, ok, err := ParseDefinition(res.Body())
	if err != nil {
		result.Outcome = OutcomePermanentFailure
		result.Err = err
		return result
	}
	if !ok {
		result.Outcome = OutcomeNotFound
		return result
	}

	result.Outcome = OutcomeFound
	result.Definition = definition
	result.RawResponse = res.Body()
	return result
}
