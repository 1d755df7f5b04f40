package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultRetryDelay  = time.Second
)

// ICSFeedOptions configures an ICSFeed
type ICSFeedOptions struct {
	URL        string
	Location   *time.Location
	Exclude    []string
	Timeout    time.Duration // Per attempt
	Attempts   int           // Total attempts, 1 disables retrying
	RetryDelay time.Duration
}

// ICSFeed implements HolidayProvider over a remote iCalendar feed
type ICSFeed struct {
	url        string
	location   *time.Location
	exclusions Exclusions
	attempts   uint
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewICSFeed creates a new ICSFeed instance
func NewICSFeed(opts ICSFeedOptions, logger *zap.Logger) *ICSFeed {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := opts.RetryDelay
	if delay < 0 {
		delay = defaultRetryDelay
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &ICSFeed{
		url:        opts.URL,
		location:   loc,
		exclusions: NewExclusions(opts.Exclude),
		attempts:   uint(attempts),
		retryDelay: delay,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchHolidays downloads and parses the feed
func (f *ICSFeed) FetchHolidays(ctx context.Context) ([]Holiday, error) {
	body, err := f.download(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := parseICS(body, f.location, f.logger)
	if err != nil {
		return nil, err
	}

	kept := f.exclusions.Filter(holidays)

	f.logger.Info("Holiday feed fetched",
		zap.String("url", f.url),
		zap.Int("events", len(holidays)),
		zap.Int("holidays", len(kept)))

	return kept, nil
}

// download fetches the feed body, retrying transient failures
func (f *ICSFeed) download(ctx context.Context) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			b, err := f.downloadOnce(ctx)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("Holiday feed request failed",
				zap.Uint("attempt", n+1),
				zap.Uint("max_attempts", f.attempts),
				zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return body, nil
}

// downloadOnce performs a single HTTP request
func (f *ICSFeed) downloadOnce(ctx context.Context) ([]byte, error) {
	f.logger.Debug("Fetching holiday feed", zap.String("url", f.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
