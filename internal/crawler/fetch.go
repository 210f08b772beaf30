package crawler

import (
	"context"
	"net/http"

	"sjsage522/contactscraper/helpers"
	scrapererrors "sjsage522/contactscraper/pkg/errors"
)

// Fetcher downloads pages with a fixed number of identically retried attempts
type Fetcher struct {
	client *http.Client
	policy RetryPolicy
	logger helpers.LoggerInterface
	sleep  helpers.SleepFunc
}

// NewFetcher creates a fetcher for the given retry policy
func NewFetcher(policy RetryPolicy, logger helpers.LoggerInterface) *Fetcher {
	return &Fetcher{
		client: helpers.NewClient(policy.Timeout),
		policy: policy,
		logger: logger,
		sleep:  helpers.Sleep,
	}
}

// WithSleep replaces the pause used between attempts
func (f *Fetcher) WithSleep(sleep helpers.SleepFunc) *Fetcher {
	f.sleep = sleep
	return f
}

// Fetch returns the page body on the first 200 response. Every failure, whatever
// its cause, is followed by a random pause and another attempt until the policy
// is exhausted. Only context cancellation interrupts the loop early.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.policy.MaxAttempts; attempt++ {
		f.logger.LogDebug("Requesting URL: %s (Attempt %d)", url, attempt)

		body, status, err := helpers.FetchPage(ctx, f.client, url)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		switch {
		case err == nil:
			f.logger.LogDebug("Status code: %d", status)
			return body, nil
		case status != 0 && status != http.StatusOK:
			f.logger.LogDebug("Status code: %d", status)
			f.logger.LogDebug("Non-200 response: %d", status)
		default:
			f.logger.LogDebug("Request failed: %v", err)
		}
		lastErr = err

		if err := f.sleep(ctx, helpers.RandomDuration(f.policy.AttemptDelay.Min, f.policy.AttemptDelay.Max)); err != nil {
			return nil, err
		}
	}

	f.logger.LogDebug("!!! FINAL FAILURE: Could not fetch page even after retries.")
	return nil, scrapererrors.NewExhausted(url, f.policy.MaxAttempts, lastErr)
}
