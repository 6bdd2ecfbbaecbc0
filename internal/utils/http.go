package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parley-ai/parley/providers/observability"
)

// ErrRetriesExhausted is returned by DoPostJSON when every attempt failed at
// the transport level. It wraps the last underlying error, so callers can use
// errors.Is / errors.As to inspect the root cause.
var ErrRetriesExhausted = errors.New("parley: transport retries exhausted")

// RetryPolicy controls the bounded retry loop in DoPostJSON. Zero values are
// replaced with the documented defaults.
type RetryPolicy struct {
	// Attempts is the total number of transport attempts, including the
	// first one. Must be >= 1. Default: 3.
	Attempts int

	// BackoffBase is the sleep before the second attempt. The sleep before
	// attempt n+1 is BackoffBase * 2^(n-1): deterministic and unjittered, so
	// the full backoff sequence is known from the attempt index alone.
	// Default: 500ms.
	BackoffBase time.Duration

	// Sleep waits for the given duration or until ctx is done. Nil selects
	// the real clock; tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 3
	}
	if p.BackoffBase <= 0 {
		p.BackoffBase = 500 * time.Millisecond
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	return p
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HeaderOption adds one request header on top of the defaults.
type HeaderOption struct {
	Key   string
	Value string
}

// retryableStatus reports whether an HTTP status is a transient,
// transport-level failure worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, 529:
		return true
	}
	return false
}

// DoPostJSON performs an HTTP POST with a JSON body and decodes the response
// into Out, retrying transport-level failures under the given policy.
//
// Retried failures: request send errors (connection, timeout, DNS), body
// read errors, transient HTTP statuses (429, 500, 502, 503, 529), and a
// 2xx body that is not deserializable JSON. Other non-2xx statuses fail
// immediately. Semantic validation of the decoded value is the caller's
// concern and happens above this function; a decoded response is final and
// is never re-sent.
//
// When apiKey is non-empty it is sent as a bearer token; providers with a
// different authentication scheme pass an empty key and supply their own
// HeaderOption or query parameter.
func DoPostJSON[Out any](ctx context.Context, client *http.Client, url, apiKey string, body any, policy RetryPolicy, headers ...HeaderOption) (*Out, error) {
	observer := observability.FromContext(ctx)
	policy = policy.withDefaults()

	if client == nil {
		client = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request body: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if attempt > 0 {
			backoff := policy.BackoffBase << (attempt - 1)
			observer.Warn(ctx, "transport attempt failed, backing off",
				observability.String(observability.AttrURL, url),
				observability.Int(observability.AttrAttempt, attempt-1),
				observability.Duration(observability.AttrBackoff, backoff),
				observability.Error(lastErr),
			)
			if err := policy.Sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		out, retryable, err := postOnce[Out](ctx, client, url, apiKey, jsonBody, headers)
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, policy.Attempts, lastErr)
}

// postOnce performs a single POST attempt. The second return value reports
// whether the failure is transport-level and may be retried.
func postOnce[Out any](ctx context.Context, client *http.Client, url, apiKey string, jsonBody []byte, headers []HeaderOption) (*Out, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, false, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			observability.FromContext(ctx).Warn(ctx, "failed to close response body",
				observability.String(observability.AttrURL, url),
				observability.Error(closeErr),
			)
		}
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, true, fmt.Errorf("error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		err := fmt.Errorf("non-2xx status %d: %s", res.StatusCode, TruncateString(string(respBody), 200))
		return nil, retryableStatus(res.StatusCode), err
	}

	var out Out
	if err := json.Unmarshal(respBody, &out); err != nil {
		// A body that is not JSON at all is a transport-level failure:
		// the payload never reached us intact.
		return nil, true, fmt.Errorf("error unmarshaling response body (status %d): %w; preview: %s",
			res.StatusCode, err, TruncateString(string(respBody), 200))
	}

	return &out, false, nil
}
