package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type payload struct {
	Value string `json:"value"`
}

// sleepRecorder captures backoff durations instead of sleeping.
type sleepRecorder struct {
	sleeps []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return nil
}

func policyWith(attempts int, recorder *sleepRecorder) RetryPolicy {
	return RetryPolicy{
		Attempts:    attempts,
		BackoffBase: 500 * time.Millisecond,
		Sleep:       recorder.sleep,
	}
}

// TestDoPostJSON_SuccessFirstAttempt verifies that a healthy endpoint is
// called exactly once with no backoff.
func TestDoPostJSON_SuccessFirstAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	out, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "key", map[string]string{}, policyWith(3, recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Value != "ok" {
		t.Errorf("expected value 'ok', got %q", out.Value)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if len(recorder.sleeps) != 0 {
		t.Errorf("expected no sleeps, got %v", recorder.sleeps)
	}
}

// TestDoPostJSON_RetriesThenSuccess verifies the documented backoff
// sequence: failures on attempts 0 and 1 sleep 500ms then 1000ms, and the
// call returns the payload of attempt 2.
func TestDoPostJSON_RetriesThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"value":"third time lucky"}`))
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	out, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "key", map[string]string{}, policyWith(3, recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Value != "third time lucky" {
		t.Errorf("expected success payload from attempt 2, got %q", out.Value)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}

	want := []time.Duration{500 * time.Millisecond, 1000 * time.Millisecond}
	if len(recorder.sleeps) != len(want) {
		t.Fatalf("expected sleeps %v, got %v", want, recorder.sleeps)
	}
	for i := range want {
		if recorder.sleeps[i] != want[i] {
			t.Errorf("sleep %d: expected %v, got %v", i, want[i], recorder.sleeps[i])
		}
	}
}

// TestDoPostJSON_ExhaustsRetries verifies that a persistently failing
// endpoint is attempted exactly Attempts times with Attempts-1 sleeps, and
// the final error wraps ErrRetriesExhausted.
func TestDoPostJSON_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	_, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "key", map[string]string{}, policyWith(3, recorder))
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}

	if calls.Load() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls.Load())
	}
	if len(recorder.sleeps) != 2 {
		t.Fatalf("expected exactly 2 sleeps (never a 3rd), got %v", recorder.sleeps)
	}
	if recorder.sleeps[0] != 500*time.Millisecond || recorder.sleeps[1] != 1000*time.Millisecond {
		t.Errorf("expected sleeps [500ms 1s], got %v", recorder.sleeps)
	}
}

// TestDoPostJSON_NonRetryableStatus verifies that a client error fails
// immediately without retries.
func TestDoPostJSON_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	_, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "key", map[string]string{}, policyWith(3, recorder))
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("a 400 must not be retried, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt, got %d", calls.Load())
	}
	if len(recorder.sleeps) != 0 {
		t.Errorf("expected no sleeps, got %v", recorder.sleeps)
	}
}

// TestDoPostJSON_NonDeserializableBodyRetried verifies that a 200 response
// whose body is not JSON counts as a transport failure and is retried.
func TestDoPostJSON_NonDeserializableBodyRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte("<html>not json</html>"))
			return
		}
		w.Write([]byte(`{"value":"recovered"}`))
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	out, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "key", map[string]string{}, policyWith(3, recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != "recovered" {
		t.Errorf("expected recovered payload, got %q", out.Value)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

// TestDoPostJSON_ConnectionErrorRetried verifies that connection failures
// are retried until exhaustion.
func TestDoPostJSON_ConnectionErrorRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	recorder := &sleepRecorder{}
	_, err := DoPostJSON[payload](context.Background(), http.DefaultClient, server.URL, "key", map[string]string{}, policyWith(2, recorder))
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if len(recorder.sleeps) != 1 {
		t.Errorf("expected 1 sleep, got %v", recorder.sleeps)
	}
}

// TestDoPostJSON_BearerAndHeaders verifies the Authorization header is set
// only when a key is supplied, and extra headers are applied.
func TestDoPostJSON_BearerAndHeaders(t *testing.T) {
	var gotAuth, gotExtra string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotExtra = r.Header.Get("X-Extra")
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer server.Close()

	recorder := &sleepRecorder{}
	_, err := DoPostJSON[payload](context.Background(), server.Client(), server.URL, "secret", map[string]string{},
		policyWith(1, recorder), HeaderOption{Key: "X-Extra", Value: "yes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotExtra != "yes" {
		t.Errorf("expected extra header, got %q", gotExtra)
	}

	gotAuth = "unset"
	_, err = DoPostJSON[payload](context.Background(), server.Client(), server.URL, "", map[string]string{}, policyWith(1, recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header with empty key, got %q", gotAuth)
	}
}

// TestDoPostJSON_ContextCancelledDuringBackoff verifies that cancellation
// during a backoff sleep aborts the loop with the context error.
func TestDoPostJSON_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{Attempts: 3, BackoffBase: time.Millisecond}
	_, err := DoPostJSON[payload](ctx, server.Client(), server.URL, "key", map[string]string{}, policy)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
