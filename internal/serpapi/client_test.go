package serpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 5*time.Second, 3)
	c.baseURL = srv.URL
	c.interval = time.Millisecond
	return c
}

func TestRequestSendsAPIKeyAndParams(t *testing.T) {
	var gotEngine, gotKey, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEngine = r.URL.Query().Get("engine")
		gotKey = r.URL.Query().Get("api_key")
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"search_metadata": {"status": "Success"}}`))
	}))

	data, err := c.Request(context.Background(), map[string]string{
		"engine": "google",
		"q":      "golang",
	})
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if gotEngine != "google" || gotQuery != "golang" {
		t.Errorf("unexpected params: engine=%q q=%q", gotEngine, gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("api_key = %q, want %q", gotKey, "test-key")
	}
	if _, ok := data["search_metadata"]; !ok {
		t.Errorf("decoded response missing search_metadata: %v", data)
	}
}

func TestRequestRetriesTransientErrors(t *testing.T) {
	var attempts int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"organic_results": []}`))
	}))

	if _, err := c.Request(context.Background(), map[string]string{"engine": "google"}); err != nil {
		t.Fatalf("Request failed after transient errors: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRequestExhaustsRetries(t *testing.T) {
	var attempts int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "still broken", http.StatusBadGateway)
	}))

	_, err := c.Request(context.Background(), map[string]string{"engine": "google"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadGateway {
		t.Errorf("error = %v, want StatusError 502", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRequestDoesNotRetryAuthErrors(t *testing.T) {
	var attempts int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))

	_, err := c.Request(context.Background(), map[string]string{"engine": "google"})
	if !IsAuthError(err) {
		t.Fatalf("error = %v, want auth StatusError", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1 (auth errors fail fast)", got)
	}
}

func TestRequestRateLimitPropagatesAfterRetries(t *testing.T) {
	var attempts int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	_, err := c.Request(context.Background(), map[string]string{"engine": "google"})
	if !IsRateLimitError(err) {
		t.Fatalf("error = %v, want rate-limit StatusError", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3 (429 is retried)", got)
	}
}
