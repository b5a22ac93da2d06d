package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/credlens/credlens/internal/cache"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(5*time.Second, "credlens-test/1.0", 1<<20, false, "", "", "")
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "credlens-test/1.0" {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Hello</p></body></html>"))
	}))
	defer server.Close()

	result, err := newTestFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(result.HTML, "Hello") {
		t.Errorf("expected body content, got %q", result.HTML)
	}
	if result.Meta.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", result.Meta.StatusCode)
	}
	if result.Meta.ContentType != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", result.Meta.ContentType)
	}
	if result.FromCache {
		t.Error("expected a network fetch, not a cache hit")
	}
}

func TestFetcher_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "credlens-test/1.0", 100, false, "", "", "")

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.HTML) != 100 {
		t.Errorf("expected body truncated to 100 bytes, got %d", len(result.HTML))
	}
}

func TestFetcher_PermanentErrorNoRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = time.Sleep }()

	_, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if requests != 1 {
		t.Errorf("expected no retries on 404, got %d requests", requests)
	}
}

func TestFetcher_RetriesTransientThenSucceeds(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<html><body>recovered</body></html>"))
	}))
	defer server.Close()

	var slept []time.Duration
	fetchSleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { fetchSleepFunc = time.Sleep }()

	result, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchWithRetry failed: %v", err)
	}
	if !strings.Contains(result.HTML, "recovered") {
		t.Errorf("expected recovered body, got %q", result.HTML)
	}
	if requests != 3 {
		t.Errorf("expected 3 requests, got %d", requests)
	}
	if len(slept) != 2 || slept[0] != 1*time.Second || slept[1] != 2*time.Second {
		t.Errorf("expected increasing backoff, got %v", slept)
	}
}

func TestFetcher_ExhaustsRetries(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetchSleepFunc = func(time.Duration) {}
	defer func() { fetchSleepFunc = time.Sleep }()

	_, err := newTestFetcher().FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if requests != 3 {
		t.Errorf("expected 3 attempts, got %d", requests)
	}
}

func TestFetcher_CacheHit(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("<html><body>cached page</body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher()
	f.SetCache(cache.NewMemoryCache(time.Minute))

	first, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if first.FromCache {
		t.Error("first fetch should not be a cache hit")
	}

	second, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if !second.FromCache {
		t.Error("second fetch should be served from cache")
	}
	if second.HTML != first.HTML {
		t.Error("cached HTML does not match original")
	}
	if requests != 1 {
		t.Errorf("expected a single upstream request, got %d", requests)
	}
}
