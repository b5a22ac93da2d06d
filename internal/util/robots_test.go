package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func robotsServer(t *testing.T, robotsBody string, robotsStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(robotsStatus)
			_, _ = w.Write([]byte(robotsBody))
			return
		}
		_, _ = w.Write([]byte("page"))
	}))
}

func TestRobotsChecker_Disallowed(t *testing.T) {
	server := robotsServer(t, "User-agent: *\nDisallow: /private/\n", http.StatusOK)
	defer server.Close()

	checker := NewRobotsChecker("credlens", 5*time.Second)
	ctx := context.Background()

	if !checker.IsAllowed(ctx, server.URL+"/public/article") {
		t.Error("expected public path to be allowed")
	}
	if checker.IsAllowed(ctx, server.URL+"/private/article") {
		t.Error("expected private path to be disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := robotsServer(t, "", http.StatusNotFound)
	defer server.Close()

	checker := NewRobotsChecker("credlens", 5*time.Second)

	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("expected missing robots.txt to allow fetching")
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	checker := NewRobotsChecker("credlens", 100*time.Millisecond)

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/article")
	if err != nil {
		t.Fatalf("CanFetch returned error: %v", err)
	}
	if !allowed {
		t.Error("expected unreachable robots.txt to allow fetching")
	}
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := robotsServer(t, "User-agent: *\nCrawl-delay: 2\n", http.StatusOK)
	defer server.Close()

	checker := NewRobotsChecker("credlens", 5*time.Second)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected fetch to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("expected 2s crawl delay, got %v", delay)
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	robotsRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsRequests++
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("credlens", 5*time.Second)
	ctx := context.Background()

	checker.IsAllowed(ctx, server.URL+"/a")
	checker.IsAllowed(ctx, server.URL+"/b")
	checker.IsAllowed(ctx, server.URL+"/c")

	if robotsRequests != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", robotsRequests)
	}

	checker.Clear()
	checker.IsAllowed(ctx, server.URL+"/d")
	if robotsRequests != 2 {
		t.Errorf("expected refetch after Clear, got %d", robotsRequests)
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"credlens/1.0 (+https://example.com)", "credlens"},
		{"credlens", "credlens"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeUserAgent(tc.in); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
