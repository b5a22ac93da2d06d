package pipeline

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/util"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// Fetcher fetches HTML content from URLs, optionally through a page cache
// and a robots.txt checker
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	pageCache  cache.Cache
	robots     *util.RobotsChecker
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// SetCache enables page caching
func (f *Fetcher) SetCache(c cache.Cache) {
	f.pageCache = c
}

// SetRobots enables robots.txt checking
func (f *Fetcher) SetRobots(r *util.RobotsChecker) {
	f.robots = r
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML      string          `json:"html"`
	Meta      model.FetchMeta `json:"meta"`
	FinalURL  string          `json:"final_url"`
	FromCache bool            `json:"-"`
}

// Fetch retrieves HTML content from the given URL, serving from the page
// cache when possible
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.pageCache != nil {
		if data, found := f.pageCache.Get(cache.Key(rawURL)); found {
			var result FetchResult
			if err := json.Unmarshal(data, &result); err == nil {
				result.FromCache = true
				return &result, nil
			}
		}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("fetch %s: disallowed by robots.txt", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}

	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result := &FetchResult{
		HTML:     string(body),
		Meta:     meta,
		FinalURL: resp.Request.URL.String(),
	}

	if f.pageCache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = f.pageCache.Set(cache.Key(rawURL), data, 0)
		}
	}

	return result, nil
}

// FetchWithRetry fetches with retries on transient failures (network
// errors, 429, 5xx). Permanent HTTP errors fail immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error

	for attempt := 1; attempt <= fetchMaxRetries; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}

		if attempt < fetchMaxRetries {
			backoff := time.Duration(attempt) * time.Second
			fetchSleepFunc(backoff)
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("fetch after %d attempts: %w", fetchMaxRetries, lastErr)
}

// statusError is a non-2xx HTTP response
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

// isTransient reports whether a fetch failure is worth retrying
func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}

	// Network-level failures are retried; structural errors
	// (robots denial, malformed request) are not
	var ue *url.Error
	return errors.As(err, &ue)
}
