package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/credlens/credlens/internal/model"
)

// mockAnalyzer implements Analyzer
type mockAnalyzer struct {
	calls   int64
	failFor string
}

func (m *mockAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.Report, error) {
	atomic.AddInt64(&m.calls, 1)

	if m.failFor != "" && strings.Contains(url, m.failFor) {
		return nil, errors.New("analysis failed")
	}

	return &model.Report{SourceURL: url, Subject: "test"}, nil
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	analyzer := &mockAnalyzer{}
	bp := NewBatchProcessor(analyzer, 2, 0, 0)

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	results := bp.ProcessURLs(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if atomic.LoadInt64(&analyzer.calls) != 3 {
		t.Errorf("expected 3 analyzer calls, got %d", analyzer.calls)
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("%s: unexpected error: %v", r.URL, r.Error)
		}
		if r.Report == nil {
			t.Errorf("%s: expected a report", r.URL)
		}
		seen[r.URL] = true
	}
	for _, u := range urls {
		if !seen[u] {
			t.Errorf("missing result for %s", u)
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	analyzer := &mockAnalyzer{failFor: "broken"}
	bp := NewBatchProcessor(analyzer, 2, 0, 0)

	results := bp.ProcessURLs(context.Background(), []string{
		"https://example.com/fine",
		"https://example.com/broken",
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			if r.Report != nil {
				t.Error("failed result should carry no report")
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_LargeBatch(t *testing.T) {
	analyzer := &mockAnalyzer{}
	bp := NewBatchProcessor(analyzer, 2, 0, 0)

	urls := make([]string, 30)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/article-%d", i)
	}

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- bp.ProcessURLs(context.Background(), urls) }()

	select {
	case results := <-done:
		if len(results) != 30 {
			t.Errorf("expected 30 results, got %d", len(results))
		}
		if atomic.LoadInt64(&analyzer.calls) != 30 {
			t.Errorf("expected 30 analyzer calls, got %d", analyzer.calls)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("batch stalled on more URLs than the pool can queue")
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	analyzer := &mockAnalyzer{}
	bp := NewBatchProcessor(analyzer, 3, 20, 1)

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	start := time.Now()
	results := bp.ProcessURLs(context.Background(), urls)
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: unexpected error: %v", r.URL, r.Error)
		}
	}

	// Burst 1 at 20 req/s means the second and third request each
	// wait ~50ms for a token.
	if elapsed < 90*time.Millisecond {
		t.Errorf("expected rate limiting to spread requests, finished in %v", elapsed)
	}
}

// stallingAnalyzer blocks until its context is cancelled
type stallingAnalyzer struct{}

func (s *stallingAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.Report, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBatchProcessor_ContextCancelStopsBatch(t *testing.T) {
	bp := NewBatchProcessor(&stallingAnalyzer{}, 2, 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
		"https://example.com/d",
		"https://example.com/e",
	}

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- bp.ProcessURLs(ctx, urls) }()

	select {
	case results := <-done:
		for _, r := range results {
			if r.Error == nil {
				t.Errorf("%s: expected an error after cancellation", r.URL)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessURLs did not return after the context deadline")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	bp := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	results := bp.ProcessURLs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")

	content := `# seed list
https://example.com/a

https://example.com/b
https://example.com/a
  https://example.com/c
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	if len(urls) != len(want) {
		t.Fatalf("expected %d URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i, u := range urls {
		if u != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], u)
		}
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	if _, err := ReadURLsFromFile("/nonexistent/urls.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(path, []byte("https://example.com/a\nhttps://example.com/b\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	analyzer := &mockAnalyzer{}
	bp := NewBatchProcessor(analyzer, 4, 0, 0)

	results, err := bp.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
