package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/speechset/internal/cache"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/util"
	"github.com/ppiankov/speechset/internal/worker"
)

func testHTTPConfig() model.HTTPConfig {
	cfg := model.DefaultConfig().HTTP
	cfg.Delay = 0
	cfg.UserAgent = "test-agent"
	return cfg
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), testHTTPConfig(), nil)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.HTML != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
	if gotUA != "test-agent" {
		t.Errorf("Expected User-Agent test-agent, got %q", gotUA)
	}
	if result.ContentType != "text/html" {
		t.Errorf("Unexpected content type: %s", result.ContentType)
	}
}

func TestFetch_NonSuccessIsFatal(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), testHTTPConfig(), nil)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if got := err.Error(); got != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected a single attempt, got %d", attempts.Load())
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "0123456789")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 4
	result, err := NewFetcher(server.Client(), cfg, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.HTML != "0123" {
		t.Errorf("Expected truncated body, got %q", result.HTML)
	}
}

func TestFetch_CacheSkipsNetworkAndThrottle(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = fmt.Fprint(w, "<p>cached</p>")
	}))
	defer server.Close()

	// One request per hour: a second network fetch would block.
	limiter := worker.NewLimiter(time.Hour)
	fetcher := NewFetcher(server.Client(), testHTTPConfig(), limiter,
		WithCache(cache.NewMemoryCache(time.Minute, time.Minute)))

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		result, err := fetcher.Fetch(ctx, server.URL)
		cancel()
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if result.FromCache != (i == 1) {
			t.Errorf("fetch %d: FromCache = %v", i, result.FromCache)
		}
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 network request, got %d", attempts.Load())
	}
}

func TestFetch_ThrottleIsShared(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	limiter := worker.NewLimiter(time.Hour)
	fetcher := NewFetcher(server.Client(), testHTTPConfig(), limiter)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/a"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := fetcher.Fetch(ctx, server.URL+"/b"); err == nil {
		t.Error("Expected second fetch to be throttled past the deadline")
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
			return
		}
		_, _ = fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	robots := util.NewRobotsChecker(server.Client(), cfg.UserAgent, nil)
	fetcher := NewFetcher(server.Client(), cfg, nil, WithRobots(robots))

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/public"); err != nil {
		t.Fatalf("Expected allowed fetch, got %v", err)
	}
	_, err := fetcher.Fetch(context.Background(), server.URL+"/private/page")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("Expected ErrDisallowed, got %v", err)
	}
}

func TestFetchHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<p>body</p>")
	}))
	defer server.Close()

	html, err := NewFetcher(server.Client(), testHTTPConfig(), nil).FetchHTML(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if html != "<p>body</p>" {
		t.Errorf("Unexpected HTML: %s", html)
	}
}
