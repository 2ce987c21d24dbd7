package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ppiankov/speechset/internal/cache"
	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/util"
	"github.com/ppiankov/speechset/internal/worker"
)

// ErrDisallowed is returned for URLs excluded by robots.txt.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Fetcher fetches HTML pages one attempt at a time. Every network request
// waits on the shared limiter first; cache hits do not.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	cache      cache.Cache
	robots     *util.RobotsChecker
	log        logger.Logger
}

// FetcherOption customises a Fetcher.
type FetcherOption func(*Fetcher)

// WithCache serves repeated URLs from c.
func WithCache(c cache.Cache) FetcherOption {
	return func(f *Fetcher) { f.cache = c }
}

// WithRobots checks every URL against robots.txt before fetching it.
func WithRobots(r *util.RobotsChecker) FetcherOption {
	return func(f *Fetcher) { f.robots = r }
}

// WithLogger sets the fetch logger.
func WithLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = l }
}

// NewFetcher creates a Fetcher from the HTTP configuration.
func NewFetcher(client *http.Client, cfg model.HTTPConfig, limiter *worker.Limiter, opts ...FetcherOption) *Fetcher {
	if limiter == nil {
		limiter = worker.NewLimiter(cfg.Delay)
	}
	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    limiter,
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxBytes <= 0 {
		f.maxBytes = 10 << 20
	}
	return f
}

// FetchResult contains the fetched HTML and response details.
type FetchResult struct {
	URL         string
	FinalURL    string
	HTML        string
	StatusCode  int
	ContentType string
	FromCache   bool
}

// FetchHTML returns only the body of url.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	res, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// Fetch retrieves url. Any non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.CacheKey(rawURL)
	if f.cache != nil {
		if body, ok := f.cache.Get(key); ok {
			f.log.Debug("Cache hit", logger.String("url", rawURL))
			return &FetchResult{URL: rawURL, FinalURL: rawURL, HTML: string(body), StatusCode: http.StatusOK, FromCache: true}, nil
		}
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if f.limiter.RaiseDelay(crawlDelay) {
			f.log.Info("Raised request delay to robots.txt crawl-delay", logger.Duration("delay", f.limiter.Delay()))
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait: %w", err)
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

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, body, 0)
	}
	f.log.Debug("Fetched page",
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
	)

	return &FetchResult{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
