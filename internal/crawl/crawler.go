// Package crawl walks paginated category listings and collects document links.
package crawl

import (
	"context"
	"fmt"

	"github.com/ppiankov/speechset/internal/extract"
	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
)

// PageFetcher returns the HTML body of a page. Any error is fatal to the crawl.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Crawler drives the link extractor across paginated listings.
type Crawler struct {
	fetcher PageFetcher
	links   *extract.LinkExtractor
	log     logger.Logger
}

// New returns a Crawler.
func New(fetcher PageFetcher, links *extract.LinkExtractor, log logger.Logger) *Crawler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Crawler{fetcher: fetcher, links: links, log: log}
}

// CrawlCategory returns up to limit unique document links reachable from
// startURL by following "next" links, in first-seen order.
func (c *Crawler) CrawlCategory(ctx context.Context, startURL string, limit int) ([]string, error) {
	results := newURLSet()
	if err := c.crawl(ctx, startURL, limit, results); err != nil {
		return nil, err
	}
	return results.order, nil
}

// CrawlCategories crawls categories in order toward one combined limit.
// Links are de-duplicated across categories and the remaining categories
// are skipped once limit unique links have been collected.
func (c *Crawler) CrawlCategories(ctx context.Context, categories []string, limit int) ([]string, error) {
	results := newURLSet()
	if limit <= 0 {
		return results.order, nil
	}
	for _, category := range categories {
		if results.len() >= limit {
			break
		}
		if err := c.crawl(ctx, category, limit, results); err != nil {
			return nil, err
		}
	}
	if results.len() > limit {
		return results.order[:limit], nil
	}
	return results.order, nil
}

// CrawlGroups crawls every configured group independently.
func (c *Crawler) CrawlGroups(ctx context.Context, groups []model.CategoryGroup) ([]model.URLGroup, error) {
	out := make([]model.URLGroup, 0, len(groups))
	for _, g := range groups {
		links, err := c.CrawlCategories(ctx, g.URLs, g.Limit)
		if err != nil {
			return nil, fmt.Errorf("crawl group %s: %w", g.Name, err)
		}
		c.log.Info("Crawled category group",
			logger.String("group", g.Name),
			logger.Int("links", len(links)),
			logger.Int("limit", g.Limit),
			logger.Strings("categories", g.URLs),
		)
		out = append(out, model.URLGroup{Name: g.Name, URLs: links})
	}
	return out, nil
}

// crawl adds unseen links to results until it holds limit entries, the
// listing has no next page, or the next page was already visited.
func (c *Crawler) crawl(ctx context.Context, startURL string, limit int, results *urlSet) error {
	visited := newURLSet()
	pageURL := startURL

	for pageURL != "" && results.len() < limit {
		visited.add(pageURL)

		html, err := c.fetcher.FetchHTML(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("fetch listing %s: %w", pageURL, err)
		}
		doc, err := extract.ParseHTML(html)
		if err != nil {
			return fmt.Errorf("listing %s: %w", pageURL, err)
		}

		added := 0
		for _, link := range c.links.DocumentLinks(doc) {
			if results.len() >= limit {
				break
			}
			if results.add(link) {
				added++
			}
		}
		c.log.Debug("Crawled listing page",
			logger.String("url", pageURL),
			logger.Int("new_links", added),
			logger.Int("total", results.len()),
		)

		next, ok := c.links.NextPage(doc, pageURL)
		switch {
		case !ok:
			pageURL = ""
		case visited.has(next):
			c.log.Warn("Pagination loops back to a visited page", logger.String("url", next))
			pageURL = ""
		default:
			pageURL = next
		}
	}
	return nil
}
