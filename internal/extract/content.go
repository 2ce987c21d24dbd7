package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// DefaultFallbackSelectors are the generic containers tried after the
// preferred selector.
var DefaultFallbackSelectors = []string{"article", "main", "body"}

// Strategy names reported in Content.Strategy.
const (
	StrategySelector    = "selector"
	StrategyReadability = "readability"
	StrategyFallback    = "fallback"
	StrategyPage        = "page"
)

// Content is the extracted body of a document page.
type Content struct {
	Text string
	// Strategy is the strategy that produced Text.
	Strategy string
	// Selector is the CSS selector that matched, if any.
	Selector string
}

// ContentOptions configure a ContentExtractor.
type ContentOptions struct {
	Selector          string
	FallbackSelectors []string
	Readability       bool
}

// ContentExtractor locates the main text of a document page through an
// ordered chain of strategies. The first strategy that matches wins.
type ContentExtractor struct {
	opts ContentOptions
}

// NewContentExtractor returns an extractor. A nil FallbackSelectors uses
// DefaultFallbackSelectors.
func NewContentExtractor(opts ContentOptions) *ContentExtractor {
	if opts.FallbackSelectors == nil {
		opts.FallbackSelectors = DefaultFallbackSelectors
	}
	return &ContentExtractor{opts: opts}
}

type contentAttempt func(doc *goquery.Document, raw string, pageURL *url.URL) (Content, bool)

// Extract returns the text of the page. Only a parse failure is an error;
// when nothing matches the whole page text is returned.
func (e *ContentExtractor) Extract(htmlContent, pageURL string) (*Content, error) {
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	var base *url.URL
	if pageURL != "" {
		base, _ = url.Parse(pageURL)
	}

	for _, attempt := range e.chain() {
		if c, ok := attempt(doc, htmlContent, base); ok {
			return &c, nil
		}
	}
	return &Content{Text: VisibleText(doc.Selection), Strategy: StrategyPage}, nil
}

func (e *ContentExtractor) chain() []contentAttempt {
	var attempts []contentAttempt
	if e.opts.Selector != "" {
		attempts = append(attempts, selectorAttempt(e.opts.Selector, StrategySelector))
	}
	if e.opts.Readability {
		attempts = append(attempts, readabilityAttempt)
	}
	for _, sel := range e.opts.FallbackSelectors {
		attempts = append(attempts, selectorAttempt(sel, StrategyFallback))
	}
	return attempts
}

func selectorAttempt(selector, strategy string) contentAttempt {
	return func(doc *goquery.Document, _ string, _ *url.URL) (Content, bool) {
		node := doc.Find(selector).First()
		if node.Length() == 0 {
			return Content{}, false
		}
		return Content{Text: VisibleText(node), Strategy: strategy, Selector: selector}, true
	}
}

func readabilityAttempt(_ *goquery.Document, raw string, pageURL *url.URL) (Content, bool) {
	article, err := readability.FromReader(strings.NewReader(raw), pageURL)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		return Content{}, false
	}
	doc, err := ParseHTML(article.Content)
	if err != nil {
		return Content{}, false
	}
	text := VisibleText(doc.Selection)
	if text == "" {
		return Content{}, false
	}
	return Content{Text: text, Strategy: StrategyReadability}, true
}

// ExtractText runs the default chain with the given preferred selector.
func ExtractText(htmlContent, preferredSelector string) (string, error) {
	c, err := NewContentExtractor(ContentOptions{Selector: preferredSelector}).Extract(htmlContent, "")
	if err != nil {
		return "", err
	}
	return c.Text, nil
}
