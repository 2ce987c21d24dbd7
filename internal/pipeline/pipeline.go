package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/speechset/internal/cache"
	"github.com/ppiankov/speechset/internal/crawl"
	"github.com/ppiankov/speechset/internal/dataset"
	"github.com/ppiankov/speechset/internal/extract"
	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/util"
	"github.com/ppiankov/speechset/internal/validate"
	"github.com/ppiankov/speechset/internal/worker"
)

// Pipeline runs the corpus stages: URL discovery, download, metadata,
// dataset preparation and validation. Stages run strictly in sequence and
// the first error aborts the run.
type Pipeline struct {
	cfg     *model.Config
	fetcher *Fetcher
	crawler *crawl.Crawler
	content *extract.ContentExtractor
	meta    *extract.MetadataDeriver
	log     logger.Logger
}

// New builds a pipeline and its HTTP stack from cfg.
func New(cfg *model.Config, log logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.NewNop()
	}
	client, err := util.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}

	opts := []FetcherOption{WithLogger(log.With(logger.String("component", "fetcher")))}
	if cfg.Cache.Enabled {
		opts = append(opts, WithCache(cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)))
	}
	if cfg.HTTP.RespectRobots {
		opts = append(opts, WithRobots(util.NewRobotsChecker(client, cfg.HTTP.UserAgent, log)))
	}
	fetcher := NewFetcher(client, cfg.HTTP, worker.NewLimiter(cfg.HTTP.Delay), opts...)

	return NewWithFetcher(cfg, fetcher, log)
}

// NewWithFetcher builds a pipeline around an existing fetcher.
func NewWithFetcher(cfg *model.Config, fetcher *Fetcher, log logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.NewNop()
	}
	links, err := extract.NewLinkExtractor(extract.LinkRules{
		BaseURL:         cfg.Crawl.BaseURL,
		DocumentPrefix:  cfg.Crawl.DocumentPrefix,
		ExcludePrefixes: cfg.Crawl.ExcludePrefixes,
		ListingSelector: cfg.Crawl.ListingSelector,
	})
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		fetcher: fetcher,
		crawler: crawl.New(fetcher, links, log.With(logger.String("component", "crawler"))),
		content: extract.NewContentExtractor(extract.ContentOptions{
			Selector:          cfg.Extract.ContentSelector,
			FallbackSelectors: cfg.Extract.FallbackSelectors,
			Readability:       cfg.Extract.Readability,
		}),
		meta: extract.NewMetadataDeriver(cfg.Extract.PeopleSelector, cfg.Extract.DateSelectors),
		log:  log,
	}, nil
}

// URLFiles returns the list files of the configured category groups.
func (p *Pipeline) URLFiles() []string {
	files := make([]string, 0, len(p.cfg.Crawl.Groups))
	for _, g := range p.cfg.Crawl.Groups {
		files = append(files, worker.URLListPath(p.cfg.Paths.URLsDir, g.Name))
	}
	return files
}

// BuildURLLists crawls every category group and writes one list file per
// group.
func (p *Pipeline) BuildURLLists(ctx context.Context) ([]model.URLGroup, error) {
	groups, err := p.crawler.CrawlGroups(ctx, p.cfg.Crawl.Groups)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		path := worker.URLListPath(p.cfg.Paths.URLsDir, g.Name)
		if err := worker.WriteURLFile(path, g.Name, g.URLs); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		p.log.Info("Wrote URL list", logger.String("path", path), logger.Int("urls", len(g.URLs)))
	}
	return groups, nil
}

// Download fetches every listed URL and stores its extracted text under
// the raw directory.
func (p *Pipeline) Download(ctx context.Context, urlFiles []string) (*worker.BatchResult, error) {
	if err := os.MkdirAll(p.cfg.Paths.RawDir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw directory: %w", err)
	}
	names := newNameTracker(p.log)
	return p.batch("download").ProcessFiles(ctx, urlFiles, func(ctx context.Context, _ int, url string) error {
		res, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		return p.saveText(url, res.HTML, names)
	})
}

// ExtractMetadata fetches every listed URL, derives its metadata and
// writes the metadata table.
func (p *Pipeline) ExtractMetadata(ctx context.Context, urlFiles []string) ([]model.DocumentMetadata, error) {
	var rows []model.DocumentMetadata
	_, err := p.batch("metadata").ProcessFiles(ctx, urlFiles, func(ctx context.Context, _ int, url string) error {
		res, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		row, err := p.deriveMetadata(url, res.HTML)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, p.writeMetadata(rows)
}

// Collect is Download and ExtractMetadata from a single fetch per URL.
func (p *Pipeline) Collect(ctx context.Context, urlFiles []string) ([]model.DocumentMetadata, error) {
	if err := os.MkdirAll(p.cfg.Paths.RawDir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw directory: %w", err)
	}
	names := newNameTracker(p.log)
	var rows []model.DocumentMetadata
	_, err := p.batch("collect").ProcessFiles(ctx, urlFiles, func(ctx context.Context, _ int, url string) error {
		res, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		if err := p.saveText(url, res.HTML, names); err != nil {
			return err
		}
		row, err := p.deriveMetadata(url, res.HTML)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, p.writeMetadata(rows)
}

// Prepare cleans, segments and assembles the dataset.
func (p *Pipeline) Prepare() (*dataset.Result, error) {
	return dataset.NewAssembler(dataset.OptionsFromConfig(p.cfg), p.log.With(logger.String("stage", "prepare"))).Assemble()
}

// DatasetPath is the CSV written by Prepare.
func (p *Pipeline) DatasetPath() string {
	return filepath.Join(p.cfg.Paths.DatasetDir, model.DatasetFile)
}

// Validate checks the dataset written by Prepare.
func (p *Pipeline) Validate() (*validate.Report, error) {
	return validate.NewValidator(p.cfg.Dataset.LabelColumns).ValidateFile(p.DatasetPath())
}

// RunResult collects the outcome of a full run.
type RunResult struct {
	Groups   []model.URLGroup
	Metadata []model.DocumentMetadata
	Dataset  *dataset.Result
	Report   *validate.Report
}

// Run executes every stage in order.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	out := &RunResult{}
	var err error

	if out.Groups, err = p.BuildURLLists(ctx); err != nil {
		return nil, fmt.Errorf("build URL lists: %w", err)
	}
	if out.Metadata, err = p.Collect(ctx, p.URLFiles()); err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}
	if out.Dataset, err = p.Prepare(); err != nil {
		return nil, fmt.Errorf("prepare dataset: %w", err)
	}
	if out.Report, err = p.Validate(); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}
	return out, nil
}

func (p *Pipeline) batch(name string) *worker.BatchProcessor {
	return worker.NewBatchProcessor(name, p.log)
}

func (p *Pipeline) saveText(url, html string, names *nameTracker) error {
	content, err := p.content.Extract(html, url)
	if err != nil {
		return err
	}
	if content.Strategy == extract.StrategyPage {
		p.log.Warn("No content container matched, using whole page", logger.String("url", url))
	}

	name := extract.FileNameFromURL(url)
	names.add(name, url)
	path := filepath.Join(p.cfg.Paths.RawDir, name)
	if err := os.WriteFile(path, []byte(content.Text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.log.Debug("Saved document",
		logger.String("url", url),
		logger.String("file", name),
		logger.String("strategy", content.Strategy),
	)
	return nil
}

func (p *Pipeline) deriveMetadata(url, html string) (model.DocumentMetadata, error) {
	row, err := p.meta.Derive(html, url)
	if err != nil {
		return row, err
	}
	if row.Speaker == "" || row.Year == "" {
		p.log.Debug("Incomplete metadata",
			logger.String("url", url),
			logger.Bool("speaker", row.Speaker != ""),
			logger.Bool("year", row.Year != ""),
		)
	}
	return row, nil
}

func (p *Pipeline) writeMetadata(rows []model.DocumentMetadata) error {
	if err := dataset.WriteMetadata(p.cfg.Paths.MetadataCSV, rows); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	p.log.Info("Wrote metadata", logger.String("path", p.cfg.Paths.MetadataCSV), logger.Int("rows", len(rows)))
	return nil
}

// nameTracker warns when two URLs map to the same text file.
type nameTracker struct {
	seen map[string]string
	log  logger.Logger
}

func newNameTracker(log logger.Logger) *nameTracker {
	return &nameTracker{seen: make(map[string]string), log: log}
}

func (n *nameTracker) add(name, url string) {
	if prev, ok := n.seen[name]; ok && prev != url {
		n.log.Warn("File name collision, later document overwrites earlier one",
			logger.String("file", name),
			logger.String("first_url", prev),
			logger.String("url", url),
		)
	}
	n.seen[name] = url
}
