package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
	"github.com/ppiankov/speechset/internal/pipeline"
)

var defaults = model.DefaultConfig()

func addHTTPFlags(fs *pflag.FlagSet) {
	fs.Duration("delay", defaults.HTTP.Delay, "minimum interval between requests")
	fs.Duration("http-timeout", defaults.HTTP.Timeout, "per-request timeout")
	fs.String("user-agent", defaults.HTTP.UserAgent, "HTTP User-Agent")
	fs.Bool("respect-robots", defaults.HTTP.RespectRobots, "honor robots.txt rules and crawl-delay")
	fs.Bool("cache", defaults.Cache.Enabled, "reuse pages fetched earlier in the same run")
}

func addCrawlFlags(fs *pflag.FlagSet, limits *map[string]int) {
	fs.String("base-url", defaults.Crawl.BaseURL, "archive base URL")
	fs.String("urls-dir", defaults.Paths.URLsDir, "directory for per-group URL lists")
	fs.StringToIntVar(limits, "limit", nil, "per-group URL limit, e.g. --limit presidential=40,congressional=10")
}

func addExtractFlags(fs *pflag.FlagSet) {
	fs.String("selector", defaults.Extract.ContentSelector, "CSS selector of the document body")
	fs.Bool("readability", defaults.Extract.Readability, "try readability before the fallback selectors")
	fs.String("raw-dir", defaults.Paths.RawDir, "directory for extracted document text")
}

func addDatasetFlags(fs *pflag.FlagSet) {
	fs.Int("min-length", defaults.Segment.MinLength, "minimum segment length in characters")
	fs.Int("chunk-sentences", defaults.Segment.ChunkSentences, "sentences per segment (0 splits on paragraphs)")
	fs.Int("sample-size", defaults.Dataset.SampleSize, "sample this many segments (0 keeps all)")
	fs.Uint64("seed", defaults.Dataset.Seed, "sampling seed")
	fs.Bool("xlsx", defaults.Dataset.XLSX, "also write dataset.xlsx")
	fs.String("dataset-dir", defaults.Paths.DatasetDir, "dataset output directory")
}

// stage bundles what every pipeline command needs.
type stage struct {
	cfg      *model.Config
	log      logger.Logger
	pipeline *pipeline.Pipeline
}

func newStage(cmd *cobra.Command, limits map[string]int) (*stage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := applyGroupLimits(cfg, limits); err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, cmd.Name())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	p, err := pipeline.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return &stage{cfg: cfg, log: log, pipeline: p}, nil
}

func (s *stage) close() {
	_ = s.log.Sync()
}

func datasetPath(cfg *model.Config) string {
	return filepath.Join(cfg.Paths.DatasetDir, model.DatasetFile)
}
