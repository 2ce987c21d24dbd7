package model

import "time"

// Config is the complete speechset configuration.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Crawl   CrawlConfig   `mapstructure:"crawl" yaml:"crawl"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Segment SegmentConfig `mapstructure:"segment" yaml:"segment"`
	Dataset DatasetConfig `mapstructure:"dataset" yaml:"dataset"`
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// HTTPConfig controls the fetcher.
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes  int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	Delay         time.Duration `mapstructure:"delay" yaml:"delay"`
	HTTPProxy     string        `mapstructure:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy    string        `mapstructure:"https_proxy" yaml:"https_proxy"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
}

// CacheConfig controls the in-memory page cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// CategoryGroup is a named set of listing pages crawled toward one limit.
type CategoryGroup struct {
	Name  string   `mapstructure:"name" yaml:"name"`
	Limit int      `mapstructure:"limit" yaml:"limit"`
	URLs  []string `mapstructure:"urls" yaml:"urls"`
}

// CrawlConfig describes the archive layout.
type CrawlConfig struct {
	BaseURL         string          `mapstructure:"base_url" yaml:"base_url"`
	DocumentPrefix  string          `mapstructure:"document_prefix" yaml:"document_prefix"`
	ExcludePrefixes []string        `mapstructure:"exclude_prefixes" yaml:"exclude_prefixes"`
	ListingSelector string          `mapstructure:"listing_selector" yaml:"listing_selector"`
	Groups          []CategoryGroup `mapstructure:"groups" yaml:"groups"`
}

// ExtractConfig controls content and metadata extraction.
type ExtractConfig struct {
	ContentSelector   string   `mapstructure:"content_selector" yaml:"content_selector"`
	FallbackSelectors []string `mapstructure:"fallback_selectors" yaml:"fallback_selectors"`
	Readability       bool     `mapstructure:"readability" yaml:"readability"`
	PeopleSelector    string   `mapstructure:"people_selector" yaml:"people_selector"`
	DateSelectors     []string `mapstructure:"date_selectors" yaml:"date_selectors"`
}

// SegmentConfig controls cleaning and segmentation.
// ChunkSentences <= 0 selects paragraph mode.
type SegmentConfig struct {
	MinLength      int `mapstructure:"min_length" yaml:"min_length"`
	ChunkSentences int `mapstructure:"chunk_sentences" yaml:"chunk_sentences"`
}

// DatasetConfig controls dataset assembly.
type DatasetConfig struct {
	SampleSize   int      `mapstructure:"sample_size" yaml:"sample_size"`
	Seed         uint64   `mapstructure:"seed" yaml:"seed"`
	LabelColumns []string `mapstructure:"label_columns" yaml:"label_columns"`
	XLSX         bool     `mapstructure:"xlsx" yaml:"xlsx"`
}

// PathsConfig holds every on-disk location used by the pipeline.
type PathsConfig struct {
	URLsDir      string `mapstructure:"urls_dir" yaml:"urls_dir"`
	RawDir       string `mapstructure:"raw_dir" yaml:"raw_dir"`
	CleanDir     string `mapstructure:"clean_dir" yaml:"clean_dir"`
	SegmentedDir string `mapstructure:"segmented_dir" yaml:"segmented_dir"`
	DatasetDir   string `mapstructure:"dataset_dir" yaml:"dataset_dir"`
	MetadataCSV  string `mapstructure:"metadata_csv" yaml:"metadata_csv"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level       string   `mapstructure:"level" yaml:"level"`
	OutputPaths []string `mapstructure:"output_paths" yaml:"output_paths"`
}

const (
	DefaultBaseURL = "https://www.presidency.ucsb.edu"
	DatasetFile    = "dataset.csv"
	DatasetXLSX    = "dataset.xlsx"
)

// DefaultLabelColumns are the annotation columns appended to every row.
var DefaultLabelColumns = []string{
	"emotional",
	"authority",
	"polarization",
	"presumption",
	"exaggeration",
	"framing",
}

// BaseColumns are the dataset columns that precede the label columns.
var BaseColumns = []string{
	"id", "speech_id", "file_name", "segment_id", "text", "url", "speaker", "year",
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Mozilla/5.0",
			MaxBodyBytes: 10 << 20,
			Delay:        time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Crawl: CrawlConfig{
			BaseURL:        DefaultBaseURL,
			DocumentPrefix: "/documents/",
			ExcludePrefixes: []string{
				"/documents/app-categories",
				"/documents/presidential-documents-archive-guidebook",
			},
			ListingSelector: ".view-content",
			Groups: []CategoryGroup{
				{
					Name:  "presidential",
					Limit: 80,
					URLs: []string{
						DefaultBaseURL + "/documents/app-categories/spoken-addresses-and-remarks/presidential/state-the-union-addresses",
						DefaultBaseURL + "/documents/app-categories/spoken-addresses-and-remarks/presidential/inaugural-addresses",
						DefaultBaseURL + "/documents/app-categories/elections-and-transitions/campaign-documents",
						DefaultBaseURL + "/documents/app-categories/elections-and-transitions/convention-speeches",
						DefaultBaseURL + "/documents/app-categories/elections-and-transitions/debates",
					},
				},
				{
					Name:  "congressional",
					Limit: 30,
					URLs: []string{
						DefaultBaseURL + "/documents/app-categories/congressional",
					},
				},
			},
		},
		Extract: ExtractConfig{
			ContentSelector:   "div.field-docs-content",
			FallbackSelectors: []string{"article", "main", "body"},
			PeopleSelector:    `a[href*="/people/"]`,
			DateSelectors: []string{
				".doc-date",
				".field--name-field-docs-date",
				".field-docs-date",
				".date-display-single",
				".field--name-field-date",
			},
		},
		Segment: SegmentConfig{
			MinLength:      50,
			ChunkSentences: 1,
		},
		Dataset: DatasetConfig{
			Seed:         42,
			LabelColumns: append([]string(nil), DefaultLabelColumns...),
		},
		Paths: PathsConfig{
			URLsDir:      "data/urls",
			RawDir:       "data/raw",
			CleanDir:     "data/cleaned",
			SegmentedDir: "data/segmented",
			DatasetDir:   "dataset",
			MetadataCSV:  "data/metadata/speeches_metadata.csv",
		},
		Log: LogConfig{
			Level:       "info",
			OutputPaths: []string{"stderr"},
		},
	}
}
