package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/speechset/internal/logger"
	"github.com/ppiankov/speechset/internal/model"
)

const (
	version   = "0.1.0"
	envPrefix = "SPEECHSET"
)

var (
	cfgFile string
	verbose bool
)

// flagKeys maps command flags onto configuration keys. Flags are bound when
// the command that owns them runs, so commands can share flag names.
var flagKeys = map[string]string{
	"delay":           "http.delay",
	"http-timeout":    "http.timeout",
	"user-agent":      "http.user_agent",
	"respect-robots":  "http.respect_robots",
	"cache":           "cache.enabled",
	"base-url":        "crawl.base_url",
	"selector":        "extract.content_selector",
	"readability":     "extract.readability",
	"min-length":      "segment.min_length",
	"chunk-sentences": "segment.chunk_sentences",
	"sample-size":     "dataset.sample_size",
	"seed":            "dataset.seed",
	"xlsx":            "dataset.xlsx",
	"metadata-csv":    "paths.metadata_csv",
	"urls-dir":        "paths.urls_dir",
	"raw-dir":         "paths.raw_dir",
	"dataset-dir":     "paths.dataset_dir",
	"log-level":       "log.level",
}

var rootCmd = &cobra.Command{
	Use:   "speechset",
	Short: "Build a labelable speech corpus from a public archive",
	Long: `speechset crawls a speech archive, downloads and extracts document text,
derives speaker and year metadata, then cleans and segments the text into a
flat dataset with empty annotation columns.

Stages can be run one at a time or all together:

  speechset crawl      discover document URLs per category group
  speechset download   fetch documents and store their text
  speechset metadata   derive speaker and year per document
  speechset prepare    clean, segment and assemble the dataset
  speechset validate   check the dataset schema
  speechset run        all of the above`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "speechset v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.speechset/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("log-level", logger.DefaultLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file, .env and SPEECHSET_* variables.
func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := registerDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".speechset"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config %s: %v\n", cfgFile, err)
		}
	}
}

// registerDefaults makes every key of cfg known to viper, so environment
// variables apply to keys that no config file mentions.
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

func bindFlags(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := viper.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

// loadConfig merges defaults, the config file, env and bound flags. The
// defaults live in viper, so decoding starts from an empty config and
// slices from a config file replace the default ones.
func loadConfig() (*model.Config, error) {
	cfg := &model.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// applyGroupLimits overrides crawl group limits given as name=limit.
func applyGroupLimits(cfg *model.Config, limits map[string]int) error {
	for name, limit := range limits {
		found := false
		for i := range cfg.Crawl.Groups {
			if cfg.Crawl.Groups[i].Name == name {
				cfg.Crawl.Groups[i].Limit = limit
				found = true
			}
		}
		if !found {
			return fmt.Errorf("unknown category group %q", name)
		}
	}
	return nil
}

// newLogger builds the run logger. Every line carries the run_id.
func newLogger(cfg *model.Config, command string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: verbose,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return nil, err
	}
	return log.With(
		logger.String("run_id", uuid.NewString()),
		logger.String("command", command),
	), nil
}

// commandContext is cancelled on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
