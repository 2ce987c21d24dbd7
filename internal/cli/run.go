package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var (
	runLimits  map[string]int
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every stage from crawl to validate",
	Long: `Run crawls the category groups, downloads each document once to store
its text and metadata, prepares the dataset and validates it. The first
error stops the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStage(cmd, runLimits)
		if err != nil {
			return err
		}
		defer s.close()

		ctx, cancel := commandContext()
		defer cancel()
		if runTimeout > 0 {
			var timeoutCancel context.CancelFunc
			ctx, timeoutCancel = context.WithTimeout(ctx, runTimeout)
			defer timeoutCancel()
		}

		res, err := s.pipeline.Run(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderGroups(out, res.Groups)
		renderMetadata(out, res.Metadata)
		renderDataset(out, res.Dataset)
		res.Report.Render(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	fs := runCmd.Flags()
	addHTTPFlags(fs)
	addCrawlFlags(fs, &runLimits)
	addExtractFlags(fs)
	addDatasetFlags(fs)
	fs.String("metadata-csv", defaults.Paths.MetadataCSV, "metadata CSV output path")
	fs.DurationVar(&runTimeout, "timeout", 0, "overall run timeout (0 runs to completion)")
}
