package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/speechset/internal/validate"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Clean, segment and assemble the dataset",
	Long: `Prepare cleans every raw text file, splits it into segments, joins the
segments with the metadata CSV and writes dataset.csv with empty label
columns. Cleaned and segmented copies of each document are kept alongside.

Example:
  speechset prepare --chunk-sentences 3 --min-length 80
  speechset prepare --sample-size 500 --seed 7 --xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStage(cmd, nil)
		if err != nil {
			return err
		}
		defer s.close()

		res, err := s.pipeline.Prepare()
		if err != nil {
			return err
		}
		renderDataset(cmd.OutOrStdout(), res)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Check the dataset schema",
	Long: `Validate checks that every required column is present, no row has empty
text and ids are unique, then reports how many label cells are filled.
The dataset may be a .csv or .xlsx file (default: the prepared dataset.csv).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := datasetPath(cfg)
		if len(args) == 1 {
			path = args[0]
		}

		report, err := validate.NewValidator(cfg.Dataset.LabelColumns).ValidateFile(path)
		if err != nil {
			return err
		}
		report.Render(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	addDatasetFlags(prepareCmd.Flags())
	prepareCmd.Flags().String("raw-dir", defaults.Paths.RawDir, "directory of extracted document text")
	prepareCmd.Flags().String("metadata-csv", defaults.Paths.MetadataCSV, "metadata CSV to join")

	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("dataset-dir", defaults.Paths.DatasetDir, "dataset directory")
}
