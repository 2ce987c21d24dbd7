package cli

import (
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download [url-file...]",
	Short: "Fetch listed documents and store their text",
	Long: `Download fetches every URL from the given list files (default: the
per-group lists written by crawl), extracts the document body and stores it
as one .txt file per document in the raw directory. The first failed fetch
aborts the command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStage(cmd, nil)
		if err != nil {
			return err
		}
		defer s.close()

		ctx, cancel := commandContext()
		defer cancel()

		res, err := s.pipeline.Download(ctx, urlFiles(s, args))
		if err != nil {
			return err
		}
		renderBatch(cmd.OutOrStdout(), "download", res)
		return nil
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata [url-file...]",
	Short: "Derive speaker and year for listed documents",
	Long: `Metadata fetches every listed URL, infers the speaker and year from the
page and writes the metadata CSV (file_name,url,speaker,year). Fields that
cannot be found are left empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStage(cmd, nil)
		if err != nil {
			return err
		}
		defer s.close()

		ctx, cancel := commandContext()
		defer cancel()

		rows, err := s.pipeline.ExtractMetadata(ctx, urlFiles(s, args))
		if err != nil {
			return err
		}
		renderMetadata(cmd.OutOrStdout(), rows)
		return nil
	},
}

func urlFiles(s *stage, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return s.pipeline.URLFiles()
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	addHTTPFlags(downloadCmd.Flags())
	addExtractFlags(downloadCmd.Flags())
	downloadCmd.Flags().String("urls-dir", defaults.Paths.URLsDir, "directory of per-group URL lists")

	rootCmd.AddCommand(metadataCmd)
	addHTTPFlags(metadataCmd.Flags())
	metadataCmd.Flags().String("metadata-csv", defaults.Paths.MetadataCSV, "metadata CSV output path")
	metadataCmd.Flags().String("urls-dir", defaults.Paths.URLsDir, "directory of per-group URL lists")
}
