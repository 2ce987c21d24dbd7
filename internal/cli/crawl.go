package cli

import (
	"github.com/spf13/cobra"
)

var crawlLimits map[string]int

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Discover document URLs for every category group",
	Long: `Crawl walks the paginated listing pages of every configured category
group and writes one URL list per group ({group}_urls.txt) under the URLs
directory. A group stops as soon as its limit of unique documents is reached.

Example:
  speechset crawl
  speechset crawl --limit presidential=20,congressional=5 --delay 2s`,
	Aliases: []string{"build-urls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStage(cmd, crawlLimits)
		if err != nil {
			return err
		}
		defer s.close()

		ctx, cancel := commandContext()
		defer cancel()

		groups, err := s.pipeline.BuildURLLists(ctx)
		if err != nil {
			return err
		}
		renderGroups(cmd.OutOrStdout(), groups)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	addHTTPFlags(crawlCmd.Flags())
	addCrawlFlags(crawlCmd.Flags(), &crawlLimits)
}
