package cli

import (
	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/article"
)

func newImportCommand(rt *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "import <url>",
		Short: "Fetch a web article and segment its text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := article.NewFetcher(rt.cfg.Fetch.Timeout, rt.cfg.Fetch.UserAgent, rt.cfg.Fetch.MaxBodyBytes)

			rt.logger.Info("fetching article", "url", args[0])
			a, err := f.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rt.logger.Info("article extracted", "title", a.Title, "chars", len([]rune(a.TextContent)))

			t, err := segmentText(a.TextContent)
			if err != nil {
				return err
			}
			return emitText(cmd, rt, t, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the segmented article as the stored document")
	return cmd
}
