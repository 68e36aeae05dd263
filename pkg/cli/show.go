package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/render"
	"github.com/japaniel/rubylens/pkg/text"
)

func newShowCommand(rt *rootOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the stored text with readings above each word",
		Long: `Render the stored document as ruby text. When nothing has been saved yet
the bundled sample document is shown instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := loadText(rt)
			if err != nil {
				return err
			}
			if t == nil {
				cmd.PrintErrln("No saved text; showing the sample document.")
				sample := text.Sample()
				t = &sample
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Ruby(*t, width))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap width in terminal cells (0 disables wrapping)")
	return cmd
}
