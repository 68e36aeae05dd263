package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/segment"
	"github.com/japaniel/rubylens/pkg/text"
)

func newSegmentCommand(rt *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "segment [text]",
		Short: "Split raw Japanese text into words with readings",
		Long: `Segment raw text into plain runs and kanji words annotated with their
hiragana reading, and print the result as JSON. With no argument the raw text
is read from stdin. --save also makes the result the stored document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) > 0 {
				raw = strings.Join(args, " ")
			} else {
				data, err := readInput(cmd, "-")
				if err != nil {
					return err
				}
				raw = strings.TrimRight(string(data), "\r\n")
			}

			t, err := segmentText(raw)
			if err != nil {
				return err
			}
			return emitText(cmd, rt, t, save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the segmented text as the stored document")
	return cmd
}

func segmentText(raw string) (text.Text, error) {
	analyzer, err := segment.NewAnalyzer()
	if err != nil {
		return text.Text{}, fmt.Errorf("init tokenizer: %w", err)
	}
	return analyzer.Segment(raw), nil
}

// emitText prints t as JSON and saves it when requested.
func emitText(cmd *cobra.Command, rt *rootOptions, t text.Text, save bool) error {
	if err := writeJSON(cmd.OutOrStdout(), &t); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return saveText(cmd, rt, t)
}
