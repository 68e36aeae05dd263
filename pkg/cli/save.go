package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/app"
	"github.com/japaniel/rubylens/pkg/text"
)

func newSaveCommand(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save [file|-]",
		Short: "Replace the stored text with a JSON document",
		Long: `Read a text document as JSON ({"rawInput": ..., "segments": [...]}) from a
file, or from stdin when the argument is "-" or omitted, and make it the stored
document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			t, err := decodeText(data)
			if err != nil {
				return err
			}

			return saveText(cmd, rt, t)
		},
	}
}

func saveText(cmd *cobra.Command, rt *rootOptions, t text.Text) error {
	err := rt.withState(func(st *app.State) error {
		return st.SaveText(t)
	})
	if err != nil {
		return fmt.Errorf("save text: %w", err)
	}
	cmd.PrintErrf("Saved %d segments (%d words)\n", len(t.Segments), len(t.Words()))
	return nil
}

func readInput(cmd *cobra.Command, src string) ([]byte, error) {
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

// decodeText parses a caller-facing Text document. A misspelled key leaves a
// required field missing, which is an error rather than silently dropped content.
func decodeText(data []byte) (text.Text, error) {
	var t text.Text
	if err := json.Unmarshal(data, &t); err != nil {
		return text.Text{}, fmt.Errorf("decode text: %w", err)
	}
	return t, nil
}
