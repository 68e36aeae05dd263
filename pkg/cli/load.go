package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/japaniel/rubylens/pkg/app"
	"github.com/japaniel/rubylens/pkg/text"
)

func newLoadCommand(rt *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print the stored text",
		Long:  `Print the stored document. When nothing has been saved yet the output is null.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", output)
			}
			t, err := loadText(rt)
			if err != nil {
				return err
			}
			if output == "yaml" {
				return writeYAML(cmd.OutOrStdout(), t)
			}
			return writeJSON(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func loadText(rt *rootOptions) (*text.Text, error) {
	var t *text.Text
	err := rt.withState(func(st *app.State) error {
		var err error
		t, err = st.LoadText()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load text: %w", err)
	}
	return t, nil
}

// writeJSON prints t indented, or null for a nil text.
func writeJSON(w io.Writer, t *text.Text) error {
	if t == nil {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// writeYAML prints the same document shape as writeJSON. The text goes
// through its JSON form first so both outputs share field names and the
// segment type tags.
func writeYAML(w io.Writer, t *text.Text) error {
	if t == nil {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode text: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encode text: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
