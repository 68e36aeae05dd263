package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/db"
)

func newInspectCommand(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the raw stored row through a read-only connection",
		Long: `Open the database file with a separate read-only connection and print the
stored row as it sits on disk, including the encoded segments column. Safe to
run while another rubylens process is writing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := rt.cfg.DatabasePath()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no database at %s", path)
			}

			insp, err := db.OpenReadOnly(path)
			if err != nil {
				return err
			}
			defer insp.Close()

			mode, err := insp.JournalMode()
			if err != nil {
				return err
			}
			row, err := insp.Row()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:         %s\n", path)
			fmt.Fprintf(out, "journal_mode: %s\n", mode)
			if row == nil {
				fmt.Fprintln(out, "row:          (none)")
				return nil
			}
			fmt.Fprintf(out, "id:           %d\n", row.ID)
			fmt.Fprintf(out, "raw_input:    %s\n", row.RawInput)
			fmt.Fprintf(out, "segments:     %s\n", row.Segments)
			return nil
		},
	}
}
