// Package cli implements the rubylens command line: a thin shell that loads
// configuration, opens the document store and calls save_text / load_text.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/japaniel/rubylens/pkg/app"
	"github.com/japaniel/rubylens/pkg/config"
	"github.com/japaniel/rubylens/pkg/logging"
)

// version is set at build time with -ldflags "-X .../pkg/cli.version=...".
var version = "dev"

// rootOptions is the per-invocation state shared by subcommands.
type rootOptions struct {
	configPath string
	envFile    string
	dataDir    string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	rt := &rootOptions{}

	root := &cobra.Command{
		Use:   "rubylens",
		Short: "Keep one annotated text with its readings",
		Long: `rubylens stores a single document: the raw input plus its segmentation
into plain text and vocabulary words with their readings. Saving replaces the
stored document; loading returns it unchanged.`,
		SilenceUsage:      true,
		PersistentPreRunE: rt.loadConfig,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.configPath, "config", "", "config file (default <data dir>/config.toml)")
	pf.StringVar(&rt.envFile, "env-file", "", "dotenv file to load (default .env if present)")
	pf.StringVar(&rt.dataDir, "data-dir", "", "directory holding the document database")
	pf.StringVar(&rt.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newSaveCommand(rt),
		newLoadCommand(rt),
		newSegmentCommand(rt),
		newImportCommand(rt),
		newShowCommand(rt),
		newInspectCommand(rt),
		newVersionCommand(),
	)
	return root
}

func (rt *rootOptions) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: rt.configPath,
		EnvFile:    rt.envFile,
		Flags: config.FlagOverrides{
			DataDir:  rt.dataDir,
			LogLevel: rt.logLevel,
		},
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	rt.cfg = cfg
	rt.logger = logger
	return nil
}

// withState opens the document store for the duration of fn. Commands that
// never touch storage do not call it.
func (rt *rootOptions) withState(fn func(*app.State) error) error {
	st := app.NewState(rt.logger)
	if err := st.Setup(rt.cfg.DataDir, rt.cfg.DatabaseFile); err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	err := fn(st)
	if cerr := st.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close storage: %w", cerr)
	}
	return err
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rubylens version %s\n", version)
		},
	}
}
