package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rustyeddy/flashtrade/config"
	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/journal"
)

const envPrefix = "FLASHTRADE"

// rootConfig carries global flag values to the subcommands. Flags are bound
// through viper so FLASHTRADE_CONFIG, FLASHTRADE_LOG_LEVEL and (for the
// journal commands) FLASHTRADE_DB work as well.
type rootConfig struct {
	v   *viper.Viper
	cfg *config.Config
}

// ConfigPath is --config / FLASHTRADE_CONFIG.
func (rc *rootConfig) ConfigPath() string { return rc.v.GetString("config") }

// DBPath is the journal command's --db / FLASHTRADE_DB.
func (rc *rootConfig) DBPath() string { return rc.v.GetString("db") }

// Config returns the loaded configuration, or the defaults when no
// --config was given.
func (rc *rootConfig) Config() (*config.Config, error) {
	if rc.cfg != nil {
		return rc.cfg, nil
	}
	path := rc.ConfigPath()
	if path == "" {
		rc.cfg = config.Default()
		return rc.cfg, nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	rc.cfg = cfg
	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	rc := &rootConfig{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "flashtrade",
		Short: "Flashtrade: leveraged price-round game",
		Long: `Flashtrade plays short leveraged trading rounds against a simulated price.

Pick (or draw) a symbol, direction, leverage, take-profit and stop-loss, then
watch the price walk until the round hits a threshold, times out or is closed.

It provides tools for:
  - Playing live rounds in the terminal
  - Running batches of rounds in virtual time
  - Replaying recorded price paths
  - Querying the optional round journal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().String("config", "", "Path to config file (YAML or JSON, optional)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")

	rc.v.SetEnvPrefix(envPrefix)
	rc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rc.v.AutomaticEnv()
	_ = rc.v.BindPFlags(cmd.PersistentFlags())

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(rc.v.GetString("log-level"))
		return nil
	}

	cmd.AddCommand(
		newPlayCmd(rc),
		newBatchCmd(rc),
		newReplayCmd(rc),
		newConfigCmd(rc),
		newJournalCmd(rc),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openJournal builds the configured journal. The "none" type yields a Nop so
// callers never need a nil check.
func openJournal(c config.JournalConfig) (journal.Journal, error) {
	switch c.Type {
	case "csv":
		ticks := ""
		if c.RecordTicks {
			ticks = c.TicksFile
		}
		return journal.NewCSV(c.RoundsFile, ticks)
	case "sqlite":
		return journal.NewSQLite(c.DBPath)
	case "", "none":
		return journal.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", c.Type)
	}
}

// describeJournal says where rounds were saved, or "" when they were not.
func describeJournal(c config.JournalConfig) string {
	switch c.Type {
	case "csv":
		if c.RecordTicks {
			return fmt.Sprintf("%s, %s", c.RoundsFile, c.TicksFile)
		}
		return c.RoundsFile
	case "sqlite":
		return c.DBPath
	}
	return ""
}

func printSaved(w io.Writer, c config.JournalConfig) {
	if where := describeJournal(c); where != "" {
		fmt.Fprintf(w, "\nResults saved to: %s\n", where)
	}
}
