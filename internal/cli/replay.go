package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/journal"
	"github.com/rustyeddy/flashtrade/replay"
	"github.com/rustyeddy/flashtrade/sim"
)

func newReplayCmd(rc *rootConfig) *cobra.Command {
	var (
		trade     tradeFlags
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "replay <path.csv>",
		Short: "Play one round over a recorded price path",
		Long: `Replay a recorded price path (time_ms,price[,event]) into a round.

The round opens at the symbol's seeded entry price and then follows the
relative moves of the recording. A CLOSE event, or the end of the file,
closes the round manually.

Example:
  flashtrade replay testdata/pump.csv --symbol BTCUSDT --leverage 2 --tp 0.2 --sl 0.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Config()
			if err != nil {
				return err
			}

			path, err := replay.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load replay: %w", err)
			}

			tc, err := trade.tradeConfig()
			if err != nil {
				return err
			}

			j, err := openJournal(cfg.Journal)
			if err != nil {
				return fmt.Errorf("create journal: %w", err)
			}
			defer j.Close()

			c := sim.NewController(cfg.Round.Params(), sim.NewRandomSource(cfg.Game.Seed))
			c.Lookup = cfg.Market.Lookup()
			c.Logger = logger.L()
			c.Process.Logger = c.Logger

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Replaying %s (%d steps)\n", args[0], path.Steps())

			final, err := replay.Play(cmd.Context(), c, tc, path, nowMs(),
				journal.Observer(j, cfg.Journal.RecordTicks, c.Logger))
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}

			printRound(out, final)
			if chartPath != "" {
				if err := writeChart(chartPath, final); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nChart written to: %s\n", chartPath)
			}
			printSaved(out, cfg.Journal)
			return nil
		},
	}

	trade.register(cmd)
	cmd.Flags().StringVar(&chartPath, "chart", "", "write an HTML chart of the final history to this path")

	return cmd
}
