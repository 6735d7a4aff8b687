package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flashtrade/backtest"
	"github.com/rustyeddy/flashtrade/game"
	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/market"
)

func newBatchCmd(rc *rootConfig) *cobra.Command {
	var (
		trade   tradeFlags
		rounds  int
		workers int
		seed    int64
		mode    string
		symbols []string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Play many rounds in virtual time and summarize them",
		Long: `Run a batch of independent rounds without waiting between ticks.

FUN mode draws new settings for every round; REAL mode plays the flag
settings every round. The same seed always produces the same batch.

Examples:
  flashtrade batch --rounds 1000 --seed 7
  flashtrade batch --mode real --symbol SOLUSDT --leverage 2 --tp 0.15 --sl 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Config()
			if err != nil {
				return err
			}
			if mode == "" {
				mode = cfg.Game.Mode
			}
			m, err := game.ParseMode(mode)
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = cfg.Game.Seed
			}
			lookup := cfg.Market.Lookup()
			for i, s := range symbols {
				symbols[i] = strings.ToUpper(strings.TrimSpace(s))
				if _, ok := lookup(symbols[i]); !ok {
					return fmt.Errorf("%w: %s", market.ErrUnknownSymbol, s)
				}
			}

			opts := backtest.Options{
				Rounds:     rounds,
				Workers:    workers,
				Seed:       seed,
				Params:     cfg.Round.Params(),
				Volatility: cfg.Game.Volatility(m),
				Lookup:     lookup,
				Symbols:    symbols,
				Logger:     logger.L(),
			}
			if d, err := cfg.Round.ParseTickInterval(); err == nil {
				opts.StepMs = d.Milliseconds()
			}

			if m == game.ModeReal {
				tc, err := trade.tradeConfig()
				if err != nil {
					return err
				}
				if err := game.CheckLimits(tc, cfg.Game.Limits); err != nil {
					return err
				}
				opts.Config = &tc
			}

			j, err := openJournal(cfg.Journal)
			if err != nil {
				return fmt.Errorf("create journal: %w", err)
			}
			defer j.Close()
			opts.Journal = j

			res, err := backtest.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}

			backtest.PrintResult(cmd.OutOrStdout(), res)
			printSaved(cmd.OutOrStdout(), cfg.Journal)
			return nil
		},
	}

	trade.register(cmd)
	cmd.Flags().IntVar(&rounds, "rounds", 100, "number of rounds")
	cmd.Flags().IntVar(&workers, "workers", 4, "rounds played concurrently")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from config, then clock)")
	cmd.Flags().StringVar(&mode, "mode", "", "FUN or REAL; default from config")
	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "FUN-mode symbols to draw from (default all)")

	return cmd
}
