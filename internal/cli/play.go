package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/flashtrade/chart"
	"github.com/rustyeddy/flashtrade/config"
	"github.com/rustyeddy/flashtrade/game"
	"github.com/rustyeddy/flashtrade/internal/logger"
	"github.com/rustyeddy/flashtrade/journal"
	"github.com/rustyeddy/flashtrade/sim"
)

// tradeFlags are the REAL-mode round settings shared by play and replay.
type tradeFlags struct {
	symbol     string
	direction  string
	stake      float64
	leverage   int
	takeProfit float64
	stopLoss   float64
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.symbol, "symbol", "BTCUSDT", "symbol to trade")
	cmd.Flags().StringVar(&f.direction, "direction", "long", "long or short")
	cmd.Flags().Float64Var(&f.stake, "stake", 100, "stake in fun units")
	cmd.Flags().IntVar(&f.leverage, "leverage", 1, "leverage multiplier")
	cmd.Flags().Float64Var(&f.takeProfit, "tp", 0.10, "take-profit as a fraction of stake (0.10 = 10%)")
	cmd.Flags().Float64Var(&f.stopLoss, "sl", 0.05, "stop-loss as a fraction of stake (0.05 = 5%)")
}

func (f *tradeFlags) tradeConfig() (sim.TradeConfig, error) {
	dir, err := sim.ParseDirection(f.direction)
	if err != nil {
		return sim.TradeConfig{}, err
	}
	return sim.TradeConfig{
		Symbol:     strings.ToUpper(strings.TrimSpace(f.symbol)),
		Stake:      f.stake,
		Direction:  dir,
		Leverage:   f.leverage,
		TakeProfit: f.takeProfit,
		StopLoss:   f.stopLoss,
	}, nil
}

func newPlayCmd(rc *rootConfig) *cobra.Command {
	var (
		trade     tradeFlags
		mode      string
		seed      int64
		fast      bool
		chartPath string
		deposit   string
		bonus     bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one round in the terminal",
		Long: `Play a single round against the simulated price.

In FUN mode the round settings are drawn at random. In REAL mode they come
from the flags and must fall within the configured limits. Press Ctrl-C to
close the round early.

Examples:
  flashtrade play
  flashtrade play --mode real --symbol ETHUSDT --direction short --leverage 3 --tp 0.2 --sl 0.1
  flashtrade play --fast --chart round.html`,
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
			// Bonus money is played with the player's own settings.
			if bonus {
				m = game.ModeReal
			}
			if seed == 0 {
				seed = cfg.Game.Seed
			}

			out := cmd.OutOrStdout()

			wallet := game.NewWallet(decimal.NewFromFloat(cfg.Game.InitialBalance))
			if bonus {
				wallet.ClaimBonus(decimal.NewFromFloat(cfg.Game.BonusAmount))
			}
			if deposit != "" {
				if err := wallet.DepositString(deposit); err != nil {
					return err
				}
			}

			rng := sim.NewRandomSource(seed)
			var tc sim.TradeConfig
			if m == game.ModeFun {
				tc = game.RandomConfig(rng, nil)
			} else {
				if tc, err = trade.tradeConfig(); err != nil {
					return err
				}
				if err := game.CheckLimits(tc, cfg.Game.Limits); err != nil {
					return err
				}
			}
			if !wallet.CanStake(tc.Stake) {
				return fmt.Errorf("stake %.2f exceeds max stake %s", tc.Stake, wallet.MaxStake().StringFixed(2))
			}

			j, err := openJournal(cfg.Journal)
			if err != nil {
				return fmt.Errorf("create journal: %w", err)
			}
			defer j.Close()

			final, err := playRound(cmd.Context(), out, cfg, m, rng, tc, j, fast)
			if err != nil {
				return err
			}

			printRound(out, final)
			fmt.Fprintf(out, "  Grade:      %s\n", game.Classify(final))
			fmt.Fprintf(out, "  Balance:    %s", wallet)
			if wallet.Bonus() {
				fmt.Fprint(out, " (bonus)")
			}
			fmt.Fprintln(out)

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
	cmd.Flags().StringVar(&mode, "mode", "", "FUN (random settings) or REAL (flag settings); default from config")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from config, then clock)")
	cmd.Flags().BoolVar(&fast, "fast", false, "run in virtual time without waiting between ticks")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write an HTML chart of the final history to this path")
	cmd.Flags().StringVar(&deposit, "deposit", "", "deposit this amount into the fun wallet first")
	cmd.Flags().BoolVar(&bonus, "bonus", false, "start from the sign-up bonus balance (switches to REAL mode)")

	return cmd
}

func playRound(ctx context.Context, out io.Writer, cfg *config.Config, m game.Mode, rng sim.RandomSource, tc sim.TradeConfig, j journal.Journal, fast bool) (sim.RoundState, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c := sim.NewController(cfg.Round.Params(), rng)
	c.Lookup = cfg.Market.Lookup()
	c.Logger = logger.L()
	c.Process.Logger = c.Logger

	interval, err := cfg.Round.ParseTickInterval()
	if err != nil {
		return sim.RoundState{}, fmt.Errorf("tick interval: %w", err)
	}
	vol := cfg.Game.Volatility(m)

	s, err := c.Start(tc, nowMs())
	if err != nil {
		return s, err
	}

	fmt.Fprintf(out, "Round %s (%s mode)\n", s.ID, m)
	fmt.Fprintf(out, "  %s %s %dx  stake %.2f  tp %.0f%%  sl %.0f%%\n",
		tc.Symbol, tc.Direction, tc.Leverage, tc.Stake, tc.TakeProfit*100, tc.StopLoss*100)
	fmt.Fprintf(out, "  Entry: %.6g\n\n", s.EntryPrice)

	record := journal.Observer(j, cfg.Journal.RecordTicks, c.Logger)
	if fast {
		return sim.Simulate(ctx, c, s, vol, interval.Milliseconds(), record)
	}

	r := sim.NewRunner(c, interval, vol)
	r.OnUpdate = func(s sim.RoundState) {
		record(s)
		if s.Running {
			fmt.Fprintf(out, "\r%s  %-12.6g %+7.2f%%  %+10.2f ", s.FormatRemaining(), s.CurrentPrice, s.PnLFraction*100, s.PnLAmount)
		} else {
			fmt.Fprintln(out)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigs:
			r.RequestClose()
		case <-done:
		}
	}()

	return r.Run(ctx, s)
}

func nowMs() int64 { return time.Now().UnixMilli() }

func printRound(w io.Writer, s sim.RoundState) {
	fmt.Fprintf(w, "\nFinal Results:\n")
	fmt.Fprintf(w, "  Outcome:    %s\n", s.Outcome)
	fmt.Fprintf(w, "  Ticks:      %d (%s left)\n", s.Ticks, s.FormatRemaining())
	fmt.Fprintf(w, "  Entry:      %.6g\n", s.EntryPrice)
	fmt.Fprintf(w, "  Exit:       %.6g\n", s.CurrentPrice)
	fmt.Fprintf(w, "  PnL:        %+.2f%% (%+.2f)\n", s.PnLFraction*100, s.PnLAmount)
}

func writeChart(path string, s sim.RoundState) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := chart.RenderHistory(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
