package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flashtrade/journal"
	"github.com/rustyeddy/flashtrade/sim"
)

func newJournalCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the round journal",
		Long: `Query and display round records from the SQLite journal.

Subcommands:
  round  - Get details of a specific round by ID
  today  - List rounds closed today
  day    - List rounds closed on a specific day
  stats  - Outcome counts and win rate

Examples:
  flashtrade journal round <round-id>
  flashtrade journal today
  flashtrade journal day 2024-01-15 --db ./flashtrade.sqlite`,
	}

	cmd.PersistentFlags().String("db", "./flashtrade.sqlite", "path to SQLite journal DB")
	_ = rc.v.BindPFlag("db", cmd.PersistentFlags().Lookup("db"))

	open := func() (*journal.SQLite, error) {
		j, err := journal.NewSQLite(rc.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return j, nil
	}

	roundCmd := &cobra.Command{
		Use:   "round <round-id>",
		Short: "Get details of a specific round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := open()
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetRound(args[0])
			if err != nil {
				return fmt.Errorf("get round: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRoundOrg(rec))
			return nil
		},
	}

	listDay := func(cmd *cobra.Command, day string) error {
		j, err := open()
		if err != nil {
			return err
		}
		defer j.Close()

		start, end, err := dayBounds(time.Local, day)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		recs, err := j.ListRoundsClosedBetween(start, end)
		if err != nil {
			return fmt.Errorf("query rounds: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRoundsOrg(recs))
		return nil
	}

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "List rounds closed today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
		},
	}

	dayCmd := &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "List rounds closed on a specific day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDay(cmd, args[0])
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show outcome counts and win rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := open()
			if err != nil {
				return err
			}
			defer j.Close()

			st, err := j.OutcomeCounts()
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, journal.FormatStatsOrg(st))
			for _, o := range sim.Outcomes {
				if n := st.ByOutcome[string(o)]; n > 0 {
					fmt.Fprintf(out, "- %s: %d\n", o, n)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(roundCmd, todayCmd, dayCmd, statsCmd)
	return cmd
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
