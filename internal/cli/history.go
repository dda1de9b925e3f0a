package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// HistoryCmd creates the history command with one subcommand per period.
func HistoryCmd(env *Env, g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show OHLCV history",
		Long: `Show open, high, low, close and volume points for a pair.

Each subcommand queries one period. --to ends the series at a given instant
(unix seconds, RFC 3339 or YYYY-MM-DD); the default is now.`,
		Example: `  cryptocompare history day BTC USD --limit 7
  cryptocompare history hour ETH EUR --aggregate 4 --to 2024-01-01
  cryptocompare history minute BTC USD -e Kraken`,
	}

	cmd.AddCommand(historyPeriodCmd(env, g, "day", cryptocompare.DefaultDayLimit))
	cmd.AddCommand(historyPeriodCmd(env, g, "hour", cryptocompare.DefaultHourLimit))
	cmd.AddCommand(historyPeriodCmd(env, g, "minute", cryptocompare.DefaultMinuteLimit))

	return cmd
}

type historyFlags struct {
	exchange     string
	noConversion bool
	limit        int
	aggregate    int
	to           string
	all          bool
}

// historyPeriodCmd creates "history <period>".
func historyPeriodCmd(env *Env, g *Globals, period string, defaultLimit int) *cobra.Command {
	var f historyFlags

	cmd := &cobra.Command{
		Use:   period + " <from> <to>",
		Short: fmt.Sprintf("Show OHLCV points per %s", period),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), env, g, period, args[0], args[1], f)
		},
	}

	cmd.Flags().StringVarP(&f.exchange, "exchange", "e", "", "Exchange to query (default CCCAGG or config)")
	cmd.Flags().BoolVar(&f.noConversion, "no-conversion", false, "Only return direct trading values")
	cmd.Flags().IntVar(&f.limit, "limit", defaultLimit, "Number of points")
	cmd.Flags().IntVar(&f.aggregate, "aggregate", 1, "Periods per point")
	cmd.Flags().StringVar(&f.to, "to", "", "End of the series (default now)")
	if period == "day" {
		cmd.Flags().BoolVar(&f.all, "all", false, "Return the whole available history")
	}

	return cmd
}

func runHistory(ctx context.Context, env *Env, g *Globals, period, rawFrom, rawTo string, f historyFlags) error {
	from, err := parseSymbol(rawFrom)
	if err != nil {
		return err
	}
	to, err := parseSymbol(rawTo)
	if err != nil {
		return err
	}
	end, err := parseTime(f.to)
	if err != nil {
		return err
	}

	s, err := newSession(env, g, f.exchange)
	if err != nil {
		return err
	}
	opts := cryptocompare.HistoOptions{
		Exchange:          s.exchange,
		DisableConversion: f.noConversion,
		Aggregate:         f.aggregate,
		Limit:             f.limit,
		To:                end,
	}

	return s.query(ctx, func(ctx context.Context) (any, error) {
		switch period {
		case "day":
			return s.client.HistoDay(ctx, from, to, cryptocompare.HistoDayOptions{HistoOptions: opts, AllData: f.all})
		case "hour":
			return s.client.HistoHour(ctx, from, to, opts)
		default:
			return s.client.HistoMinute(ctx, from, to, opts)
		}
	})
}

// PriceHistCmd creates the pricehist command.
func PriceHistCmd(env *Env, g *Globals) *cobra.Command {
	var (
		at           string
		exchange     string
		noConversion bool
		calc         string
	)

	cmd := &cobra.Command{
		Use:   "pricehist <from> <to>",
		Short: "Show the price at a point in time",
		Long: `Show the daily price of a symbol at a point in time.

--calc selects how the day's price is computed: Close (default),
MidHighLow or VolFVolT.`,
		Example: `  cryptocompare pricehist BTC USD --at 2017-12-17
  cryptocompare pricehist ETH USD --at 1700000000 --calc MidHighLow`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			to, err := parseSymbol(args[1])
			if err != nil {
				return err
			}
			ts, err := parseTime(at)
			if err != nil {
				return err
			}
			calculation, err := parseCalculation(calc)
			if err != nil {
				return err
			}
			s, err := newSession(env, g, exchange)
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.PriceHistorical(ctx, from, to, cryptocompare.PriceHistoricalOptions{
					At:                ts,
					Exchange:          s.exchange,
					DisableConversion: noConversion,
					Calculation:       calculation,
				})
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Instant to price (default now)")
	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange to query (default CCCAGG or config)")
	cmd.Flags().BoolVar(&noConversion, "no-conversion", false, "Only return direct trading values")
	cmd.Flags().StringVar(&calc, "calc", "", "Calculation type: Close, MidHighLow, VolFVolT")

	return cmd
}

// DayAvgCmd creates the dayavg command.
func DayAvgCmd(env *Env, g *Globals) *cobra.Command {
	var (
		day          string
		exchange     string
		noConversion bool
		calc         string
		utcOffset    int
	)

	cmd := &cobra.Command{
		Use:   "dayavg <from> <to>",
		Short: "Show the average price over one day",
		Example: `  cryptocompare dayavg BTC USD --day 2024-03-01
  cryptocompare dayavg BTC EUR --calc VolFVolT --utc-offset 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			to, err := parseSymbol(args[1])
			if err != nil {
				return err
			}
			ts, err := parseTime(day)
			if err != nil {
				return err
			}
			avgType, err := parseCalculation(calc)
			if err != nil {
				return err
			}
			s, err := newSession(env, g, exchange)
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.DayAverage(ctx, from, to, cryptocompare.DayAverageOptions{
					To:                ts,
					Exchange:          s.exchange,
					DisableConversion: noConversion,
					AvgType:           avgType,
					UTCHourDiff:       utcOffset,
				})
			})
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to average (default today)")
	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange to query (default CCCAGG or config)")
	cmd.Flags().BoolVar(&noConversion, "no-conversion", false, "Only return direct trading values")
	cmd.Flags().StringVar(&calc, "calc", "", "Average type: Close, MidHighLow, VolFVolT")
	cmd.Flags().IntVar(&utcOffset, "utc-offset", 0, "Shift the day boundary by this many hours")

	return cmd
}
