package cli

import (
	"context"

	"github.com/spf13/cobra"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// PriceCmd creates the price command.
// The env parameter provides injectable dependencies for testing.
func PriceCmd(env *Env, g *Globals) *cobra.Command {
	var (
		exchange     string
		noConversion bool
		full         bool
		plain        bool
		precision    int
	)

	cmd := &cobra.Command{
		Use:   "price <from[,from...]> <to[,to...]>",
		Short: "Show current prices",
		Long: `Show the current price of one or more symbols in one or more currencies.

A single source symbol queries the flat price endpoint; several source
symbols query the price matrix. --full returns every trading field (volume,
open, high, low, ...) under RAW and DISPLAY keys.

--plain prints one "FROM/TO value" line per pair instead of JSON, rendered
exactly from the service's decimal values.`,
		Example: `  cryptocompare price BTC USD,EUR
  cryptocompare price BTC,ETH USD --plain --precision 2
  cryptocompare price ETH USD -e Kraken --no-conversion
  cryptocompare price BTC,ETH USD,EUR --full`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd.Context(), env, g, args[0], args[1], priceFlags{
				exchange:     exchange,
				noConversion: noConversion,
				full:         full,
				plain:        plain,
				precision:    precision,
			})
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange to query (default CCCAGG or config)")
	cmd.Flags().BoolVar(&noConversion, "no-conversion", false, "Only return direct trading values")
	cmd.Flags().BoolVar(&full, "full", false, "Return full trading info")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print FROM/TO value lines instead of JSON")
	cmd.Flags().IntVar(&precision, "precision", -1, "Decimal places for --plain (-1 keeps all digits)")
	cmd.MarkFlagsMutuallyExclusive("full", "plain")

	return cmd
}

type priceFlags struct {
	exchange     string
	noConversion bool
	full         bool
	plain        bool
	precision    int
}

// runPrice picks the endpoint from the shape of the request.
func runPrice(ctx context.Context, env *Env, g *Globals, rawFrom, rawTo string, f priceFlags) error {
	from, err := parseSymbols(rawFrom)
	if err != nil {
		return err
	}
	to, err := parseSymbols(rawTo)
	if err != nil {
		return err
	}

	s, err := newSession(env, g, f.exchange)
	if err != nil {
		return err
	}
	opts := cryptocompare.PriceOptions{Exchange: s.exchange, DisableConversion: f.noConversion}

	v, err := s.call(ctx, func(ctx context.Context) (any, error) {
		switch {
		case f.full:
			return s.client.PriceMultiFull(ctx, from, to, opts)
		case len(from) == 1:
			return s.client.Price(ctx, from[0], to, opts)
		default:
			return s.client.PriceMulti(ctx, from, to, opts)
		}
	})
	if err != nil {
		return err
	}

	if f.plain {
		return priceLines(env.Stdout, from[0], v, f.precision)
	}
	return writeJSON(env.Stdout, v)
}

// AverageCmd creates the average command.
func AverageCmd(env *Env, g *Globals) *cobra.Command {
	var exchange string

	cmd := &cobra.Command{
		Use:   "average <from> <to>",
		Short: "Compute a volume-weighted average price",
		Long: `Compute the current trading info of a pair as a volume-weighted average
over the given exchange.`,
		Example: `  cryptocompare average BTC USD
  cryptocompare average BTC USD -e Coinbase`,
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
			s, err := newSession(env, g, exchange)
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.GenerateAverage(ctx, from, to, cryptocompare.AverageOptions{Exchange: s.exchange})
			})
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange to average over (default CCCAGG or config)")

	return cmd
}
