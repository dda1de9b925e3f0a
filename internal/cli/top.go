package cli

import (
	"context"

	"github.com/spf13/cobra"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// TopCmd creates the top command with its ranking subcommands.
func TopCmd(env *Env, g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show top-N rankings",
		Long: `Show rankings of exchanges, coins and pairs by volume.

--limit sets the list length; 0 keeps the service default.`,
		Example: `  cryptocompare top exchanges BTC USD --limit 3
  cryptocompare top volumes USD
  cryptocompare top pairs ETH
  cryptocompare top totalvol USD --page 1`,
	}

	cmd.AddCommand(topPairCmd(env, g, "exchanges", "Top exchanges for a pair", func(c *cryptocompare.Client) pairQuery {
		return c.TopExchanges
	}))
	cmd.AddCommand(topPairCmd(env, g, "exchanges-full", "Top exchanges for a pair with full trading info", func(c *cryptocompare.Client) pairQuery {
		return c.TopExchangesFull
	}))
	cmd.AddCommand(topSingleCmd(env, g, "volumes <to>", "Top coins by volume in a currency", func(c *cryptocompare.Client) singleQuery {
		return c.TopVolumes
	}))
	cmd.AddCommand(topSingleCmd(env, g, "pairs <from>", "Top trading pairs for a coin", func(c *cryptocompare.Client) singleQuery {
		return c.TopPairs
	}))
	cmd.AddCommand(topTotalVolumeCmd(env, g))

	return cmd
}

type (
	pairQuery   func(ctx context.Context, from, to string, opts cryptocompare.TopOptions) (any, error)
	singleQuery func(ctx context.Context, sym string, opts cryptocompare.TopOptions) (any, error)
)

func topPairCmd(env *Env, g *Globals, name, short string, pick func(*cryptocompare.Client) pairQuery) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   name + " <from> <to>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			to, err := parseSymbol(args[1])
			if err != nil {
				return err
			}
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			query := pick(s.client)
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return query(ctx, from, to, cryptocompare.TopOptions{Limit: limit})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "List length (default: service default)")

	return cmd
}

func topSingleCmd(env *Env, g *Globals, use, short string, pick func(*cryptocompare.Client) singleQuery) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sym, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			query := pick(s.client)
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return query(ctx, sym, cryptocompare.TopOptions{Limit: limit})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "List length (default: service default)")

	return cmd
}

func topTotalVolumeCmd(env *Env, g *Globals) *cobra.Command {
	var limit, page int

	cmd := &cobra.Command{
		Use:   "totalvol <to>",
		Short: "Coins ranked by total volume across all markets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.TopTotalVolume(ctx, to, cryptocompare.TopTotalVolumeOptions{Limit: limit, Page: page})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "List length (default: service default)")
	cmd.Flags().IntVar(&page, "page", 0, "Page number, counted from 0")

	return cmd
}
