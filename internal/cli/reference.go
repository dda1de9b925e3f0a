package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/format"
	"github.com/alnah/go-cryptocompare/internal/lang"
)

// SubsCmd creates the subs command.
func SubsCmd(env *Env, g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "subs <from> [to[,to...]]",
		Short: "List streamer subscription channels for a coin",
		Long: `List the streamer subscription channels of a coin.

Without a currency list every traded pair is returned.`,
		Example: `  cryptocompare subs BTC
  cryptocompare subs BTC USD,EUR`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSymbol(args[0])
			if err != nil {
				return err
			}
			var to cryptocompare.Symbols
			if len(args) == 2 {
				if to, err = parseSymbols(args[1]); err != nil {
					return err
				}
			}
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.Subs(ctx, from, to)
			})
		},
	}
}

// WatchlistCmd creates the watchlist command.
func WatchlistCmd(env *Env, g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:     "watchlist <from[,from...]> <to>",
		Short:   "Show subscriptions with pricing info for several coins",
		Example: `  cryptocompare watchlist BTC,ETH USD`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSymbols(args[0])
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
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.SubsWatchlist(ctx, from, to)
			})
		},
	}
}

// NewsCmd creates the news command.
func NewsCmd(env *Env, g *Globals) *cobra.Command {
	var (
		feeds    string
		before   string
		language string
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest news articles",
		Long: fmt.Sprintf(`Show the latest news articles.

--feeds restricts articles to provider keys (see news-providers).
--before returns articles published before an instant.

Languages: %s`, languageList()),
		Example: `  cryptocompare news
  cryptocompare news --feeds coindesk,cryptocompare --lang pt-BR
  cryptocompare news --before 2024-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := lang.Parse(language)
			if err != nil {
				return err
			}
			ts, err := parseTime(before)
			if err != nil {
				return err
			}
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), func(ctx context.Context) (any, error) {
				return s.client.News(ctx, cryptocompare.NewsOptions{
					Feeds:  splitList(feeds),
					Before: ts,
					Lang:   code,
				})
			})
		},
	}

	cmd.Flags().StringVar(&feeds, "feeds", "", "Comma-separated provider keys (default all)")
	cmd.Flags().StringVar(&before, "before", "", "Only articles published before this instant")
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Article language (default EN)")

	return cmd
}

// languageList renders "EN (English), FR (French), ..." for help text.
func languageList() string {
	codes := lang.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprintf("%s (%s)", c, lang.DisplayName(c))
	}
	return strings.Join(parts, ", ")
}

// splitList splits a comma-separated list, keeping case and dropping blanks.
func splitList(raw string) cryptocompare.Symbols {
	var out cryptocompare.Symbols
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// listCmd creates a command that calls a parameterless endpoint.
func listCmd(env *Env, g *Globals, use, short string, pick func(*cryptocompare.Client) func(context.Context) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(env, g, "")
			if err != nil {
				return err
			}
			return s.query(cmd.Context(), pick(s.client))
		},
	}
}

// NewsProvidersCmd creates the news-providers command.
func NewsProvidersCmd(env *Env, g *Globals) *cobra.Command {
	return listCmd(env, g, "news-providers", "List the integrated news providers",
		func(c *cryptocompare.Client) func(context.Context) (any, error) { return c.NewsProviders })
}

// ExchangesCmd creates the exchanges command.
func ExchangesCmd(env *Env, g *Globals) *cobra.Command {
	return listCmd(env, g, "exchanges", "List every exchange with its traded pairs",
		func(c *cryptocompare.Client) func(context.Context) (any, error) { return c.Exchanges })
}

// CoinsCmd creates the coins command.
func CoinsCmd(env *Env, g *Globals) *cobra.Command {
	return listCmd(env, g, "coins", "List every coin with its metadata",
		func(c *cryptocompare.Client) func(context.Context) (any, error) { return c.Coins })
}

// RateLimitCmd creates the ratelimit command.
func RateLimitCmd(env *Env, g *Globals) *cobra.Command {
	return listCmd(env, g, "ratelimit", "Show the remaining call budget",
		func(c *cryptocompare.Client) func(context.Context) (any, error) { return c.RateLimit })
}

// EndpointsCmd creates the endpoints command. It lists the registry and
// makes no network call.
func EndpointsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List known endpoints with their cache hints and rate-limit groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpoints(env)
		},
	}
}

func runEndpoints(env *Env) error {
	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tPATH\tGROUP\tCACHE")
	for _, ep := range cryptocompare.Endpoints() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.Name, ep.Path, ep.Group, format.DurationHuman(ep.CacheTTL()))
	}
	return tw.Flush()
}
