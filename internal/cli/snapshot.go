package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/config"
	"github.com/alnah/go-cryptocompare/internal/format"
	"github.com/alnah/go-cryptocompare/internal/throttle"
)

// Parallelism bounds for snapshot.
const (
	DefaultParallel = 4
	MaxParallel     = 10
)

// snapshotTimeLayout names default snapshot files, e.g. snapshot-20260126-143052.json.
const snapshotTimeLayout = "20060102-150405"

// Snapshot is the document written by the snapshot command.
type Snapshot struct {
	TakenAt time.Time       `json:"taken_at"`
	Prices  []SnapshotPrice `json:"prices"`
}

// SnapshotPrice is one pair of a snapshot, in the order requested.
type SnapshotPrice struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Price any    `json:"price"`
}

// clampParallel constrains parallel request count to valid range [1, MaxParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxParallel {
		return MaxParallel
	}
	return n
}

// parsePair splits "BTC/USD" or "BTC-USD" into its symbols.
func parsePair(raw string) (from, to string, err error) {
	sep := strings.IndexAny(raw, "/-")
	if sep == -1 {
		return "", "", fmt.Errorf("%q: pair must look like BTC/USD: %w", raw, ErrInvalidSymbol)
	}
	if from, err = parseSymbol(raw[:sep]); err != nil {
		return "", "", err
	}
	if to, err = parseSymbol(raw[sep+1:]); err != nil {
		return "", "", err
	}
	return from, to, nil
}

// SnapshotCmd creates the snapshot command.
func SnapshotCmd(env *Env, g *Globals) *cobra.Command {
	var (
		output   string
		save     bool
		parallel int
		exchange string
	)

	cmd := &cobra.Command{
		Use:   "snapshot <pair> [pair...]",
		Short: "Fetch the prices of several pairs at once",
		Long: `Fetch the current price of several pairs concurrently.

Requests are paced per rate-limit group and retried per --retries. The first
failure aborts the snapshot. Pairs keep the order they were given in.

The snapshot is printed as JSON, or written to a file with -o or --save.
Relative paths are placed under the configured output-dir.`,
		Example: `  cryptocompare snapshot BTC/USD ETH/USD ETH/BTC
  cryptocompare snapshot BTC/EUR ETH/EUR --save
  cryptocompare snapshot BTC/USD -o prices.json -p 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				save = true
			}
			return runSnapshot(cmd.Context(), env, g, args, output, save, parallel, exchange)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default snapshot-<time>.json)")
	cmd.Flags().BoolVar(&save, "save", false, "Write to a file instead of stdout")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", DefaultParallel, "Max concurrent requests (1-10)")
	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange to query (default CCCAGG or config)")

	return cmd
}

func runSnapshot(ctx context.Context, env *Env, g *Globals, rawPairs []string, output string, save bool, parallel int, exchange string) error {
	// === VALIDATION (fail-fast) ===

	prices := make([]SnapshotPrice, len(rawPairs))
	for i, raw := range rawPairs {
		from, to, err := parsePair(raw)
		if err != nil {
			return err
		}
		prices[i] = SnapshotPrice{From: from, To: to}
	}
	parallel = clampParallel(parallel)

	s, err := newSession(env, g, exchange)
	if err != nil {
		return err
	}

	if save {
		output = config.ResolveOutputPath(output, s.cfg.OutputDir,
			"snapshot-"+env.Now().UTC().Format(snapshotTimeLayout)+".json")
	}

	// === FETCH ===

	start := env.Now()
	if save {
		fmt.Fprintf(env.Stderr, "Fetching %d pairs...\n", len(prices))
	}

	if err := fetchSnapshot(ctx, s, throttle.New(throttle.DefaultLimits), prices, parallel); err != nil {
		return err
	}

	snap := Snapshot{TakenAt: start.UTC(), Prices: prices}
	if !save {
		return writeJSON(env.Stdout, snap)
	}

	// === WRITE OUTPUT ===

	var buf bytes.Buffer
	if err := writeJSON(&buf, snap); err != nil {
		return err
	}
	if err := writeFileAtomic(output, buf.Bytes()); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Done: %s (%s, %s)\n", output, format.Size(int64(buf.Len())), format.Duration(env.Now().Sub(start)))
	return nil
}

// fetchSnapshot fills prices[i].Price concurrently, at most parallel
// requests in flight. The first error cancels the rest.
func fetchSnapshot(ctx context.Context, s *session, t *throttle.Throttle, prices []SnapshotPrice, parallel int) error {
	sem := make(chan struct{}, parallel)
	g, ctx := errgroup.WithContext(ctx)

	opts := cryptocompare.PriceOptions{Exchange: s.exchange}
	for i := range prices {
		p := &prices[i]
		g.Go(func() error {
			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			v, err := s.call(ctx, func(ctx context.Context) (any, error) {
				if err := t.WaitEndpoint(ctx, cryptocompare.EndpointPrice); err != nil {
					return nil, err
				}
				return s.client.Price(ctx, p.From, cryptocompare.Syms(p.To), opts)
			})
			if err != nil {
				return fmt.Errorf("%s/%s: %w", p.From, p.To, err)
			}

			if m, ok := v.(map[string]any); ok {
				if price, ok := m[p.To]; ok {
					p.Price = price
					return nil
				}
			}
			return fmt.Errorf("%s/%s: %w", p.From, p.To, ErrUnexpectedPayload)
		})
	}

	return g.Wait()
}
