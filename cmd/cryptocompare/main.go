package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/apierr"
	"github.com/alnah/go-cryptocompare/internal/cli"
	"github.com/alnah/go-cryptocompare/internal/config"
	"github.com/alnah/go-cryptocompare/internal/lang"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitAPI        = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd(cli.DefaultEnv())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd assembles the command tree around env.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cryptocompare",
		Short:   "Query the CryptoCompare public API",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := &cli.Globals{}
	g.Register(rootCmd.PersistentFlags())

	// Market data.
	rootCmd.AddCommand(cli.PriceCmd(env, g))
	rootCmd.AddCommand(cli.AverageCmd(env, g))
	rootCmd.AddCommand(cli.HistoryCmd(env, g))
	rootCmd.AddCommand(cli.PriceHistCmd(env, g))
	rootCmd.AddCommand(cli.DayAvgCmd(env, g))
	rootCmd.AddCommand(cli.TopCmd(env, g))
	rootCmd.AddCommand(cli.SnapshotCmd(env, g))

	// Reference data.
	rootCmd.AddCommand(cli.SubsCmd(env, g))
	rootCmd.AddCommand(cli.WatchlistCmd(env, g))
	rootCmd.AddCommand(cli.NewsCmd(env, g))
	rootCmd.AddCommand(cli.NewsProvidersCmd(env, g))
	rootCmd.AddCommand(cli.ExchangesCmd(env, g))
	rootCmd.AddCommand(cli.CoinsCmd(env, g))
	rootCmd.AddCommand(cli.RateLimitCmd(env, g))

	// Local.
	rootCmd.AddCommand(cli.EndpointsCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	return rootCmd
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Setup errors (ExitSetup = 3): the client or its settings cannot be built.
	if errors.Is(err, cryptocompare.ErrInvalidConfig) || errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidSyntax) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, cli.ErrInvalidSymbol) || errors.Is(err, cli.ErrInvalidTime) ||
		errors.Is(err, cli.ErrInvalidCalculation) || errors.Is(err, cli.ErrOutputExists) ||
		errors.Is(err, lang.ErrInvalid) || errors.Is(err, cryptocompare.ErrUnknownEndpoint) ||
		errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidKey) ||
		errors.Is(err, config.ErrNotDirectory) || errors.Is(err, config.ErrNotWritable) {
		return ExitValidation
	}

	// API errors (ExitAPI = 5).
	if errors.Is(err, cryptocompare.ErrTransport) || errors.Is(err, cryptocompare.ErrTimeout) ||
		errors.Is(err, cryptocompare.ErrService) || errors.Is(err, cryptocompare.ErrDecode) ||
		errors.Is(err, apierr.ErrRetriesExhausted) || errors.Is(err, cli.ErrUnexpectedPayload) {
		return ExitAPI
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors.
	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	// Typed errors are matched first: a service message may contain the same words.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// These patterns are stable across Cobra versions (tested with v1.8+).
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
