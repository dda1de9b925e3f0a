package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/apierr"
	"github.com/alnah/go-cryptocompare/internal/cli"
	"github.com/alnah/go-cryptocompare/internal/config"
	"github.com/alnah/go-cryptocompare/internal/lang"
)

// ---------------------------------------------------------------------------
// exitCode
// ---------------------------------------------------------------------------

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupt", fmt.Errorf("price: %w", context.Canceled), ExitInterrupt},
		{"unknown flag", errors.New("unknown flag: --bogus"), ExitUsage},
		{"arg count", errors.New("accepts 2 arg(s), received 1"), ExitUsage},
		{"exclusive flags", errors.New("if any flags in the group [full plain] are set none of the others can be"), ExitUsage},
		{"unknown command", errors.New(`unknown command "prices" for "cryptocompare"`), ExitUsage},
		{"bad flag value", errors.New(`invalid argument "x" for "--limit" flag`), ExitUsage},
		{"client config", fmt.Errorf("wrap: %w", cryptocompare.ErrInvalidConfig), ExitSetup},
		{"config value", fmt.Errorf("timeout: %w", config.ErrInvalidValue), ExitSetup},
		{"config syntax", fmt.Errorf("line 3: %w", config.ErrInvalidSyntax), ExitSetup},
		{"symbol", fmt.Errorf("x: %w", cli.ErrInvalidSymbol), ExitValidation},
		{"time", fmt.Errorf("x: %w", cli.ErrInvalidTime), ExitValidation},
		{"calculation", fmt.Errorf("x: %w", cli.ErrInvalidCalculation), ExitValidation},
		{"output exists", fmt.Errorf("x: %w", cli.ErrOutputExists), ExitValidation},
		{"language", fmt.Errorf("x: %w", lang.ErrInvalid), ExitValidation},
		{"endpoint", fmt.Errorf("x: %w", cryptocompare.ErrUnknownEndpoint), ExitValidation},
		{"config key", fmt.Errorf("x: %w", config.ErrUnknownKey), ExitValidation},
		{"not a directory", fmt.Errorf("x: %w", config.ErrNotDirectory), ExitValidation},
		{"transport", &cryptocompare.TransportError{Endpoint: cryptocompare.EndpointPrice, StatusCode: 500}, ExitAPI},
		{"timeout", &cryptocompare.TimeoutError{Endpoint: cryptocompare.EndpointPrice}, ExitAPI},
		{"service", &cryptocompare.ServiceError{Endpoint: cryptocompare.EndpointPrice, Message: "bad"}, ExitAPI},
		{"service message with usage words", &cryptocompare.ServiceError{Endpoint: cryptocompare.EndpointPrice, Message: "limit accepts at most 2000"}, ExitAPI},
		{"decode", &cryptocompare.DecodeError{Endpoint: cryptocompare.EndpointPrice}, ExitAPI},
		{"retries exhausted", fmt.Errorf("%w after 3 attempts: boom", apierr.ErrRetriesExhausted), ExitAPI},
		{"payload shape", fmt.Errorf("x: %w", cli.ErrUnexpectedPayload), ExitAPI},
		{"other", errors.New("disk on fire"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsCobraUsageError_Nil(t *testing.T) {
	t.Parallel()

	if isCobraUsageError(nil) {
		t.Error("isCobraUsageError(nil) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// newRootCmd
// ---------------------------------------------------------------------------

func TestNewRootCmd_RegistersCommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd(cli.DefaultEnv())

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"price", "average", "history", "pricehist", "dayavg", "top", "snapshot",
		"subs", "watchlist", "news", "news-providers", "exchanges", "coins", "ratelimit",
		"endpoints", "config",
	} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}

	for _, flag := range []string{"app-name", "timeout", "retries", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

// serverFactory builds clients aimed at a test server.
type serverFactory struct{ url string }

func (f serverFactory) NewClient(appName string, opts ...cryptocompare.Option) (*cryptocompare.Client, error) {
	return cryptocompare.New(appName, append(opts, cryptocompare.WithBaseURL(f.url))...)
}

type staticLoader struct{ cfg config.Config }

func (l staticLoader) Load() (config.Config, error) { return l.cfg, nil }

func TestNewRootCmd_GlobalFlagsReachClient(t *testing.T) {
	t.Parallel()

	queries := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		_, _ = io.WriteString(w, `{"USD":1}`)
	}))
	t.Cleanup(srv.Close)

	stdout := &bytes.Buffer{}
	env := cli.NewEnv(
		cli.WithStdout(stdout),
		cli.WithStderr(io.Discard),
		cli.WithConfigLoader(staticLoader{cfg: config.Config{AppName: "from-config"}}),
		cli.WithClientFactory(serverFactory{url: srv.URL}),
	)

	root := newRootCmd(env)
	root.SetArgs([]string{"--app-name", "from-flag", "price", "BTC", "USD"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	want := "fsym=BTC&tsyms=USD&e=CCCAGG&tryConversion=true&extraParams=from-flag"
	if gotQuery := <-queries; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if stdout.String() != "{\n  \"USD\": 1\n}\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestNewRootCmd_UsageErrorsMapToExitUsage(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"price", "BTC"},
		{"price", "BTC", "USD", "--bogus"},
		{"history", "day", "BTC", "USD", "--limit", "many"},
		{"nope"},
	}

	for _, args := range tests {
		root := newRootCmd(cli.DefaultEnv())
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)

		err := root.ExecuteContext(context.Background())
		if err == nil {
			t.Errorf("%v: expected error, got nil", args)
			continue
		}
		if got := exitCode(err); got != ExitUsage {
			t.Errorf("%v: exitCode(%q) = %d, want %d", args, err, got, ExitUsage)
		}
	}
}
