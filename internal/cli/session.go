package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/apierr"
	"github.com/alnah/go-cryptocompare/internal/config"
)

// DefaultAppName is sent as extraParams when neither flag nor config sets one.
const DefaultAppName = "go-cryptocompare"

// Globals holds the persistent flags shared by every command.
// Zero values mean "not given on the command line".
type Globals struct {
	AppName string
	Timeout time.Duration
	Retries int
	Verbose bool
}

// Register binds the global flags to fs, usually the root's persistent set.
func (g *Globals) Register(fs *pflag.FlagSet) {
	fs.StringVar(&g.AppName, "app-name", "", "Application name sent with every request (default "+DefaultAppName+")")
	fs.DurationVar(&g.Timeout, "timeout", 0, "Per-request timeout, e.g. 5s (default 5s)")
	fs.IntVar(&g.Retries, "retries", 0, "Retry transient failures this many times")
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "Log each request to stderr")
}

// session is the resolved state a command works with: one client, the
// effective exchange and the retry policy.
type session struct {
	env      *Env
	client   *cryptocompare.Client
	cfg      config.Config
	retry    apierr.RetryConfig
	exchange string
}

// newSession resolves settings with precedence flag > config file >
// environment > default and builds the client.
func newSession(env *Env, g *Globals, exchangeFlag string) (*session, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return nil, err
	}

	appName := firstNonEmpty(g.AppName, cfg.AppName, DefaultAppName)
	timeout := g.Timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}
	if timeout == 0 {
		timeout = cryptocompare.DefaultTimeout
	}

	client, err := env.ClientFactory.NewClient(appName,
		cryptocompare.WithTimeout(timeout),
		cryptocompare.WithLogger(newLogger(env.Stderr, g.Verbose)),
	)
	if err != nil {
		return nil, err
	}

	retry := apierr.DefaultRetryConfig
	retry.MaxRetries = g.Retries

	return &session{
		env:      env,
		client:   client,
		cfg:      cfg,
		retry:    retry,
		exchange: firstNonEmpty(exchangeFlag, cfg.Exchange),
	}, nil
}

// call runs fn under the retry policy.
func (s *session) call(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	return apierr.RetryWithBackoff(ctx, s.retry, func() (any, error) {
		return fn(ctx)
	}, apierr.IsRetryable)
}

// query runs fn under the retry policy and prints the payload as JSON.
func (s *session) query(ctx context.Context, fn func(ctx context.Context) (any, error)) error {
	v, err := s.call(ctx, fn)
	if err != nil {
		return err
	}
	return writeJSON(s.env.Stdout, v)
}

// newLogger returns a console logger on w at debug level, or a no-op
// logger when verbose is off.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
