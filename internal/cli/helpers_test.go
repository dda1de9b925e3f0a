package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-cryptocompare/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// fakeAPI - httptest server that records requests
// ---------------------------------------------------------------------------

type apiRequest struct {
	Path  string
	Query url.Values
	Raw   string
}

// fakeAPI answers every request with respond(path) and records the request.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []apiRequest
	respond  func(r *http.Request) (int, string)
}

func newFakeAPI(t *testing.T, respond func(r *http.Request) (int, string)) *fakeAPI {
	t.Helper()
	api := &fakeAPI{respond: respond}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, apiRequest{Path: r.URL.Path, Query: r.URL.Query(), Raw: r.URL.RawQuery})
		api.mu.Unlock()

		status, body := http.StatusOK, `{}`
		if api.respond != nil {
			status, body = api.respond(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(api.Close)
	return api
}

// jsonBody returns a responder that always answers 200 with body.
func jsonBody(body string) func(*http.Request) (int, string) {
	return func(*http.Request) (int, string) { return http.StatusOK, body }
}

func (a *fakeAPI) Requests() []apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiRequest(nil), a.requests...)
}

// LastRequest returns the most recent request, failing the test if none.
func (a *fakeAPI) LastRequest(t *testing.T) apiRequest {
	t.Helper()
	reqs := a.Requests()
	if len(reqs) == 0 {
		t.Fatal("no request reached the server")
	}
	return reqs[len(reqs)-1]
}

// ---------------------------------------------------------------------------
// testEnv - creates an Env wired to a fake API
// ---------------------------------------------------------------------------

type testEnvFixture struct {
	env     *Env
	stdout  *syncBuffer
	stderr  *syncBuffer
	api     *fakeAPI
	loader  *mockConfigLoader
	factory *mockClientFactory
}

// testEnv creates a test Env whose clients talk to api.
func testEnv(t *testing.T, api *fakeAPI) *testEnvFixture {
	t.Helper()

	f := &testEnvFixture{
		stdout:  &syncBuffer{},
		stderr:  &syncBuffer{},
		api:     api,
		loader:  &mockConfigLoader{},
		factory: &mockClientFactory{baseURL: api.URL},
	}
	f.env = &Env{
		Stdout:        f.stdout,
		Stderr:        f.stderr,
		Getenv:        staticEnv(nil),
		Now:           fixedTime(time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)),
		ConfigLoader:  f.loader,
		ClientFactory: f.factory,
	}
	return f
}

// run executes cmd with args under a background context.
func run(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return cmd.ExecuteContext(context.Background())
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// loaderWith returns a ConfigLoader that returns cfg.
func loaderWith(cfg config.Config) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return cfg, nil
		},
	}
}
