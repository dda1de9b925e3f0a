package cryptocompare_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// Notes:
// - Black-box testing via package cryptocompare_test.
// - Dispatch classification uses a hand-written httpDoer mock so failures can
//   be simulated without a network; request encoding uses httptest.Server.
// - Timeouts use a 10ms client timeout and a doer that blocks on the request
//   context, so no test sleeps.

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// mockHTTPClient implements httpDoer for testing.
type mockHTTPClient struct {
	mu       sync.Mutex
	requests []*http.Request

	// DoFunc overrides the canned response when set.
	DoFunc func(req *http.Request) (*http.Response, error)

	statusCode int
	body       string
}

func newMockHTTPClient(statusCode int, body string) *mockHTTPClient {
	return &mockHTTPClient{statusCode: statusCode, body: body}
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewReader([]byte(m.body))),
		Header:     make(http.Header),
	}, nil
}

func (m *mockHTTPClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockHTTPClient) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// blockingDoer never answers before the request context ends.
func blockingDoer(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}

func newTestClient(t *testing.T, doer *mockHTTPClient, opts ...cryptocompare.Option) *cryptocompare.Client {
	t.Helper()
	opts = append([]cryptocompare.Option{cryptocompare.WithHTTPClient(doer)}, opts...)
	c, err := cryptocompare.New("test-app", opts...)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestNew - constructor validation
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		appName string
		opts    []cryptocompare.Option
		wantErr bool
		timeout time.Duration
	}{
		{name: "defaults", appName: "app", timeout: cryptocompare.DefaultTimeout},
		{name: "custom timeout", appName: "app", opts: []cryptocompare.Option{cryptocompare.WithTimeout(1500 * time.Millisecond)}, timeout: 1500 * time.Millisecond},
		{name: "zero timeout rejected", appName: "app", opts: []cryptocompare.Option{cryptocompare.WithTimeout(0)}, wantErr: true},
		{name: "negative timeout rejected", appName: "app", opts: []cryptocompare.Option{cryptocompare.WithTimeout(-time.Second)}, wantErr: true},
		{name: "empty app name rejected", appName: "", wantErr: true},
		{name: "blank app name rejected", appName: "  \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := cryptocompare.New(tt.appName, tt.opts...)
			if tt.wantErr {
				if !errors.Is(err, cryptocompare.ErrInvalidConfig) {
					t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
				}
				if c != nil {
					t.Error("New() returned a client along with an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if c.Timeout() != tt.timeout {
				t.Errorf("Timeout() = %s, want %s", c.Timeout(), tt.timeout)
			}
			if c.AppName() != tt.appName {
				t.Errorf("AppName() = %q, want %q", c.AppName(), tt.appName)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDispatch_Classification - the four failure kinds and success
// ---------------------------------------------------------------------------

func TestDispatch_TransportError(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusTooManyRequests, http.StatusNotFound, http.StatusInternalServerError, http.StatusMultipleChoices} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()

			doer := newMockHTTPClient(code, `{"Response":"Error","Message":"ignored"}`)
			c := newTestClient(t, doer)

			got, err := c.Price(context.Background(), "BTC", cryptocompare.Syms("USD"), cryptocompare.PriceOptions{})
			if got != nil {
				t.Errorf("payload = %v, want nil", got)
			}

			var te *cryptocompare.TransportError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v (%T), want *TransportError", err, err)
			}
			if te.StatusCode != code {
				t.Errorf("StatusCode = %d, want %d", te.StatusCode, code)
			}
			if te.Endpoint != cryptocompare.EndpointPrice {
				t.Errorf("Endpoint = %s, want price", te.Endpoint)
			}
			if !errors.Is(err, cryptocompare.ErrTransport) {
				t.Error("errors.Is(err, ErrTransport) = false")
			}
			if errors.Is(err, cryptocompare.ErrService) || errors.Is(err, cryptocompare.ErrTimeout) {
				t.Error("TransportError matched another kind")
			}
			if doer.CallCount() != 1 {
				t.Errorf("call count = %d, want 1 (no retry)", doer.CallCount())
			}
		})
	}
}

func TestDispatch_TransportErrorWithRealServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := cryptocompare.New("test-app", cryptocompare.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	_, err = c.RateLimit(context.Background())
	var te *cryptocompare.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("error = %v, want TransportError 429", err)
	}
	if !strings.Contains(te.Error(), "429") {
		t.Errorf("Error() = %q, want containing 429", te.Error())
	}
}

func TestDispatch_Timeout(t *testing.T) {
	t.Parallel()

	doer := &mockHTTPClient{DoFunc: blockingDoer}
	c := newTestClient(t, doer, cryptocompare.WithTimeout(10*time.Millisecond))

	got, err := c.HistoDay(context.Background(), "BTC", "USD", cryptocompare.HistoDayOptions{})
	if got != nil {
		t.Errorf("payload = %v, want nil", got)
	}

	var te *cryptocompare.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *TimeoutError", err, err)
	}
	if te.Timeout != 10*time.Millisecond {
		t.Errorf("Timeout = %s, want 10ms", te.Timeout)
	}
	if !errors.Is(err, cryptocompare.ErrTimeout) {
		t.Error("errors.Is(err, ErrTimeout) = false")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, context.DeadlineExceeded) = false")
	}
	if doer.CallCount() != 1 {
		t.Errorf("call count = %d, want 1 (no retry)", doer.CallCount())
	}
}

func TestDispatch_TimeoutWithRealServer(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := cryptocompare.New("test-app",
		cryptocompare.WithBaseURL(srv.URL),
		cryptocompare.WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	_, err = c.Coins(context.Background())
	if !errors.Is(err, cryptocompare.ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestDispatch_ServiceError(t *testing.T) {
	t.Parallel()

	doer := newMockHTTPClient(http.StatusOK, `{"Response": "Error", "Message": "bad symbol"}`)
	c := newTestClient(t, doer)

	got, err := c.PriceMulti(context.Background(), cryptocompare.Syms("NOPE"), cryptocompare.Syms("USD"), cryptocompare.PriceOptions{})
	if got != nil {
		t.Errorf("payload = %v, want nil", got)
	}

	var se *cryptocompare.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v (%T), want *ServiceError", err, err)
	}
	if se.Message != "bad symbol" {
		t.Errorf("Message = %q, want %q", se.Message, "bad symbol")
	}
	if !errors.Is(err, cryptocompare.ErrService) {
		t.Error("errors.Is(err, ErrService) = false")
	}
	if !strings.Contains(err.Error(), "bad symbol") {
		t.Errorf("Error() = %q, want containing message", err.Error())
	}
}

func TestDispatch_DecodeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"html", "<html>oops</html>"},
		{"truncated", `{"BTC": {"USD": 5`},
		{"trailing data", `{"a":1} {"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, newMockHTTPClient(http.StatusOK, tt.body))
			_, err := c.Exchanges(context.Background())

			var de *cryptocompare.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v (%T), want *DecodeError", err, err)
			}
			if !errors.Is(err, cryptocompare.ErrDecode) {
				t.Error("errors.Is(err, ErrDecode) = false")
			}
		})
	}
}

func TestDispatch_ConnectionFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	doer := &mockHTTPClient{DoFunc: func(*http.Request) (*http.Response, error) {
		return nil, cause
	}}
	c := newTestClient(t, doer)

	_, err := c.Coins(context.Background())

	var te *cryptocompare.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if te.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", te.StatusCode)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestDispatch_CallerCancellation(t *testing.T) {
	t.Parallel()

	doer := &mockHTTPClient{DoFunc: blockingDoer}
	c := newTestClient(t, doer, cryptocompare.WithTimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Coins(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	for _, kind := range []error{cryptocompare.ErrTimeout, cryptocompare.ErrTransport, cryptocompare.ErrService, cryptocompare.ErrDecode} {
		if errors.Is(err, kind) {
			t.Errorf("cancellation classified as %v", kind)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDispatch_Success - payload returned verbatim
// ---------------------------------------------------------------------------

func TestDispatch_SinglePriceExample(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"BTC": {"USD": 50000}}`))
	}))
	defer srv.Close()

	c, err := cryptocompare.New("my-app", cryptocompare.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	got, err := c.Price(context.Background(), "BTC", cryptocompare.Symbols{"USD"}, cryptocompare.PriceOptions{})
	if err != nil {
		t.Fatalf("Price() unexpected error: %v", err)
	}

	want := map[string]any{"BTC": map[string]any{"USD": json.Number("50000")}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Price() = %#v, want %#v", got, want)
	}

	if gotPath != "/data/price" {
		t.Errorf("path = %q, want /data/price", gotPath)
	}
	wantQuery := map[string][]string{
		"fsym":          {"BTC"},
		"tsyms":         {"USD"},
		"e":             {"CCCAGG"},
		"tryConversion": {"true"},
		"extraParams":   {"my-app"},
	}
	if !reflect.DeepEqual(gotQuery, wantQuery) {
		t.Errorf("query = %v, want %v", gotQuery, wantQuery)
	}
}

func TestDispatch_ArrayPayload(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, newMockHTTPClient(http.StatusOK, `[{"key":"coindesk"},{"key":"cryptocompare"}]`))

	got, err := c.NewsProviders(context.Background())
	if err != nil {
		t.Fatalf("NewsProviders() unexpected error: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("NewsProviders() = %#v, want two-element []any", got)
	}
}

func TestDispatch_SuccessPayloadWithResponseField(t *testing.T) {
	t.Parallel()

	body := `{"Response":"Success","Data":[1,2]}`
	c := newTestClient(t, newMockHTTPClient(http.StatusOK, body))

	got, err := c.HistoHour(context.Background(), "BTC", "USD", cryptocompare.HistoOptions{})
	if err != nil {
		t.Fatalf("HistoHour() unexpected error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok || m["Response"] != "Success" {
		t.Errorf("HistoHour() = %#v, want Response=Success map", got)
	}
}

func TestDispatch_RequestShape(t *testing.T) {
	t.Parallel()

	doer := newMockHTTPClient(http.StatusOK, `{}`)
	c := newTestClient(t, doer, cryptocompare.WithBaseURL("https://proxy.example/"))

	if _, err := c.TopPairs(context.Background(), "ETH", cryptocompare.TopOptions{}); err != nil {
		t.Fatalf("TopPairs() unexpected error: %v", err)
	}

	req := doer.LastRequest()
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if req.Body != nil && req.Body != http.NoBody {
		t.Error("GET request carries a body")
	}
	want := "https://proxy.example/data/top/pairs?fsym=ETH&limit=5&extraParams=test-app"
	if got := req.URL.String(); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
	if _, ok := req.Context().Deadline(); !ok {
		t.Error("request context has no deadline")
	}
}

// ---------------------------------------------------------------------------
// TestDispatch_Logging - one debug record per call
// ---------------------------------------------------------------------------

func TestDispatch_Logging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	doer := newMockHTTPClient(http.StatusBadGateway, "")
	c := newTestClient(t, doer, cryptocompare.WithLogger(zap.New(core)))

	_, _ = c.RateLimit(context.Background())

	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d 'request failed' records, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["endpoint"] != "rate-limit" {
		t.Errorf("endpoint field = %v, want rate-limit", fields["endpoint"])
	}
	if fields["group"] != "NONE" {
		t.Errorf("group field = %v, want NONE", fields["group"])
	}
	if fields["status"] != int64(http.StatusBadGateway) {
		t.Errorf("status field = %v, want 502", fields["status"])
	}
}

// ---------------------------------------------------------------------------
// TestDecode / TestServiceFailure - internal helpers
// ---------------------------------------------------------------------------

func TestDecode_KeepsNumbersExact(t *testing.T) {
	t.Parallel()

	v, err := cryptocompare.Decode([]byte(`{"p": 0.00000123456789012345}`))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	got := v.(map[string]any)["p"]
	if got != json.Number("0.00000123456789012345") {
		t.Errorf("p = %#v, want exact json.Number", got)
	}
}

func TestServiceFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		wantMsg string
		wantOK  bool
	}{
		{"error with message", map[string]any{"Response": "Error", "Message": "x"}, "x", true},
		{"error without message", map[string]any{"Response": "Error"}, "", true},
		{"success", map[string]any{"Response": "Success"}, "", false},
		{"no response field", map[string]any{"USD": 1}, "", false},
		{"non-string response", map[string]any{"Response": 1}, "", false},
		{"array", []any{"Error"}, "", false},
		{"scalar", "Error", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, ok := cryptocompare.ServiceFailure(tt.in)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("ServiceFailure(%v) = (%q, %v), want (%q, %v)", tt.in, msg, ok, tt.wantMsg, tt.wantOK)
			}
		})
	}
}
