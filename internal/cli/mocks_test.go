package cli

import (
	"sync"

	cryptocompare "github.com/alnah/go-cryptocompare"
	"github.com/alnah/go-cryptocompare/internal/config"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ClientFactory
// ---------------------------------------------------------------------------

// mockClientFactory builds real clients pointed at baseURL and records the
// application names it was asked for.
type mockClientFactory struct {
	baseURL string

	mu       sync.Mutex
	appNames []string
	clients  []*cryptocompare.Client
}

func (m *mockClientFactory) NewClient(appName string, opts ...cryptocompare.Option) (*cryptocompare.Client, error) {
	opts = append(opts, cryptocompare.WithBaseURL(m.baseURL))
	c, err := cryptocompare.New(appName, opts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.appNames = append(m.appNames, appName)
	if c != nil {
		m.clients = append(m.clients, c)
	}
	return c, err
}

func (m *mockClientFactory) AppNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.appNames...)
}

// LastClient returns the most recently built client, or nil.
func (m *mockClientFactory) LastClient() *cryptocompare.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.clients) == 0 {
		return nil
	}
	return m.clients[len(m.clients)-1]
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ ClientFactory = (*mockClientFactory)(nil)
)
