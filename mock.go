package xhrmock

import (
	"net/http"
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tarmac-project/xhrmock/capability"
	"github.com/tarmac-project/xhrmock/xhr"
)

// Config controls construction of a Mock.
type Config struct {
	// Logger receives dispatch logs. Nil disables logging.
	Logger *zerolog.Logger

	// Metrics receives one record per dispatched request. Optional.
	Metrics Metrics

	// Capabilities is the table Setup installs the Mock into. Nil means xhr.Capabilities.
	Capabilities *capability.Table[xhr.Transport]
}

// Mock routes intercepted requests to registered handlers. Each Mock owns
// its handlers, global listeners and recorded calls, so independent Mocks
// can be used side by side.
type Mock struct {
	registry *registry
	log      zerolog.Logger
	metrics  Metrics
	table    *capability.Table[xhr.Transport]

	mu      sync.Mutex
	restore func()
}

// New creates a Mock that is not yet installed.
func New(config Config) *Mock {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	table := config.Capabilities
	if table == nil {
		table = xhr.Capabilities
	}

	return &Mock{
		registry: &registry{},
		log:      log,
		metrics:  config.Metrics,
		table:    table,
	}
}

// Setup installs the Mock as the request transport, then resets it.
// Calling Setup again only resets.
func (m *Mock) Setup() *Mock {
	m.mu.Lock()
	if m.restore == nil {
		m.restore = m.table.Override(xhr.CapabilityName, m)
	}
	m.mu.Unlock()

	return m.Reset()
}

// Teardown withdraws the Mock from the transport table, then resets it. Once
// every Mock that was set up on the table is torn down, in any order, the
// original transport is installed again. It is safe to call without Setup.
func (m *Mock) Teardown() *Mock {
	m.mu.Lock()
	restore := m.restore
	m.restore = nil
	m.mu.Unlock()

	if restore != nil {
		restore()
	}
	return m.Reset()
}

// Reset removes every handler, global listener and recorded call.
func (m *Mock) Reset() *Mock {
	m.registry.clear()
	return m
}

// Cleaner is satisfied by *testing.T and *testing.B.
type Cleaner interface {
	Cleanup(func())
}

// Activate calls Setup and registers Teardown with t.Cleanup.
func (m *Mock) Activate(t Cleaner) *Mock {
	m.Setup()
	t.Cleanup(func() { m.Teardown() })
	return m
}

// Handle registers a handler that sees every request.
func (m *Mock) Handle(fn Handler) error {
	if fn == nil {
		return ErrHandlerNil
	}
	m.registry.add(fn)
	return nil
}

// Route registers fn for requests whose method equals method and whose URL
// satisfies url. Use Exact for string equality or a *regexp.Regexp for
// pattern matching. method is normalized the way xhr.Request.Open normalizes
// it, so "get" matches GET requests.
func (m *Mock) Route(method string, url Matcher, fn Handler) error {
	if method == "" {
		return ErrMethodEmpty
	}
	method, err := xhr.NormalizeMethod(method)
	if err != nil {
		return err
	}
	if isNilMatcher(url) {
		return ErrMatcherNil
	}
	if fn == nil {
		return ErrHandlerNil
	}
	m.registry.add(route(method, url, fn))
	return nil
}

// Get registers fn for GET requests matching url.
func (m *Mock) Get(url Matcher, fn Handler) error { return m.Route(http.MethodGet, url, fn) }

// Post registers fn for POST requests matching url.
func (m *Mock) Post(url Matcher, fn Handler) error { return m.Route(http.MethodPost, url, fn) }

// Put registers fn for PUT requests matching url.
func (m *Mock) Put(url Matcher, fn Handler) error { return m.Route(http.MethodPut, url, fn) }

// Patch registers fn for PATCH requests matching url.
func (m *Mock) Patch(url Matcher, fn Handler) error { return m.Route(http.MethodPatch, url, fn) }

// Delete registers fn for DELETE requests matching url.
func (m *Mock) Delete(url Matcher, fn Handler) error { return m.Route(http.MethodDelete, url, fn) }

// AddGlobalEventListener registers fn for event on every request the Mock serves.
func (m *Mock) AddGlobalEventListener(event xhr.EventType, fn xhr.Listener) error {
	if fn == nil {
		return ErrListenerNil
	}
	m.registry.listen(event, fn)
	return nil
}

// Calls returns every request the Mock has seen since the last reset, in arrival order.
func (m *Mock) Calls() []*Request {
	return m.registry.recorded()
}

// Handlers returns the number of registered handlers.
func (m *Mock) Handlers() int {
	return m.registry.size()
}

func isNilMatcher(url Matcher) bool {
	if url == nil {
		return true
	}
	re, ok := url.(*regexp.Regexp)
	return ok && re == nil
}
