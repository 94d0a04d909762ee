package xhr

import (
	"net/http"

	"github.com/tarmac-project/xhrmock/capability"
)

// CapabilityName is the name the request transport is installed under in Capabilities.
const CapabilityName = "xmlhttprequest"

// Capabilities holds the transport new Requests use. It starts out with a
// HostTransport that forwards requests through wapc.HostCall.
var Capabilities = defaultCapabilities()

func defaultCapabilities() *capability.Table[Transport] {
	t := capability.NewTable[Transport]()
	host, _ := NewHostTransport(HostConfig{})
	t.Register(CapabilityName, host)
	return t
}

// Message is the immutable snapshot of a request handed to a Transport.
type Message struct {
	// Method is the normalized HTTP method.
	Method string
	// URL is the URL exactly as passed to Open.
	URL string
	// Header holds the request headers set before Send.
	Header http.Header
	// Body is the request payload; nil for GET and HEAD.
	Body []byte
}

// OutcomeKind selects which terminal event an Outcome produces.
type OutcomeKind int

const (
	// OutcomeLoaded completes the request through the load event.
	OutcomeLoaded OutcomeKind = iota
	// OutcomeError completes the request through the error event.
	OutcomeError
	// OutcomeTimeout completes the request through the timeout event.
	OutcomeTimeout
)

// Outcome is the result a Transport reports for a Message.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	StatusText string
	Header     http.Header
	Body       []byte
	// Err is the failure cause for OutcomeError and OutcomeTimeout.
	Err error
}

// Transport carries a Message to whatever produces its response.
//
// RoundTrip must not block on the response. It reports the outcome by calling
// complete, either before returning or later from another goroutine. An error
// returned from RoundTrip means the request was never dispatched; Send returns
// it and the request fires no events.
type Transport interface {
	RoundTrip(msg *Message, complete func(Outcome)) error
}

// ListenerSource is implemented by transports that want to observe every
// request they serve. Its listeners run after the request's own listeners for
// the same event.
type ListenerSource interface {
	GlobalListeners(event EventType) []Listener
}
