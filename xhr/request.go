package xhr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Config controls construction of a Request.
type Config struct {
	// Transport overrides the transport resolved from Capabilities.
	Transport Transport
}

// Request is an XMLHttpRequest-shaped HTTP request.
//
// A Request may be reused: once it reaches Done it can be opened again.
// Listeners persist across reuse.
type Request struct {
	transport Transport

	mu sync.Mutex

	// gen increases on every Open so callbacks from an earlier send are ignored.
	gen     int
	state   ReadyState
	method  string
	url     string
	header  http.Header
	timeout time.Duration
	timer   *time.Timer

	// sent is set between a successful Send and the next Open.
	sent bool
	// completed is set once an outcome was accepted or the request was aborted.
	completed bool
	aborted   bool

	status     int
	statusText string
	respHeader http.Header
	body       []byte
	err        error

	listeners map[EventType][]Listener

	queue   []func()
	running bool

	done       chan struct{}
	doneClosed bool
}

// New creates a Request bound to the transport currently installed in
// Capabilities, unless Config.Transport is set.
func New(config Config) (*Request, error) {
	t := config.Transport
	if t == nil {
		var err error
		t, err = Capabilities.Lookup(CapabilityName)
		if err != nil {
			return nil, errors.Join(ErrNilTransport, err)
		}
	}
	if t == nil {
		return nil, ErrNilTransport
	}

	return &Request{
		transport: t,
		header:    make(http.Header),
		listeners: make(map[EventType][]Listener),
		done:      make(chan struct{}),
	}, nil
}

// AddEventListener registers fn for event. Listeners for the same event run
// in registration order.
func (r *Request) AddEventListener(event EventType, fn Listener) error {
	if fn == nil {
		return ErrNilListener
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[event] = append(r.listeners[event], fn)
	return nil
}

// Open initializes the request. It fails with ErrInvalidState while a
// previous send is still in flight.
func (r *Request) Open(method, rawURL string) error {
	m, err := NormalizeMethod(method)
	if err != nil {
		return err
	}

	if rawURL == "" {
		return ErrInvalidURL
	}
	if _, err := url.Parse(rawURL); err != nil {
		return errors.Join(ErrInvalidURL, err)
	}

	r.mu.Lock()
	if r.sent && r.state != Done {
		r.mu.Unlock()
		return fmt.Errorf("%w: open while %s", ErrInvalidState, r.state)
	}

	r.gen++
	r.stopTimerLocked()
	r.state = Opened
	r.method = m
	r.url = rawURL
	r.header = make(http.Header)
	r.sent = false
	r.completed = false
	r.aborted = false
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.body = nil
	r.err = nil
	if r.doneClosed {
		r.done = make(chan struct{})
		r.doneClosed = false
	}
	gen := r.gen
	r.mu.Unlock()

	r.post(func() {
		r.mu.Lock()
		live := gen == r.gen
		r.mu.Unlock()
		if live {
			r.emit(Event{Type: ReadyStateChange, ReadyState: Opened})
		}
	})
	return nil
}

// SetRequestHeader adds a request header. Repeated names are combined with ", ".
func (r *Request) SetRequestHeader(name, value string) error {
	if !validToken(name) {
		return fmt.Errorf("%w: %q", ErrInvalidHeader, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Opened || r.sent {
		return fmt.Errorf("%w: set header while %s", ErrInvalidState, r.state)
	}

	key := http.CanonicalHeaderKey(name)
	if prev := r.header.Get(key); prev != "" {
		r.header.Set(key, prev+", "+value)
		return nil
	}
	r.header.Set(key, value)
	return nil
}

// SetTimeout sets how long the next Send may wait for an outcome before the
// request completes through the timeout event. Zero disables the timer.
func (r *Request) SetTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeout = d
}

// Send dispatches the request. Body is ignored for GET and HEAD.
//
// Send returns once the transport has accepted the request. Errors returned
// here are misuse or dispatch failures; network outcomes are only reported
// through events.
func (r *Request) Send(body io.Reader) error {
	r.mu.Lock()
	if r.state != Opened || r.sent {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w: send while %s", ErrInvalidState, state)
	}
	method := r.method
	r.mu.Unlock()

	var payload []byte
	if body != nil && method != http.MethodGet && method != http.MethodHead {
		b, err := io.ReadAll(body)
		if err != nil {
			return errors.Join(ErrReadBody, err)
		}
		payload = b
	}

	r.mu.Lock()
	if r.state != Opened || r.sent {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w: send while %s", ErrInvalidState, state)
	}
	r.sent = true
	gen := r.gen
	msg := &Message{
		Method: r.method,
		URL:    r.url,
		Header: r.header.Clone(),
		Body:   payload,
	}
	if r.timeout > 0 {
		r.timer = time.AfterFunc(r.timeout, func() {
			r.complete(gen, Outcome{Kind: OutcomeTimeout, Err: ErrTimeout})
		})
	}
	r.mu.Unlock()

	err := r.transport.RoundTrip(msg, func(o Outcome) { r.complete(gen, o) })
	if err != nil {
		r.mu.Lock()
		if r.gen == gen {
			// Drop anything the transport completed before failing.
			r.gen++
			r.sent = false
			r.completed = false
			r.stopTimerLocked()
		}
		r.mu.Unlock()
		return err
	}
	return nil
}

// Abort cancels an in-flight request. The request moves to Done at once and
// fires readystatechange, abort and loadend; nothing else fires for it
// afterwards. Abort on a request that is not in flight does nothing.
func (r *Request) Abort() {
	r.mu.Lock()
	if !r.sent || r.aborted || r.state == Done {
		r.mu.Unlock()
		return
	}

	r.aborted = true
	r.completed = true
	r.stopTimerLocked()
	r.state = Done
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.body = nil
	r.err = ErrAborted
	gen := r.gen
	r.mu.Unlock()

	r.post(func() {
		r.emit(Event{Type: ReadyStateChange, ReadyState: Done})
		r.emit(Event{Type: Abort, ReadyState: Done, Err: ErrAborted})
		r.emit(Event{Type: LoadEnd, ReadyState: Done, Err: ErrAborted})
		r.finish(gen)
	})
}

// Wait blocks until the current send reaches loadend or ctx is done. It
// returns the failure cause, which is nil for a loaded response.
func (r *Request) Wait(ctx context.Context) error {
	r.mu.Lock()
	if !r.sent {
		r.mu.Unlock()
		return fmt.Errorf("%w: wait before send", ErrInvalidState)
	}
	done := r.done
	r.mu.Unlock()

	select {
	case <-done:
		return r.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReadyState returns the current lifecycle state.
func (r *Request) ReadyState() ReadyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Status returns the response status code, or 0 before headers arrive and after failures.
func (r *Request) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// StatusText returns the response status text.
func (r *Request) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusText
}

// ResponseText returns the response body as a string.
func (r *Request) ResponseText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.body)
}

// Response returns a copy of the response body.
func (r *Request) Response() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return bytes.Clone(r.body)
}

// GetResponseHeader returns the named response header, values joined with ", ".
func (r *Request) GetResponseHeader(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.respHeader.Values(name), ", ")
}

// GetAllResponseHeaders returns every response header as lower-cased
// "name: value" lines terminated by CRLF, sorted by name.
func (r *Request) GetAllResponseHeaders() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.respHeader))
	for name := range r.respHeader {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(strings.ToLower(name))
		sb.WriteString(": ")
		sb.WriteString(strings.Join(r.respHeader[name], ", "))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// Err returns the failure cause of the last send, if any.
func (r *Request) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// complete accepts the first outcome for send generation gen.
func (r *Request) complete(gen int, o Outcome) {
	r.mu.Lock()
	if gen != r.gen || !r.sent || r.completed {
		r.mu.Unlock()
		return
	}
	r.completed = true
	r.stopTimerLocked()
	r.mu.Unlock()

	r.post(func() { r.deliver(gen, o) })
}

// deliver walks the event sequence for o, stopping as soon as the request
// is aborted or reopened.
func (r *Request) deliver(gen int, o Outcome) {
	if o.Kind != OutcomeLoaded {
		ev := Error
		if o.Kind == OutcomeTimeout {
			ev = Timeout
		}
		cause := o.Err
		if cause == nil {
			cause = ErrNetwork
			if ev == Timeout {
				cause = ErrTimeout
			}
		}

		if !r.advance(gen, func() {
			r.state = Done
			r.err = cause
		}) {
			return
		}
		r.emit(Event{Type: ReadyStateChange, ReadyState: Done})
		if !r.current(gen) {
			return
		}
		r.emit(Event{Type: ev, ReadyState: Done, Err: cause})
		if !r.current(gen) {
			return
		}
		r.emit(Event{Type: LoadEnd, ReadyState: Done, Err: cause})
		r.finish(gen)
		return
	}

	text := o.StatusText
	if text == "" {
		text = http.StatusText(o.StatusCode)
	}
	header := o.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	total := int64(len(o.Body))

	if !r.advance(gen, func() {
		r.state = HeadersReceived
		r.status = o.StatusCode
		r.statusText = text
		r.respHeader = header
	}) {
		return
	}
	r.emit(Event{Type: ReadyStateChange, ReadyState: HeadersReceived})

	if !r.advance(gen, func() {
		r.state = Loading
		r.body = bytes.Clone(o.Body)
	}) {
		return
	}
	r.emit(Event{Type: ReadyStateChange, ReadyState: Loading})

	if !r.advance(gen, func() { r.state = Done }) {
		return
	}
	r.emit(Event{Type: ReadyStateChange, ReadyState: Done})

	for _, ev := range []EventType{Progress, Load, LoadEnd} {
		if !r.current(gen) {
			return
		}
		r.emit(Event{Type: ev, ReadyState: Done, Loaded: total, Total: total, LengthComputable: true})
	}
	r.finish(gen)
}

// advance applies fn under the lock if gen is still the live, unaborted send.
func (r *Request) advance(gen int, fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.aborted {
		return false
	}
	fn()
	return true
}

func (r *Request) current(gen int) bool {
	return r.advance(gen, func() {})
}

// finish releases Wait callers for gen.
func (r *Request) finish(gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.doneClosed {
		return
	}
	r.doneClosed = true
	close(r.done)
}

// emit runs the request's listeners for e, then the transport's global ones.
func (r *Request) emit(e Event) {
	e.Target = r

	r.mu.Lock()
	local := append([]Listener(nil), r.listeners[e.Type]...)
	r.mu.Unlock()

	for _, fn := range local {
		fn(e)
	}

	if src, ok := r.transport.(ListenerSource); ok {
		for _, fn := range src.GlobalListeners(e.Type) {
			fn(e)
		}
	}
}

// post queues fn behind every earlier callback for this request. Callbacks
// run one at a time on a goroutine owned by the queue, never on the caller's.
func (r *Request) post(fn func()) {
	r.mu.Lock()
	r.queue = append(r.queue, fn)
	start := !r.running
	r.running = true
	r.mu.Unlock()

	if start {
		go r.drain()
	}
}

func (r *Request) drain() {
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.running = false
			r.mu.Unlock()
			return
		}
		fn := r.queue[0]
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.mu.Unlock()

		fn()
	}
}

func (r *Request) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
