package xhrmock

import (
	"sync"

	"github.com/tarmac-project/xhrmock/xhr"
)

// Handler inspects a request and answers it through res, or declines it.
type Handler func(req *Request, res *Response) Result

type globalListener struct {
	event    xhr.EventType
	listener xhr.Listener
}

// registry is the ordered handler list plus the global listeners of a Mock.
// Readers get copies, so a concurrent clear never leaves them half-updated.
type registry struct {
	mu        sync.RWMutex
	handlers  []Handler
	listeners []globalListener
	calls     []*Request
}

func (r *registry) add(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

func (r *registry) listen(event xhr.EventType, fn xhr.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, globalListener{event: event, listener: fn})
}

func (r *registry) record(req *Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, req)
}

// clear drops handlers, listeners and recorded calls together.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = nil
	r.listeners = nil
	r.calls = nil
}

func (r *registry) snapshot() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Handler(nil), r.handlers...)
}

func (r *registry) listenersFor(event xhr.EventType) []xhr.Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []xhr.Listener
	for _, l := range r.listeners {
		if l.event == event {
			out = append(out, l.listener)
		}
	}
	return out
}

func (r *registry) recorded() []*Request {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Request(nil), r.calls...)
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
