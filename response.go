package xhrmock

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/tarmac-project/xhrmock/xhr"
)

type terminal uint8

const (
	terminalNormal terminal = iota
	terminalError
	terminalTimeout
	terminalNetwork
)

// Response accumulates the synthetic response for one request. Setters
// return the Response so calls can be chained. It is safe to finish a
// Response from another goroutine after a handler returned Pending.
//
// The zero Response is ready to use and answers 200 with no headers or body.
type Response struct {
	mu sync.Mutex

	status     int
	statusText string
	header     http.Header
	body       []byte
	terminal   terminal
	err        error

	// commit is set once dispatch has accepted a pending answer.
	commit func(xhr.Outcome)
	// early records a Complete call made before dispatch armed the Response.
	early     bool
	committed bool
}

// NewResponse returns an empty Response, for handlers that resolve with a
// Response other than the one they were given.
func NewResponse() *Response {
	return &Response{}
}

func (r *Response) headerLocked() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

// Status sets the status code. Zero means 200.
func (r *Response) Status(code int) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = code
	return r
}

// StatusText overrides the status text derived from the status code.
func (r *Response) StatusText(text string) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusText = text
	return r
}

// Header adds a response header value.
func (r *Response) Header(name, value string) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headerLocked().Add(name, value)
	return r
}

// Headers adds every value in h.
func (r *Response) Headers(h http.Header) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	header := r.headerLocked()
	for name, values := range h {
		for _, v := range values {
			header.Add(name, v)
		}
	}
	return r
}

// Body sets the response body.
func (r *Response) Body(body string) *Response {
	return r.BodyBytes([]byte(body))
}

// BodyBytes sets the response body from a copy of b.
func (r *Response) BodyBytes(b []byte) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.body = bytes.Clone(b)
	return r
}

// JSON encodes v as the body and sets the Content-Type header. An encoding
// failure turns the Response into an explicit error.
func (r *Response) JSON(v any) *Response {
	b, err := json.Marshal(v)
	if err != nil {
		return r.Error(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.body = b
	r.headerLocked().Set("Content-Type", "application/json")
	return r
}

// Timeout makes the request complete through the timeout event.
func (r *Response) Timeout() *Response {
	return r.setTerminal(terminalTimeout, nil)
}

// NetworkError makes the request complete through the error event.
func (r *Response) NetworkError() *Response {
	return r.setTerminal(terminalNetwork, nil)
}

// Error makes the request complete through the error event with err as
// the reported cause.
func (r *Response) Error(err error) *Response {
	return r.setTerminal(terminalError, err)
}

func (r *Response) setTerminal(t terminal, err error) *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminal = t
	r.err = err
	return r
}

// Complete delivers a pending Response to its request. Only the first call
// has an effect; it is a no-op for Responses that were never pending.
func (r *Response) Complete() {
	r.mu.Lock()
	if r.committed {
		r.mu.Unlock()
		return
	}
	if r.commit == nil {
		r.early = true
		r.mu.Unlock()
		return
	}
	r.committed = true
	commit := r.commit
	o := r.outcomeLocked()
	r.mu.Unlock()

	commit(o)
}

// arm hands a pending Response the function that completes its request.
func (r *Response) arm(commit func(xhr.Outcome)) {
	r.mu.Lock()
	if r.committed {
		r.mu.Unlock()
		return
	}
	if !r.early {
		r.commit = commit
		r.mu.Unlock()
		return
	}
	r.committed = true
	o := r.outcomeLocked()
	r.mu.Unlock()

	commit(o)
}

// resolve delivers the Response immediately.
func (r *Response) resolve(commit func(xhr.Outcome)) {
	r.mu.Lock()
	r.committed = true
	o := r.outcomeLocked()
	r.mu.Unlock()

	commit(o)
}

func (r *Response) outcomeLocked() xhr.Outcome {
	switch r.terminal {
	case terminalTimeout:
		return xhr.Outcome{Kind: xhr.OutcomeTimeout, Err: xhr.ErrTimeout}
	case terminalNetwork:
		return xhr.Outcome{Kind: xhr.OutcomeError, Err: xhr.ErrNetwork}
	case terminalError:
		cause := xhr.ErrNetwork
		if r.err != nil {
			cause = errors.Join(xhr.ErrNetwork, r.err)
		}
		return xhr.Outcome{Kind: xhr.OutcomeError, Err: cause}
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	text := r.statusText
	if text == "" {
		text = http.StatusText(status)
	}
	return xhr.Outcome{
		Kind:       xhr.OutcomeLoaded,
		StatusCode: status,
		StatusText: text,
		Header:     r.header.Clone(),
		Body:       bytes.Clone(r.body),
	}
}
