package xhrmock

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"

	"github.com/tarmac-project/xhrmock/xhr"
)

// Request is the read-only view of an intercepted request given to handlers.
type Request struct {
	id     string
	method string
	url    string
	header http.Header
	body   []byte
}

func newRequest(msg *xhr.Message) *Request {
	return &Request{
		id:     uuid.New().String(),
		method: msg.Method,
		url:    msg.URL,
		header: msg.Header.Clone(),
		body:   bytes.Clone(msg.Body),
	}
}

// ID uniquely identifies the request within the process.
func (r *Request) ID() string { return r.id }

// Method returns the normalized HTTP method.
func (r *Request) Method() string { return r.method }

// URL returns the URL as passed to Open.
func (r *Request) URL() string { return r.url }

// Header returns the named request header. Lookup is case-insensitive.
func (r *Request) Header(name string) string { return r.header.Get(name) }

// Headers returns a copy of all request headers.
func (r *Request) Headers() http.Header { return r.header.Clone() }

// Body returns a copy of the request body.
func (r *Request) Body() []byte { return bytes.Clone(r.body) }

// BodyString returns the request body as a string.
func (r *Request) BodyString() string { return string(r.body) }
