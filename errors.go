package xhrmock

import "errors"

var (
	// ErrNoHandler is the cause of the error event for a request no handler accepted.
	ErrNoHandler = errors.New("no handler matched the request")

	// ErrHandlerFailed is returned from Send when a handler panics.
	ErrHandlerFailed = errors.New("handler failed")

	// ErrHandlerNil is returned when a handler is registered without a function.
	ErrHandlerNil = errors.New("handler cannot be nil")

	// ErrMatcherNil is returned when a route is registered without a URL matcher.
	ErrMatcherNil = errors.New("url matcher cannot be nil")

	// ErrMethodEmpty is returned when a route is registered without a method.
	ErrMethodEmpty = errors.New("method cannot be empty")

	// ErrListenerNil is returned when a global listener is registered without a function.
	ErrListenerNil = errors.New("listener cannot be nil")
)
