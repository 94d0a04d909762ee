package xhr

import "errors"

var (
	// ErrInvalidState is returned when a method is called in a ready state that does not allow it.
	ErrInvalidState = errors.New("request is in an invalid state")

	// ErrInvalidMethod indicates an empty, malformed or forbidden HTTP method.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrInvalidURL indicates a malformed URL.
	ErrInvalidURL = errors.New("invalid URL provided")

	// ErrInvalidHeader indicates a malformed request header name.
	ErrInvalidHeader = errors.New("invalid header name")

	// ErrReadBody wraps failures while reading a request body stream.
	ErrReadBody = errors.New("failed to read request body")

	// ErrNilTransport is returned when no transport is available for a new Request.
	ErrNilTransport = errors.New("transport is nil")

	// ErrNilListener is returned when AddEventListener receives a nil listener.
	ErrNilListener = errors.New("listener is nil")

	// ErrMarshalRequest wraps failures while encoding the host request payload.
	ErrMarshalRequest = errors.New("failed to create request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")

	// ErrNetwork is the cause reported by error events.
	ErrNetwork = errors.New("network error")

	// ErrTimeout is the cause reported by timeout events.
	ErrTimeout = errors.New("request timed out")

	// ErrAborted is the cause reported once a request has been aborted.
	ErrAborted = errors.New("request aborted")
)
