package xhr

// ReadyState is the lifecycle state of a Request.
type ReadyState int

const (
	// Unsent is the state of a Request that has not been opened.
	Unsent ReadyState = iota
	// Opened is the state after Open and until response headers arrive.
	Opened
	// HeadersReceived is the state once the response status and headers are known.
	HeadersReceived
	// Loading is the state while the response body is being delivered.
	Loading
	// Done is the terminal state, reached by load, error, timeout or abort.
	Done
)

func (s ReadyState) String() string {
	switch s {
	case Unsent:
		return "UNSENT"
	case Opened:
		return "OPENED"
	case HeadersReceived:
		return "HEADERS_RECEIVED"
	case Loading:
		return "LOADING"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// EventType names a lifecycle event.
type EventType string

// Lifecycle events, in the order they can be observed for one request.
const (
	ReadyStateChange EventType = "readystatechange"
	Progress         EventType = "progress"
	Load             EventType = "load"
	Error            EventType = "error"
	Timeout          EventType = "timeout"
	Abort            EventType = "abort"
	LoadEnd          EventType = "loadend"
)

// Event is passed to listeners.
type Event struct {
	// Type is the event name.
	Type EventType

	// Target is the request the event fired on.
	Target *Request

	// ReadyState is the state of Target when the event was queued.
	ReadyState ReadyState

	// Loaded and Total count response body bytes for progress and load events.
	Loaded int64
	Total  int64

	// LengthComputable reports whether Total is known.
	LengthComputable bool

	// Err is the failure cause for error, timeout and abort events.
	Err error
}

// Listener receives lifecycle events.
type Listener func(Event)
