package xhrmock

type resultKind uint8

const (
	resultNoMatch resultKind = iota
	resultPending
	resultResolved
)

// Result is what a Handler returns: NoMatch, Pending or Resolved.
// The zero Result is NoMatch.
type Result struct {
	kind resultKind
	res  *Response
}

// NoMatch declines the request so the next handler is tried.
func NoMatch() Result { return Result{kind: resultNoMatch} }

// Pending accepts the request without an answer yet. The handler must call
// Complete on its Response later.
func Pending() Result { return Result{kind: resultPending} }

// Resolved accepts the request with res. A nil res resolves with the
// Response the handler was given.
func Resolved(res *Response) Result { return Result{kind: resultResolved, res: res} }

// IsNoMatch reports whether the handler declined the request.
func (r Result) IsNoMatch() bool { return r.kind == resultNoMatch }

// IsPending reports whether the handler deferred its answer.
func (r Result) IsPending() bool { return r.kind == resultPending }

// IsResolved reports whether the handler answered the request.
func (r Result) IsResolved() bool { return r.kind == resultResolved }
