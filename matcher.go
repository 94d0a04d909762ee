package xhrmock

// Matcher tests a request URL. *regexp.Regexp satisfies it directly.
type Matcher interface {
	MatchString(url string) bool
}

// Exact matches a URL by string equality.
type Exact string

// MatchString reports whether url equals e.
func (e Exact) MatchString(url string) bool { return string(e) == url }

// route wraps fn so it only sees requests with the given method whose URL
// satisfies url. Everything else is declined.
func route(method string, url Matcher, fn Handler) Handler {
	return func(req *Request, res *Response) Result {
		if req.Method() != method || !url.MatchString(req.URL()) {
			return NoMatch()
		}
		return fn(req, res)
	}
}
