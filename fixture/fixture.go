/*
Package fixture loads canned routes from TOML files and registers them on an
xhrmock.Mock.

A fixture file is a list of route tables:

	[[route]]
	method = "GET"
	url = "/a"
	status = 200
	body = "A"
	[route.headers]
	Content-Type = "text/plain"

	[[route]]
	method = "POST"
	pattern = '^/a/\d+$'
	fail = "timeout"

Each route names exactly one of url (exact match) or pattern (regular
expression). Routes are registered in file order, so the first matching
route answers.
*/
package fixture

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tarmac-project/xhrmock"
	"github.com/tarmac-project/xhrmock/xhr"
)

// Failure modes a route can select instead of a response.
const (
	FailTimeout = "timeout"
	FailNetwork = "network"
)

var (
	// ErrRouteMethod is returned when a route has no method or an invalid one.
	ErrRouteMethod = errors.New("route method is required")

	// ErrRouteTarget is returned when a route does not set exactly one of url or pattern.
	ErrRouteTarget = errors.New("route must set exactly one of url or pattern")

	// ErrRoutePattern is returned when a route pattern does not compile.
	ErrRoutePattern = errors.New("route pattern is invalid")

	// ErrRouteFail is returned for an unknown fail mode.
	ErrRouteFail = errors.New("route fail must be timeout or network")

	// ErrRouteStatus is returned for a status outside 100-599.
	ErrRouteStatus = errors.New("route status is out of range")
)

// Route is one canned answer.
type Route struct {
	Method     string            `toml:"method"`
	URL        string            `toml:"url"`
	Pattern    string            `toml:"pattern"`
	Status     int               `toml:"status"`
	StatusText string            `toml:"status_text"`
	Headers    map[string]string `toml:"headers"`
	Body       string            `toml:"body"`
	Fail       string            `toml:"fail"`
}

// File is a parsed fixture file.
type File struct {
	Routes []Route `toml:"route"`
}

// Load reads and parses the fixture file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a fixture document. It does not validate it.
func Parse(b []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("could not parse fixture: %w", err)
	}
	return &f, nil
}

// Validate checks every route and reports all problems found.
func (f *File) Validate() error {
	var errs []error
	for i, r := range f.Routes {
		if err := r.validate(); err != nil {
			errs = append(errs, fmt.Errorf("route %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Register validates f and adds its routes to m in file order.
func (f *File) Register(m *xhrmock.Mock) error {
	if err := f.Validate(); err != nil {
		return err
	}

	for i, r := range f.Routes {
		if err := m.Route(strings.TrimSpace(r.Method), r.matcher(), r.handler()); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
	}
	return nil
}

func (r Route) validate() error {
	var errs []error
	if strings.TrimSpace(r.Method) == "" {
		errs = append(errs, ErrRouteMethod)
	} else if _, err := xhr.NormalizeMethod(strings.TrimSpace(r.Method)); err != nil {
		errs = append(errs, errors.Join(ErrRouteMethod, err))
	}
	if (r.URL == "") == (r.Pattern == "") {
		errs = append(errs, ErrRouteTarget)
	}
	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			errs = append(errs, errors.Join(ErrRoutePattern, err))
		}
	}
	switch r.Fail {
	case "", FailTimeout, FailNetwork:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrRouteFail, r.Fail))
	}
	if r.Status != 0 && (r.Status < 100 || r.Status > 599) {
		errs = append(errs, fmt.Errorf("%w: %d", ErrRouteStatus, r.Status))
	}
	return errors.Join(errs...)
}

func (r Route) matcher() xhrmock.Matcher {
	if r.Pattern != "" {
		return regexp.MustCompile(r.Pattern)
	}
	return xhrmock.Exact(r.URL)
}

func (r Route) handler() xhrmock.Handler {
	return func(_ *xhrmock.Request, res *xhrmock.Response) xhrmock.Result {
		switch r.Fail {
		case FailTimeout:
			return xhrmock.Resolved(res.Timeout())
		case FailNetwork:
			return xhrmock.Resolved(res.NetworkError())
		}

		if r.Status != 0 {
			res.Status(r.Status)
		}
		if r.StatusText != "" {
			res.StatusText(r.StatusText)
		}
		for name, value := range r.Headers {
			res.Header(name, value)
		}
		return xhrmock.Resolved(res.Body(r.Body))
	}
}
