package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tarmac-project/xhrmock"
	"github.com/tarmac-project/xhrmock/xhr"
)

const sample = `
[[route]]
method = "get"
url = "/a"
status = 200
body = "A"
[route.headers]
Content-Type = "text/plain"

[[route]]
method = "POST"
pattern = '^/a/\d+$'
status = 201
status_text = "Made"
body = "created"

[[route]]
method = "GET"
url = "/slow"
fail = "timeout"

[[route]]
method = "GET"
url = "/down"
fail = "network"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []Route{
		{Method: "get", URL: "/a", Status: 200, Body: "A", Headers: map[string]string{"Content-Type": "text/plain"}},
		{Method: "POST", Pattern: `^/a/\d+$`, Status: 201, StatusText: "Made", Body: "created"},
		{Method: "GET", URL: "/slow", Fail: FailTimeout},
		{Method: "GET", URL: "/down", Fail: FailNetwork},
	}
	if diff := cmp.Diff(want, f.Routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("expected sample to validate, got %v", err)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("[[route]\nmethod =")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tt := []struct {
		name  string
		route Route
		want  []error
	}{
		{name: "Missing method", route: Route{URL: "/"}, want: []error{ErrRouteMethod}},
		{name: "Forbidden method", route: Route{Method: "TRACE", URL: "/"}, want: []error{ErrRouteMethod, xhr.ErrInvalidMethod}},
		{name: "No target", route: Route{Method: "GET"}, want: []error{ErrRouteTarget}},
		{name: "Both targets", route: Route{Method: "GET", URL: "/", Pattern: "/"}, want: []error{ErrRouteTarget}},
		{name: "Bad pattern", route: Route{Method: "GET", Pattern: "("}, want: []error{ErrRoutePattern}},
		{name: "Unknown fail", route: Route{Method: "GET", URL: "/", Fail: "slow"}, want: []error{ErrRouteFail}},
		{name: "Status range", route: Route{Method: "GET", URL: "/", Status: 42}, want: []error{ErrRouteStatus}},
		{
			name:  "Several problems",
			route: Route{Status: 700, Fail: "never"},
			want:  []error{ErrRouteMethod, ErrRouteTarget, ErrRouteFail, ErrRouteStatus},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := &File{Routes: []Route{{Method: "GET", URL: "/ok"}, tc.route}}
			err := f.Validate()
			for _, want := range tc.want {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.toml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(f.Routes) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(f.Routes))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	m := xhrmock.New(xhrmock.Config{})
	if err := f.Register(m); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if m.Handlers() != 4 {
		t.Fatalf("expected 4 handlers, got %d", m.Handlers())
	}

	tt := []struct {
		name       string
		method     string
		url        string
		wantStatus int
		wantText   string
		wantBody   string
		wantHeader string
		wantErr    error
	}{
		{name: "Exact", method: "GET", url: "/a", wantStatus: 200, wantText: "OK", wantBody: "A", wantHeader: "text/plain"},
		{name: "Pattern", method: "POST", url: "/a/9", wantStatus: 201, wantText: "Made", wantBody: "created"},
		{name: "Timeout", method: "GET", url: "/slow", wantErr: xhr.ErrTimeout},
		{name: "Network", method: "GET", url: "/down", wantErr: xhr.ErrNetwork},
		{name: "Unmatched", method: "DELETE", url: "/a", wantErr: xhrmock.ErrNoHandler},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			r, err := xhr.New(xhr.Config{Transport: m})
			if err != nil {
				t.Fatalf("xhr.New returned error: %v", err)
			}
			_ = r.Open(tc.method, tc.url)
			if err := r.Send(nil); err != nil {
				t.Fatalf("Send returned error: %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err = r.Wait(ctx)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}

			if r.Status() != tc.wantStatus || r.StatusText() != tc.wantText {
				t.Errorf("unexpected status %d %q", r.Status(), r.StatusText())
			}
			if r.ResponseText() != tc.wantBody {
				t.Errorf("unexpected body %q", r.ResponseText())
			}
			if got := r.GetResponseHeader("Content-Type"); got != tc.wantHeader {
				t.Errorf("unexpected content type %q", got)
			}
		})
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	m := xhrmock.New(xhrmock.Config{})
	f := &File{Routes: []Route{{Method: "GET", URL: "/ok"}, {Method: "GET"}}}

	if err := f.Register(m); !errors.Is(err, ErrRouteTarget) {
		t.Fatalf("expected ErrRouteTarget, got %v", err)
	}
	if m.Handlers() != 0 {
		t.Fatalf("expected nothing registered, got %d handlers", m.Handlers())
	}
}
