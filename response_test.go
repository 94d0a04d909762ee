package xhrmock_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/tarmac-project/xhrmock"
	"github.com/tarmac-project/xhrmock/xhr"
)

func TestHandlerBuiltResponses(t *testing.T) {
	tt := []struct {
		name       string
		build      func() *xhrmock.Response
		wantStatus int
		wantText   string
		wantHeader string
		wantBody   string
	}{
		{
			name:       "Zero value with headers",
			build:      func() *xhrmock.Response { return new(xhrmock.Response).Header("X", "y").Status(http.StatusCreated) },
			wantStatus: http.StatusCreated,
			wantText:   "Created",
			wantHeader: "y",
		},
		{
			name:       "Zero value defaults to 200",
			build:      func() *xhrmock.Response { return &xhrmock.Response{} },
			wantStatus: http.StatusOK,
			wantText:   "OK",
		},
		{
			name: "NewResponse with header set and JSON",
			build: func() *xhrmock.Response {
				return xhrmock.NewResponse().Headers(http.Header{"X": {"y"}}).JSON([]int{1})
			},
			wantStatus: http.StatusOK,
			wantText:   "OK",
			wantHeader: "y",
			wantBody:   "[1]",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m := xhrmock.New(xhrmock.Config{})
			_ = m.Handle(func(*xhrmock.Request, *xhrmock.Response) xhrmock.Result {
				return xhrmock.Resolved(tc.build())
			})

			r, err := xhr.New(xhr.Config{Transport: m})
			if err != nil {
				t.Fatalf("xhr.New returned error: %v", err)
			}
			_ = r.Open(http.MethodGet, "/")
			if err := r.Send(nil); err != nil {
				t.Fatalf("Send returned error: %v", err)
			}
			if err := r.Wait(context.Background()); err != nil {
				t.Fatalf("unexpected Wait error: %v", err)
			}

			if r.Status() != tc.wantStatus || r.StatusText() != tc.wantText {
				t.Errorf("unexpected status %d %q", r.Status(), r.StatusText())
			}
			if got := r.GetResponseHeader("X"); got != tc.wantHeader {
				t.Errorf("unexpected header %q", got)
			}
			if r.ResponseText() != tc.wantBody {
				t.Errorf("unexpected body %q", r.ResponseText())
			}
		})
	}
}
