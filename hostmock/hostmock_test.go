package hostmock

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var errHostDown = errors.New("host down")

func TestHostCall(t *testing.T) {
	tt := []struct {
		name    string
		cfg     Config
		call    Call
		want    string
		wantErr error
	}{
		{
			name: "Wildcards accept any routing",
			cfg:  Config{Response: func() []byte { return []byte("ok") }},
			call: Call{Namespace: "custom", Capability: "metrics", Function: "counter"},
			want: "ok",
		},
		{
			name:    "Namespace checked when set",
			cfg:     Config{ExpectedNamespace: "tarmac"},
			call:    Call{Namespace: "custom", Capability: "httpclient", Function: "call"},
			wantErr: ErrUnexpectedNamespace,
		},
		{
			name:    "Capability checked when set",
			cfg:     Config{ExpectedCapability: "httpclient"},
			call:    Call{Namespace: "tarmac", Capability: "logging", Function: "call"},
			wantErr: ErrUnexpectedCapability,
		},
		{
			name:    "Function checked when set",
			cfg:     Config{ExpectedFunction: "call"},
			call:    Call{Namespace: "tarmac", Capability: "httpclient", Function: "Info"},
			wantErr: ErrUnexpectedFunction,
		},
		{
			name:    "Fail with custom error skips routing checks",
			cfg:     Config{ExpectedNamespace: "tarmac", Fail: true, Error: errHostDown},
			call:    Call{Namespace: "custom"},
			wantErr: errHostDown,
		},
		{
			name:    "Fail without error",
			cfg:     Config{Fail: true},
			wantErr: ErrOperationFailed,
		},
		{
			name: "Payload validator rejects",
			cfg: Config{PayloadValidator: func(p []byte) error {
				if string(p) != "expected" {
					return errHostDown
				}
				return nil
			}},
			call:    Call{Payload: []byte("other")},
			wantErr: errHostDown,
		},
		{
			name: "Respond wins over Response",
			cfg: Config{
				Respond: func(fn string, payload []byte) ([]byte, error) {
					return append([]byte(fn+":"), payload...), nil
				},
				Response: func() []byte { return []byte("ignored") },
			},
			call: Call{Function: "call", Payload: []byte("ping")},
			want: "call:ping",
		},
		{
			name: "Respond error passes through",
			cfg: Config{Respond: func(string, []byte) ([]byte, error) {
				return nil, errHostDown
			}},
			wantErr: errHostDown,
		},
		{
			name: "No reply configured",
			cfg:  Config{},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			got, err := m.HostCall(tc.call.Namespace, tc.call.Capability, tc.call.Function, tc.call.Payload)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got %v, want %v", err, tc.wantErr)
			}
			if string(got) != tc.want {
				t.Fatalf("unexpected reply: got %q, want %q", got, tc.want)
			}

			// Every call is recorded, including rejected ones.
			if n := len(m.Calls()); n != 1 {
				t.Fatalf("expected 1 recorded call, got %d", n)
			}
		})
	}
}

func TestHostCallErrorDetail(t *testing.T) {
	m, _ := New(Config{ExpectedCapability: "httpclient"})

	_, err := m.HostCall("tarmac", "kvstore", "get", nil)
	if !errors.Is(err, ErrUnexpectedCapability) {
		t.Fatalf("expected ErrUnexpectedCapability, got %v", err)
	}
	if want := "unexpected capability: expected capability httpclient, got kvstore"; err.Error() != want {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCallsRecorded(t *testing.T) {
	m, _ := New(Config{Fail: true})

	payload := []byte("first")
	_, _ = m.HostCall("tarmac", "httpclient", "call", payload)
	_, _ = m.HostCall("tarmac", "logging", "Info", []byte("second"))

	// Mutating the caller's buffer must not change the recording.
	payload[0] = 'F'

	want := []Call{
		{Namespace: "tarmac", Capability: "httpclient", Function: "call", Payload: []byte("first")},
		{Namespace: "tarmac", Capability: "logging", Function: "Info", Payload: []byte("second")},
	}
	if diff := cmp.Diff(want, m.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	// Calls returns a copy.
	m.Calls()[0].Function = "changed"
	if m.Calls()[0].Function != "call" {
		t.Error("expected Calls to return a copy")
	}
}
