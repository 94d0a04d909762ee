package xhr

import (
	"errors"
	"fmt"
	"net/http"

	proto "github.com/tarmac-project/protobuf-go/sdk/http"
	wapc "github.com/wapc/wapc-guest-tinygo"

	"github.com/tarmac-project/xhrmock/capability"
)

const (
	hostCapability = "httpclient"
	hostFunction   = "call"

	hostStatusOK       = int32(200)
	hostStatusPartial  = int32(206)
	hostStatusBadInput = int32(400)
	hostStatusMissing  = int32(404)
	hostStatusError    = int32(500)
)

// HostConfig configures the host transport.
//
// SDKConfig supplies the namespace used when making waPC host calls. If the
// Namespace is empty, it defaults to capability.DefaultNamespace.
// InsecureSkipVerify controls TLS verification behavior on the host side when
// supported by the runtime. HostCall allows tests to inject a custom host
// function; when nil, the transport uses wapc.HostCall.
type HostConfig struct {
	// SDKConfig provides the runtime namespace for host calls.
	SDKConfig capability.RuntimeConfig
	// InsecureSkipVerify disables TLS verification when supported.
	InsecureSkipVerify bool
	// HostCall overrides the waPC host function used for requests.
	HostCall capability.HostCall
}

// HostTransport sends requests to the host's httpclient capability.
type HostTransport struct {
	cfg      HostConfig
	hostCall capability.HostCall
}

// Ensure HostTransport always satisfies the Transport interface at compile time.
var _ Transport = (*HostTransport)(nil)

// NewHostTransport creates a host transport with the provided configuration.
func NewHostTransport(config HostConfig) (*HostTransport, error) {
	ht := &HostTransport{cfg: config}
	ht.cfg.SDKConfig = config.SDKConfig.WithDefaults()

	ht.hostCall = wapc.HostCall
	if config.HostCall != nil {
		ht.hostCall = config.HostCall
	}

	return ht, nil
}

// RoundTrip encodes msg and performs the host call on its own goroutine.
func (t *HostTransport) RoundTrip(msg *Message, complete func(Outcome)) error {
	req := &proto.HTTPClient{
		Method:   msg.Method,
		Url:      msg.URL,
		Insecure: t.cfg.InsecureSkipVerify,
		Body:     msg.Body,
		Headers:  make(map[string]*proto.Header, len(msg.Header)),
	}
	for key, values := range msg.Header {
		req.Headers[key] = &proto.Header{Values: values}
	}

	b, err := req.MarshalVT()
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	go func() { complete(t.call(b)) }()
	return nil
}

// call performs the host call and turns the host response into an Outcome.
// Host and decoding failures become error outcomes.
func (t *HostTransport) call(payload []byte) Outcome {
	resp, err := t.hostCall(t.cfg.SDKConfig.Namespace, hostCapability, hostFunction, payload)
	if err != nil {
		return failed(errors.Join(capability.ErrHostCall, err))
	}

	var r proto.HTTPClientResponse
	if err := r.UnmarshalVT(resp); err != nil {
		return failed(errors.Join(ErrUnmarshalResponse, err))
	}

	status := r.GetStatus()
	if status == nil {
		return failed(capability.ErrHostResponseInvalid)
	}

	switch code := status.GetCode(); code {
	case hostStatusOK, hostStatusPartial:
		// success path continues
	case hostStatusBadInput, hostStatusMissing, hostStatusError:
		detail := fmt.Sprintf("host status %d", code)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		return failed(errors.Join(capability.ErrHostError, errors.New(detail)))
	default:
		return failed(errors.Join(
			capability.ErrHostResponseInvalid,
			fmt.Errorf("unexpected host status code %d", code),
		))
	}

	httpCode := int(r.GetCode())
	out := Outcome{
		Kind:       OutcomeLoaded,
		StatusCode: httpCode,
		StatusText: http.StatusText(httpCode),
		Header:     make(http.Header),
		Body:       r.GetBody(),
	}
	for name, header := range r.GetHeaders() {
		out.Header[http.CanonicalHeaderKey(name)] = header.GetValues()
	}
	return out
}

func failed(err error) Outcome {
	return Outcome{Kind: OutcomeError, Err: errors.Join(ErrNetwork, err)}
}
