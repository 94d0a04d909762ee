/*
Package hostmock provides a pretend waPC host.

It validates the routing of host calls (namespace, capability, function),
runs an optional payload validator, and replies with scripted bytes or a
scripted failure. Every call is recorded so tests can assert on what was sent.

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedCapability: "httpclient",
	  ExpectedFunction:   "call",
	  Respond: func(fn string, payload []byte) ([]byte, error) {
	    // decode payload, build a reply
	    return reply, nil
	  },
	})

	t, _ := xhr.NewHostTransport(xhr.HostConfig{HostCall: m.HostCall})

Behavior

  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - Expected* fields are wildcards when empty.
  - Respond wins over Response; with neither set HostCall returns nil bytes.
*/
package hostmock
