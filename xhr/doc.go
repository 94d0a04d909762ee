/*
Package xhr provides an XMLHttpRequest-shaped request object for Tarmac
WebAssembly functions.

A Request is opened with a method and URL, optionally given request headers,
and sent with a body. Send never blocks on the network and never fires an
event on the caller's goroutine: the outcome is delivered through event
listeners (readystatechange, progress, load, error, timeout, abort, loadend)
or observed with Wait.

Requests do not talk to the network themselves. They hand a Message to the
Transport installed under CapabilityName in Capabilities when the Request was
created. By default that is a HostTransport, which forwards the request to the
host's httpclient capability over waPC. Test doubles replace it with
Capabilities.Override.
*/
package xhr
