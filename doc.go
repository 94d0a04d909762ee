/*
Package xhrmock intercepts requests made with the xhr package and answers
them from handler functions instead of the host network.

Setup installs a Mock as the transport new xhr.Requests resolve, Teardown puts
the previous transport back. Both reset the Mock. Handlers are tried in
registration order and the first one that does not return NoMatch decides the
outcome:

	m := xhrmock.New(xhrmock.Config{}).Activate(t)

	_ = m.Get(xhrmock.Exact("/a"), func(req *xhrmock.Request, res *xhrmock.Response) xhrmock.Result {
		return xhrmock.Resolved(res.Status(200).Body("A"))
	})

	_ = m.Post(regexp.MustCompile(`^/a/\d+$`), func(req *xhrmock.Request, res *xhrmock.Response) xhrmock.Result {
		return xhrmock.Resolved(res.Status(201).Body(strings.Split(req.URL(), "/")[2]))
	})

	r, _ := xhr.New(xhr.Config{})
	_ = r.Open("GET", "/a")
	_ = r.Send(nil)
	_ = r.Wait(ctx)

A handler that needs to answer later returns Pending and calls
Response.Complete when it is ready. Requests no handler accepts fail through
the error event with ErrNoHandler. A panicking handler is reported by
xhr.Request.Send as ErrHandlerFailed.

Config.Logger takes a zerolog logger; inside a Tarmac function,
logging.NewWriter ships it to the host. Config.Metrics takes a recorder such
as metrics.Dispatch.

The package-level functions operate on a default Mock.
*/
package xhrmock
