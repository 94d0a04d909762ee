package xhrmock

import "github.com/tarmac-project/xhrmock/xhr"

var std = New(Config{})

// Default returns the Mock behind the package-level functions.
func Default() *Mock { return std }

// Setup installs the default Mock. See Mock.Setup.
func Setup() *Mock { return std.Setup() }

// Teardown uninstalls the default Mock. See Mock.Teardown.
func Teardown() *Mock { return std.Teardown() }

// Reset clears the default Mock. See Mock.Reset.
func Reset() *Mock { return std.Reset() }

// Activate installs the default Mock for the duration of a test.
func Activate(t Cleaner) *Mock { return std.Activate(t) }

// Handle registers a handler on the default Mock.
func Handle(fn Handler) error { return std.Handle(fn) }

// Route registers a method and URL scoped handler on the default Mock.
func Route(method string, url Matcher, fn Handler) error { return std.Route(method, url, fn) }

// Get registers a GET handler on the default Mock.
func Get(url Matcher, fn Handler) error { return std.Get(url, fn) }

// Post registers a POST handler on the default Mock.
func Post(url Matcher, fn Handler) error { return std.Post(url, fn) }

// Put registers a PUT handler on the default Mock.
func Put(url Matcher, fn Handler) error { return std.Put(url, fn) }

// Patch registers a PATCH handler on the default Mock.
func Patch(url Matcher, fn Handler) error { return std.Patch(url, fn) }

// Delete registers a DELETE handler on the default Mock.
func Delete(url Matcher, fn Handler) error { return std.Delete(url, fn) }

// AddGlobalEventListener registers a global listener on the default Mock.
func AddGlobalEventListener(event xhr.EventType, fn xhr.Listener) error {
	return std.AddGlobalEventListener(event, fn)
}

// Calls returns the requests recorded by the default Mock.
func Calls() []*Request { return std.Calls() }
