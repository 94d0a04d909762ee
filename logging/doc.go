/*
Package logging offers a client for emitting log entries from Tarmac WebAssembly
functions to the host runtime.

The Client interface has one method per log level. Writer adapts a Client to
zerolog, so structured loggers such as the one given to xhrmock.Config can
ship their output to the host.
*/
package logging
