/*
Package metrics provides a client for creating custom metrics through the
Tarmac host runtime, and a Dispatch recorder that reports xhrmock dispatch
decisions through it.

Metric emission methods follow Prometheus-style ergonomics: Inc, Dec and
Observe are best-effort and do not return errors.
*/
package metrics
