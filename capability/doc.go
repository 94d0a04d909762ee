/*
Package capability holds the runtime configuration shared by capability
clients and the override table used to swap one capability implementation for
another.

RuntimeConfig carries the waPC namespace; DefaultNamespace is used when a
namespace is not explicitly provided. Table maps a capability name to the
implementation currently installed for it. Override installs a replacement and
hands back a restore function that puts the previous value back, which is how
test doubles take over a capability for the length of a test.
*/
package capability
