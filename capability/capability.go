package capability

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "tarmac"

// HostCall is the waPC host function signature used by capability clients.
type HostCall func(namespace, capability, function string, payload []byte) ([]byte, error)

// RuntimeConfig carries configuration that is used during creation of capability clients.
type RuntimeConfig struct {
	// Namespace is the function namespace used to scope host interactions.
	Namespace string
}

// WithDefaults returns a copy of the config with empty fields filled in.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}
