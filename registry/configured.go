package registry

// Configured pairs a store with its resolved configuration.
//
// Values are only produced by Lookup and Require, so a store is never paired
// with a configuration the registry does not hold for it.
type Configured[S any, C Config[C]] struct {
	store  S
	config C
}

// Store returns the store handle.
func (c Configured[S, C]) Store() S { return c.store }

// Config returns the explicit configuration registered for the store, or the
// default configuration for C when none was registered.
func (c Configured[S, C]) Config() C { return c.config }
