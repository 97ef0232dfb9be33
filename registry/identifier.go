package registry

// Config is implemented by per-store configuration types. Default returns the
// configuration used when no explicit entry is registered for an identifier.
type Config[C any] interface {
	Default() C
}

// Key is the name-only view of an identifier.
type Key interface {
	Name() string
}

// Identifier names a store of type S configured by C.
//
// Only the name is stored; S and C exist to fix the result type of Lookup and
// Require at compile time. Two identifiers with the same name address the same
// registry entries regardless of their type parameters.
type Identifier[S any, C Config[C]] struct {
	name string
}

// NewIdentifier returns the identifier for name.
func NewIdentifier[S any, C Config[C]](name string) Identifier[S, C] {
	return Identifier[S, C]{name: name}
}

// Name returns the registry key.
func (id Identifier[S, C]) Name() string { return id.name }

// String returns the name.
func (id Identifier[S, C]) String() string { return id.name }
