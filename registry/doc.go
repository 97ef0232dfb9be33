// Package registry provides a typed lookup table of configured data-store handles.
//
// A single application usually talks to several stores: a PostgreSQL primary, an
// embedded cache, an object bucket. The registry holds all of them in one
// collection keyed by name, and hands them back to callers already typed, paired
// with their per-store configuration and an optional connection-pool-size hint.
//
// # Identifiers
//
// An [Identifier] carries the store name plus two type parameters: the concrete
// store type and its configuration type. Only the name exists at run-time.
// Backends declare identifiers as package-level values:
//
//	var Default = registry.NewIdentifier[*Store, Config]("postgres")
//
// Configuration types implement [Config] so a default can be synthesized when no
// explicit entry was registered:
//
//	func (Config) Default() Config { return DefaultConfig() }
//
// # Building
//
// A [Builder] is populated once at startup and then frozen into an immutable
// [Registry]:
//
//	b := registry.NewBuilder()
//	_ = registry.Add(b, primary, pgStore)
//	_ = registry.Configure(b, primary, pgConfig)
//	_ = b.SetPoolSize(primary, 10)
//	reg, err := b.Build()
//
// # Lookups
//
// Lookups are package-level generic functions since Go methods cannot declare
// type parameters:
//
//	db, ok := registry.Lookup(reg, primary)   // ok == false when not configured
//	db, err := registry.Require(reg, primary) // *MissingStoreError when not configured
//	n, ok := reg.PoolSize(primary)
//
// A [Registry] is never mutated after construction, so it is safe for concurrent
// use without locking.
//
// # Errors
//
//   - [ErrMissingStore] - no store (of the expected type) is configured under a name
//   - [ErrDuplicate] - a name was registered twice on a [Builder]
//   - [ErrTypeConflict] - a name was used with two different identifier types
//   - [ErrSealed] - the [Builder] was already built
package registry
