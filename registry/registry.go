package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Registry holds configured stores keyed by identifier name.
//
// A Registry is immutable once constructed and safe for concurrent use.
// The zero value and a nil *Registry both behave as an empty registry.
type Registry struct {
	stores    map[string]any
	configs   map[string]any
	poolSizes map[string]int
}

// New creates a Registry from name-keyed stores, configurations and pool-size hints.
//
// The maps are copied. Entries are not type checked here; a configuration whose
// type does not match its identifier is ignored at lookup time in favour of the
// default, and a store of the wrong type is reported as missing. Use a Builder
// to have those mistakes rejected up front.
func New(stores map[string]any, configs map[string]any, poolSizes map[string]int) *Registry {
	r := &Registry{
		stores:    make(map[string]any, len(stores)),
		configs:   make(map[string]any, len(configs)),
		poolSizes: make(map[string]int, len(poolSizes)),
	}
	for k, v := range stores {
		r.stores[k] = v
	}
	for k, v := range configs {
		r.configs[k] = v
	}
	for k, v := range poolSizes {
		r.poolSizes[k] = v
	}
	return r
}

// Lookup returns the store registered for id together with its configuration.
//
// It reports false when no store is registered under id's name, or when the
// registered store is not of type S.
func Lookup[S any, C Config[C]](r *Registry, id Identifier[S, C]) (Configured[S, C], bool) {
	c, missing := resolve(r, id)
	return c, missing == nil
}

// Require is like Lookup but returns a *MissingStoreError instead of false.
func Require[S any, C Config[C]](r *Registry, id Identifier[S, C]) (Configured[S, C], error) {
	c, missing := resolve(r, id)
	if missing != nil {
		return c, missing
	}
	return c, nil
}

func resolve[S any, C Config[C]](r *Registry, id Identifier[S, C]) (Configured[S, C], *MissingStoreError) {
	var c Configured[S, C]
	if r == nil {
		return c, &MissingStoreError{Name: id.name}
	}
	raw, ok := r.stores[id.name]
	if !ok {
		return c, &MissingStoreError{Name: id.name}
	}
	store, ok := raw.(S)
	if !ok {
		return c, &MissingStoreError{
			Name: id.name,
			Want: typeName[S](),
			Got:  fmt.Sprintf("%T", raw),
		}
	}
	cfg, ok := r.configs[id.name].(C)
	if !ok {
		var zero C
		cfg = zero.Default()
	}
	c.store = store
	c.config = cfg
	return c, nil
}

// PoolSize returns the connection-pool-size hint registered for id's name.
// It does not check whether a store is registered under the same name.
func (r *Registry) PoolSize(id Key) (int, bool) {
	if r == nil {
		return 0, false
	}
	n, ok := r.poolSizes[id.Name()]
	return n, ok
}

// Has reports whether any store is registered under id's name.
func (r *Registry) Has(id Key) bool {
	if r == nil {
		return false
	}
	_, ok := r.stores[id.Name()]
	return ok
}

// Len returns the number of registered stores.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.stores)
}

// Names returns the names of all registered stores in lexicographic order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every registered store that has a Close method, in name order.
// Errors from individual stores are joined; all stores are attempted.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.Names() {
		switch s := r.stores[name].(type) {
		case interface{ Close() error }:
			if err := s.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %q: %w", name, err))
			}
		case interface{ Close() }:
			s.Close()
		}
	}
	return errors.Join(errs...)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
