package registry

import (
	"reflect"
	"sync"
)

// Builder collects stores, configurations and pool-size hints before they are
// frozen into a Registry. It is safe for concurrent use.
//
// Every name is bound to the identifier type it was first used with, so a
// configuration of the wrong shape can never reach the Registry.
type Builder struct {
	mu        sync.Mutex
	kinds     map[string]reflect.Type
	stores    map[string]any
	configs   map[string]any
	poolSizes map[string]int
	built     bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		kinds:     make(map[string]reflect.Type),
		stores:    make(map[string]any),
		configs:   make(map[string]any),
		poolSizes: make(map[string]int),
	}
}

// Add registers store under id.
func Add[S any, C Config[C]](b *Builder, id Identifier[S, C], store S) error {
	if isNil(store) {
		return ErrNilStore
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.bind(id.name, reflect.TypeOf(id)); err != nil {
		return err
	}
	if _, exists := b.stores[id.name]; exists {
		return ErrDuplicate
	}
	b.stores[id.name] = store
	return nil
}

// Configure registers an explicit configuration for id. Without one, lookups
// resolve to C's default configuration.
func Configure[S any, C Config[C]](b *Builder, id Identifier[S, C], cfg C) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.bind(id.name, reflect.TypeOf(id)); err != nil {
		return err
	}
	if _, exists := b.configs[id.name]; exists {
		return ErrDuplicate
	}
	b.configs[id.name] = cfg
	return nil
}

// MustAdd panics on registration error. Useful from init() blocks.
func MustAdd[S any, C Config[C]](b *Builder, id Identifier[S, C], store S) {
	if err := Add(b, id, store); err != nil {
		panic(err)
	}
}

// SetPoolSize records a connection-pool-size hint for id's name.
func (b *Builder) SetPoolSize(id Key, n int) error {
	if n < 1 {
		return ErrInvalidPoolSize
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return ErrSealed
	}
	if id.Name() == "" {
		return ErrInvalidName
	}
	if _, exists := b.poolSizes[id.Name()]; exists {
		return ErrDuplicate
	}
	b.poolSizes[id.Name()] = n
	return nil
}

// Build returns the immutable Registry and seals the builder.
func (b *Builder) Build() (*Registry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return nil, ErrSealed
	}
	b.built = true
	return New(b.stores, b.configs, b.poolSizes), nil
}

// bind must be called with b.mu held.
func (b *Builder) bind(name string, kind reflect.Type) error {
	if b.built {
		return ErrSealed
	}
	if name == "" {
		return ErrInvalidName
	}
	if prev, ok := b.kinds[name]; ok && prev != kind {
		return ErrTypeConflict
	}
	b.kinds[name] = kind
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
