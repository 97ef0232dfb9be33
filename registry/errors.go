package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingStore is matched by every error returned from Require.
	ErrMissingStore = errors.New("dbkit: store not configured")

	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("dbkit: duplicate registration")

	// ErrTypeConflict is returned when a name is reused with a different identifier type.
	ErrTypeConflict = errors.New("dbkit: identifier type conflict")

	// ErrSealed is returned when a Builder is modified or built after Build.
	ErrSealed = errors.New("dbkit: builder already built")

	// ErrInvalidName is returned for identifiers with an empty name.
	ErrInvalidName = errors.New("dbkit: empty identifier name")

	// ErrNilStore is returned when registering a nil store.
	ErrNilStore = errors.New("dbkit: nil store")

	// ErrInvalidPoolSize is returned for pool-size hints below 1.
	ErrInvalidPoolSize = errors.New("dbkit: pool size must be positive")
)

// MissingStoreError reports that no usable store is configured for Name.
//
// Got is empty when nothing is registered under the name. When a store of a
// different type is registered, Want and Got hold the expected and actual types.
type MissingStoreError struct {
	Name string
	Want string
	Got  string
}

func (e *MissingStoreError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("dbkit: store %q is %s, not %s", e.Name, e.Got, e.Want)
	}
	return fmt.Sprintf("dbkit: no store with id %q is configured", e.Name)
}

// Is makes errors.Is(err, ErrMissingStore) report true.
func (e *MissingStoreError) Is(target error) bool {
	return target == ErrMissingStore
}

// Mismatch reports whether a store exists under the name but has the wrong type.
func (e *MissingStoreError) Mismatch() bool { return e.Got != "" }
