// Package kv provides the string-keyed, string-valued stores that persist
// wishlist state and display preferences.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is the interface any persistence backend must satisfy.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) (string, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key, value string) error
}

// Closer is implemented by stores holding external resources.
type Closer interface {
	Close() error
}

// Close releases s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

// UpdateFunc computes the value to store from the current one. found is
// false when the key is absent. It may run more than once and must not
// have side effects beyond its return values.
type UpdateFunc func(current string, found bool) (string, error)

// Updater is implemented by stores that can apply an UpdateFunc atomically,
// excluding concurrent writers of the key in this and other processes.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Update applies fn to the value under key, atomically when s is an
// Updater and as a plain Load then Save otherwise.
func Update(ctx context.Context, s Store, key string, fn UpdateFunc) error {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, key, fn)
	}

	current, err := s.Load(ctx, key)
	found := true
	if errors.Is(err, ErrNotFound) {
		found, err = false, nil
	}
	if err != nil {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, next)
}
