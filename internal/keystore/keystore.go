// Package keystore provides the key-value capability short links are kept
// in: plain reads and writes with TTL, plus the optional conditional-set
// and atomic update primitives that make claims and click accounting safe
// under concurrency.
package keystore

import (
	"context"
	"errors"
	"time"
)

// ErrContention is returned when an optimistic update kept losing races.
var ErrContention = errors.New("too much contention on key")

type KeyStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	// SetWithTTL stores value; ttl <= 0 means no expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
}

// ConditionalSetter is implemented by stores that can set a key only when
// it is absent, in one atomic step.
type ConditionalSetter interface {
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// UpdateFunc maps the current value to the next one. Returning false skips
// the write.
type UpdateFunc func(current string) (next string, write bool, err error)

// Updater is implemented by stores that can read-modify-write a key
// atomically while keeping its TTL. Update reports whether the key existed;
// fn is not called for absent keys.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) (bool, error)
}
