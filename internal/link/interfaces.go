package link

//go:generate go tool mockery

import (
	"context"
	"time"
)

// Store persists ShortLink records. Get, Update and Delete return
// ErrNotFound for absent codes; any other error is an infrastructure fault.
type Store interface {
	Exists(ctx context.Context, code string) (bool, error)
	// Claim writes l only if l.Code is not taken and reports whether it won.
	Claim(ctx context.Context, l *ShortLink, ttl time.Duration) (bool, error)
	Get(ctx context.Context, code string) (*ShortLink, error)
	// Update applies fn to the current record atomically with respect to
	// other updates of the same code. The record is written back only when
	// fn reports a change. The returned record is the one fn saw, after fn.
	Update(ctx context.Context, code string, fn func(l *ShortLink) (bool, error)) (*ShortLink, error)
	Delete(ctx context.Context, code string) error
}

// Purger is implemented by stores without native TTL eviction.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type CodeGenerator interface {
	Generate(length int) (string, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encodedHash string) (bool, error)
}
