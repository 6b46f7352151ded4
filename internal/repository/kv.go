package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/maphash"
	"log/slog"
	"sync"
	"time"

	"shortlink/internal/keystore"
	"shortlink/internal/link"
)

const KeyPrefix = "short_url:"

const lockStripes = 64

// KV stores links as JSON documents in a key-value store under KeyPrefix.
// Claims and updates use the store's atomic primitives when it has them and
// fall back to check-then-set otherwise.
type KV struct {
	store  keystore.KeyStore
	prefix string
	logger *slog.Logger

	seed  maphash.Seed
	locks [lockStripes]sync.Mutex
}

func NewKV(store keystore.KeyStore, logger *slog.Logger) *KV {
	if logger == nil {
		logger = slog.Default()
	}
	if _, ok := store.(keystore.ConditionalSetter); !ok {
		logger.Warn("key-value store has no conditional set, concurrent claims of one code may collide")
	}
	return &KV{
		store:  store,
		prefix: KeyPrefix,
		logger: logger,
		seed:   maphash.MakeSeed(),
	}
}

func (r *KV) Exists(ctx context.Context, code string) (bool, error) {
	return r.store.Exists(ctx, r.key(code))
}

func (r *KV) Claim(ctx context.Context, l *link.ShortLink, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return false, fmt.Errorf("failed to encode link: %w", err)
	}

	key := r.key(l.Code)
	if cs, ok := r.store.(keystore.ConditionalSetter); ok {
		return cs.SetIfAbsent(ctx, key, string(data), ttl)
	}

	mu := r.lock(key)
	mu.Lock()
	defer mu.Unlock()

	taken, err := r.store.Exists(ctx, key)
	if err != nil || taken {
		return false, err
	}
	if err := r.store.SetWithTTL(ctx, key, string(data), ttl); err != nil {
		return false, err
	}
	return true, nil
}

func (r *KV) Get(ctx context.Context, code string) (*link.ShortLink, error) {
	val, found, err := r.store.Get(ctx, r.key(code))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, link.ErrNotFound
	}
	return decode(val)
}

func (r *KV) Update(ctx context.Context, code string, fn func(*link.ShortLink) (bool, error)) (*link.ShortLink, error) {
	key := r.key(code)

	if u, ok := r.store.(keystore.Updater); ok {
		var l *link.ShortLink
		found, err := u.Update(ctx, key, func(cur string) (string, bool, error) {
			var err error
			if l, err = decode(cur); err != nil {
				return "", false, err
			}
			changed, err := fn(l)
			if err != nil || !changed {
				return "", false, err
			}
			data, err := json.Marshal(l)
			if err != nil {
				return "", false, fmt.Errorf("failed to encode link: %w", err)
			}
			return string(data), true, nil
		})
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, link.ErrNotFound
		}
		return l, nil
	}

	// Serializes updates within this process only.
	mu := r.lock(key)
	mu.Lock()
	defer mu.Unlock()

	l, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	changed, err := fn(l)
	if err != nil || !changed {
		return l, err
	}

	ttl := time.Until(l.EvictAt)
	if ttl <= 0 {
		return l, nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode link: %w", err)
	}
	if err := r.store.SetWithTTL(ctx, key, string(data), ttl); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *KV) Delete(ctx context.Context, code string) error {
	existed, err := r.store.Delete(ctx, r.key(code))
	if err != nil {
		return err
	}
	if !existed {
		return link.ErrNotFound
	}
	return nil
}

func (r *KV) key(code string) string {
	return r.prefix + code
}

func (r *KV) lock(key string) *sync.Mutex {
	return &r.locks[maphash.String(r.seed, key)%lockStripes]
}

func decode(val string) (*link.ShortLink, error) {
	var l link.ShortLink
	if err := json.Unmarshal([]byte(val), &l); err != nil {
		return nil, fmt.Errorf("failed to decode link: %w", err)
	}
	return &l, nil
}
