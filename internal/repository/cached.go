package repository

import (
	"context"
	"hash/maphash"
	"sync"
	"time"

	"shortlink/internal/cache"
	"shortlink/internal/link"
)

const DefaultCacheTTL = 5 * time.Minute

const fillStripes = 64

// fillStripe orders cache fills against invalidations of the codes hashed
// to it. gen moves on every invalidation.
type fillStripe struct {
	mu  sync.Mutex
	gen uint64
}

// Cached is a read-through cache in front of another Store. Only links with
// no click limit are cached, and never past their expiry, so cached reads
// cannot skip click accounting or outlive a link. A read that raced a local
// update or delete never fills the cache. A deactivation made by another
// instance can stay invisible here for up to maxTTL.
type Cached struct {
	next   link.Store
	cache  *cache.LinkCache
	maxTTL time.Duration
	now    func() time.Time

	seed    maphash.Seed
	stripes [fillStripes]fillStripe
}

func NewCached(next link.Store, c *cache.LinkCache, maxTTL time.Duration) *Cached {
	if maxTTL <= 0 {
		maxTTL = DefaultCacheTTL
	}
	return &Cached{
		next:   next,
		cache:  c,
		maxTTL: maxTTL,
		now:    time.Now,
		seed:   maphash.MakeSeed(),
	}
}

func (r *Cached) Exists(ctx context.Context, code string) (bool, error) {
	if _, ok := r.cache.Get(code); ok {
		return true, nil
	}
	return r.next.Exists(ctx, code)
}

func (r *Cached) Claim(ctx context.Context, l *link.ShortLink, ttl time.Duration) (bool, error) {
	return r.next.Claim(ctx, l, ttl)
}

func (r *Cached) Get(ctx context.Context, code string) (*link.ShortLink, error) {
	if l, ok := r.cache.Get(code); ok {
		return l, nil
	}

	s := r.stripe(code)
	gen := s.generation()

	l, err := r.next.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if l.Cacheable() {
		r.fill(s, gen, l)
	}
	return l, nil
}

func (r *Cached) Update(ctx context.Context, code string, fn func(*link.ShortLink) (bool, error)) (*link.ShortLink, error) {
	r.cache.Del(code)
	defer r.invalidate(code)
	return r.next.Update(ctx, code, fn)
}

func (r *Cached) Delete(ctx context.Context, code string) error {
	r.cache.Del(code)
	defer r.invalidate(code)
	return r.next.Delete(ctx, code)
}

// fill caches l unless code was invalidated since gen was read. The write
// is applied before the stripe is released, so a later invalidation always
// removes it.
func (r *Cached) fill(s *fillStripe, gen uint64, l *link.ShortLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return
	}
	r.cache.SetWithTTL(l, r.ttlFor(l))
	r.cache.Wait()
}

// invalidate runs after the write reached the next store.
func (r *Cached) invalidate(code string) {
	s := r.stripe(code)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	r.cache.Del(code)
}

func (r *Cached) stripe(code string) *fillStripe {
	return &r.stripes[maphash.String(r.seed, code)%fillStripes]
}

func (s *fillStripe) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (r *Cached) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	p, ok := r.next.(link.Purger)
	if !ok {
		return 0, nil
	}
	return p.PurgeExpired(ctx, now)
}

func (r *Cached) ttlFor(l *link.ShortLink) time.Duration {
	now := r.now()
	ttl := min(r.maxTTL, l.EvictAt.Sub(now))
	if l.ExpiresAt != nil {
		ttl = min(ttl, l.ExpiresAt.Sub(now))
	}
	return ttl
}
