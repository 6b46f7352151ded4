package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"shortlink/internal/link"
)

// LinkCache keeps recently resolved records in process. Entries are copies,
// so callers may mutate what they get back.
type LinkCache struct {
	cache *ristretto.Cache
}

func New(maxSizePow2 int) (*LinkCache, error) {
	maxCost := max(1, int64(1)<<maxSizePow2)
	numCounters := max(1, maxCost/100) // ~100 bytes per entry estimate

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &LinkCache{cache: cache}, nil
}

func (c *LinkCache) Get(code string) (*link.ShortLink, bool) {
	val, found := c.cache.Get(code)
	if !found {
		return nil, false
	}
	l := *val.(*link.ShortLink)
	return &l, true
}

// SetWithTTL stores a copy of l. A non-positive ttl is ignored.
func (c *LinkCache) SetWithTTL(l *link.ShortLink, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	cp := *l
	c.cache.SetWithTTL(l.Code, &cp, cost(l), ttl)
}

// Del removes code and waits for pending writes, so a Set queued before
// the Del cannot resurface afterwards.
func (c *LinkCache) Del(code string) {
	c.cache.Del(code)
	c.cache.Wait()
}

// Wait blocks until buffered writes are applied.
func (c *LinkCache) Wait() {
	c.cache.Wait()
}

func (c *LinkCache) Close() {
	c.cache.Close()
}

func (c *LinkCache) Stats() (hits, misses uint64, ratio float64) {
	metrics := c.cache.Metrics
	hits = metrics.Hits()
	misses = metrics.Misses()
	ratio = metrics.Ratio()
	return
}

func cost(l *link.ShortLink) int64 {
	return int64(len(l.Code) + len(l.TargetURL) + len(l.PasswordHash) + 64)
}
