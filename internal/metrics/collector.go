package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type InfraRecorder interface {
	RecordInfra(m InfraMetric)
}

type PoolStatter interface {
	Stat() *pgxpool.Stat
}

type RedisStatter interface {
	PoolStats() *redis.PoolStats
}

type CacheStatter interface {
	Stats() (hits, misses uint64, ratio float64)
}

type CollectorOption func(*Collector)

func WithPool(p PoolStatter) CollectorOption {
	return func(c *Collector) { c.pool = p }
}

func WithRedis(r RedisStatter) CollectorOption {
	return func(c *Collector) { c.redis = r }
}

func WithCache(s CacheStatter) CollectorOption {
	return func(c *Collector) { c.cache = s }
}

// Collector samples runtime and backend pool statistics on a fixed interval.
type Collector struct {
	recorder InfraRecorder
	pool     PoolStatter
	redis    RedisStatter
	cache    CacheStatter
	now      func() time.Time
}

func NewCollector(recorder InfraRecorder, opts ...CollectorOption) *Collector {
	c := &Collector{recorder: recorder, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Sample() InfraMetric {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m := InfraMetric{
		Time:        c.now(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: float64(memStats.HeapAlloc) / 1024 / 1024,
	}

	if c.pool != nil {
		stat := c.pool.Stat()
		m.PoolAcquired = int(stat.AcquiredConns())
		m.PoolIdle = int(stat.IdleConns())
		m.PoolTotal = int(stat.TotalConns())
		m.PoolMax = int(stat.MaxConns())
	}
	if c.redis != nil {
		stat := c.redis.PoolStats()
		m.RedisHits = int64(stat.Hits)
		m.RedisMisses = int64(stat.Misses)
		m.RedisTotalConns = int(stat.TotalConns)
		m.RedisIdleConns = int(stat.IdleConns)
	}
	if c.cache != nil {
		hits, misses, ratio := c.cache.Stats()
		m.CacheHits = int64(hits)
		m.CacheMisses = int64(misses)
		m.CacheHitRatio = ratio
	}
	return m
}

// Run records a sample every interval until ctx is done.
func (c *Collector) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.recorder.RecordInfra(c.Sample())
		}
	}
}
