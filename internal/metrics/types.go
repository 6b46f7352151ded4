package metrics

import "time"

type HTTPMetric struct {
	Time       time.Time
	Method     string
	Path       string
	StatusCode int
	DurationMs float64
	ClientIP   string
	Error      string
}

// InfraMetric is one sample of process and backend health. Fields for a
// backend that is not in use stay zero.
type InfraMetric struct {
	Time            time.Time
	PoolAcquired    int
	PoolIdle        int
	PoolTotal       int
	PoolMax         int
	RedisHits       int64
	RedisMisses     int64
	RedisTotalConns int
	RedisIdleConns  int
	CacheHits       int64
	CacheMisses     int64
	CacheHitRatio   float64
	Goroutines      int
	HeapAllocMB     float64
}

var httpColumns = []string{"time", "method", "path", "status_code", "duration_ms", "client_ip", "error"}

func (m HTTPMetric) row() []any {
	return []any{m.Time, m.Method, m.Path, m.StatusCode, m.DurationMs, m.ClientIP, m.Error}
}

var infraColumns = []string{
	"time", "pool_acquired", "pool_idle", "pool_total", "pool_max",
	"redis_hits", "redis_misses", "redis_total_conns", "redis_idle_conns",
	"cache_hits", "cache_misses", "cache_hit_ratio", "goroutines", "heap_alloc_mb",
}

func (m InfraMetric) row() []any {
	return []any{
		m.Time, m.PoolAcquired, m.PoolIdle, m.PoolTotal, m.PoolMax,
		m.RedisHits, m.RedisMisses, m.RedisTotalConns, m.RedisIdleConns,
		m.CacheHits, m.CacheMisses, m.CacheHitRatio, m.Goroutines, m.HeapAllocMB,
	}
}
