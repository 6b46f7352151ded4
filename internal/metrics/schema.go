package metrics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const schema = `
CREATE TABLE IF NOT EXISTS http_metrics (
	time        TIMESTAMPTZ      NOT NULL,
	method      TEXT             NOT NULL,
	path        TEXT             NOT NULL,
	status_code INTEGER          NOT NULL,
	duration_ms DOUBLE PRECISION NOT NULL,
	client_ip   TEXT             NOT NULL,
	error       TEXT             NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS http_metrics_time_idx ON http_metrics (time);

CREATE TABLE IF NOT EXISTS infra_metrics (
	time              TIMESTAMPTZ      NOT NULL,
	pool_acquired     INTEGER          NOT NULL,
	pool_idle         INTEGER          NOT NULL,
	pool_total        INTEGER          NOT NULL,
	pool_max          INTEGER          NOT NULL,
	redis_hits        BIGINT           NOT NULL,
	redis_misses      BIGINT           NOT NULL,
	redis_total_conns INTEGER          NOT NULL,
	redis_idle_conns  INTEGER          NOT NULL,
	cache_hits        BIGINT           NOT NULL,
	cache_misses      BIGINT           NOT NULL,
	cache_hit_ratio   DOUBLE PRECISION NOT NULL,
	goroutines        INTEGER          NOT NULL,
	heap_alloc_mb     DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS infra_metrics_time_idx ON infra_metrics (time);
`

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates the metrics tables when they are missing.
func Migrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create metrics tables: %w", err)
	}
	return nil
}
