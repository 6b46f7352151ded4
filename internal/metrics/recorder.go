package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"shortlink/internal/config"
)

const drainTimeout = 5 * time.Second

// Copier is the subset of pgxpool.Pool the recorder writes through.
type Copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type rower interface {
	row() []any
}

// batcher buffers metrics of one kind for a single table.
type batcher[T rower] struct {
	kind    string
	table   string
	columns []string
	ch      chan T
}

func newBatcher[T rower](kind, table string, columns []string, size int) *batcher[T] {
	return &batcher[T]{kind: kind, table: table, columns: columns, ch: make(chan T, size)}
}

// Recorder buffers metrics in memory and writes them to Postgres in batches
// with COPY. Recording never blocks: a full buffer drops the metric.
type Recorder struct {
	db           Copier
	logger       *slog.Logger
	cfg          *config.MetricsConfig
	http         *batcher[HTTPMetric]
	infra        *batcher[InfraMetric]
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

func NewRecorder(db Copier, cfg *config.MetricsConfig, logger *slog.Logger) *Recorder {
	return &Recorder{
		db:         db,
		logger:     logger,
		cfg:        cfg,
		http:       newBatcher[HTTPMetric]("http", "http_metrics", httpColumns, cfg.BufferSize),
		infra:      newBatcher[InfraMetric]("infra", "infra_metrics", infraColumns, cfg.BufferSize),
		shutdownCh: make(chan struct{}),
	}
}

func (r *Recorder) RecordHTTP(m HTTPMetric) {
	record(r, r.http, m)
}

func (r *Recorder) RecordInfra(m InfraMetric) {
	record(r, r.infra, m)
}

func record[T rower](r *Recorder, b *batcher[T], m T) {
	if !r.cfg.Enabled {
		return
	}
	select {
	case b.ch <- m:
	default:
		r.logger.Warn("metrics buffer full, dropping metric", slog.String("kind", b.kind))
	}
}

func (r *Recorder) Start(ctx context.Context) {
	if !r.cfg.Enabled {
		r.logger.Info("metrics recording disabled")
		return
	}

	r.startOnce.Do(func() {
		flushInterval := time.Duration(r.cfg.FlushInterval) * time.Millisecond

		r.wg.Add(2)
		go flushLoop(ctx, r, r.http, flushInterval)
		go flushLoop(ctx, r, r.infra, flushInterval)

		r.logger.Info("metrics recorder started",
			slog.Int("buffer_size", r.cfg.BufferSize),
			slog.Int("flush_interval_ms", r.cfg.FlushInterval))
	})
}

// Close stops the flush loops after writing whatever is still buffered.
func (r *Recorder) Close() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownCh)
		r.wg.Wait()
	})
}

func flushLoop[T rower](ctx context.Context, r *Recorder, b *batcher[T], interval time.Duration) {
	defer r.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	batch := make([]T, 0, r.cfg.FlushThreshold)

	for {
		select {
		case <-ctx.Done():
			drainAndFlush(r, b, batch)
			return
		case <-r.shutdownCh:
			drainAndFlush(r, b, batch)
			return
		case m := <-b.ch:
			batch = append(batch, m)
			if len(batch) >= r.cfg.FlushThreshold {
				writeBatch(ctx, r, b, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				writeBatch(ctx, r, b, batch)
				batch = batch[:0]
			}
		}
	}
}

func drainAndFlush[T rower](r *Recorder, b *batcher[T], batch []T) {
	for {
		select {
		case m := <-b.ch:
			batch = append(batch, m)
		default:
			if len(batch) > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
				writeBatch(ctx, r, b, batch)
				cancel()
			}
			return
		}
	}
}

func writeBatch[T rower](ctx context.Context, r *Recorder, b *batcher[T], batch []T) {
	if len(batch) == 0 {
		return
	}

	rows := make([][]any, len(batch))
	for i, m := range batch {
		rows[i] = m.row()
	}

	_, err := r.db.CopyFrom(ctx, pgx.Identifier{b.table}, b.columns, pgx.CopyFromRows(rows))
	if err != nil {
		r.logger.Error("failed to write metrics batch",
			slog.String("kind", b.kind),
			slog.Int("size", len(batch)),
			slog.String("error", err.Error()))
	}
}
