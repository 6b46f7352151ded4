package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shortlink/internal/link"
)

// DB is the subset of *pgxpool.Pool used by Postgres.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS links (
	id            uuid PRIMARY KEY,
	short_code    varchar(64) NOT NULL UNIQUE,
	original_url  text NOT NULL,
	created_at    timestamptz NOT NULL,
	expires_at    timestamptz,
	evict_at      timestamptz NOT NULL,
	password_hash text,
	click_limit   bigint,
	is_active     boolean NOT NULL DEFAULT true
);
CREATE INDEX IF NOT EXISTS links_evict_at_idx ON links (evict_at);
`

const linkColumns = `id, short_code, original_url, created_at, expires_at, evict_at,
	COALESCE(password_hash, ''), click_limit, is_active`

// A row whose evict_at has passed is treated as absent and may be claimed
// again before the janitor removes it.
const claimSQL = `
INSERT INTO links (id, short_code, original_url, created_at, expires_at, evict_at, password_hash, click_limit, is_active)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
ON CONFLICT (short_code) DO UPDATE SET
	id = EXCLUDED.id,
	original_url = EXCLUDED.original_url,
	created_at = EXCLUDED.created_at,
	expires_at = EXCLUDED.expires_at,
	evict_at = EXCLUDED.evict_at,
	password_hash = EXCLUDED.password_hash,
	click_limit = EXCLUDED.click_limit,
	is_active = EXCLUDED.is_active
WHERE links.evict_at <= now()`

// Postgres stores links in the links table.
type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the links table if it does not exist.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (r *Postgres) Exists(ctx context.Context, code string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM links WHERE short_code = $1 AND evict_at > now())`,
		code,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return ok, nil
}

func (r *Postgres) Claim(ctx context.Context, l *link.ShortLink, _ time.Duration) (bool, error) {
	tag, err := r.db.Exec(ctx, claimSQL,
		l.ID, l.Code, l.TargetURL, l.CreatedAt, l.ExpiresAt, l.EvictAt,
		l.PasswordHash, l.ClickLimit, l.IsActive,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert link: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Postgres) Get(ctx context.Context, code string) (*link.ShortLink, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM links WHERE short_code = $1 AND evict_at > now()`,
		code,
	)
	return scanLink(row)
}

// Update locks the row for the duration of fn. Only click_limit and
// is_active are written back.
func (r *Postgres) Update(ctx context.Context, code string, fn func(*link.ShortLink) (bool, error)) (*link.ShortLink, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	l, err := scanLink(tx.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM links WHERE short_code = $1 AND evict_at > now() FOR UPDATE`,
		code,
	))
	if err != nil {
		return nil, err
	}

	changed, err := fn(l)
	if err != nil {
		return nil, err
	}
	if !changed {
		return l, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE links SET click_limit = $2, is_active = $3 WHERE short_code = $1`,
		code, l.ClickLimit, l.IsActive,
	); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return l, nil
}

func (r *Postgres) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM links WHERE short_code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}
	return nil
}

// PurgeExpired deletes rows past their eviction time. Expired rows inside
// their grace window stay so reads can still report them as expired.
func (r *Postgres) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM links WHERE evict_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge links: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanLink(row pgx.Row) (*link.ShortLink, error) {
	var l link.ShortLink
	err := row.Scan(
		&l.ID, &l.Code, &l.TargetURL, &l.CreatedAt, &l.ExpiresAt, &l.EvictAt,
		&l.PasswordHash, &l.ClickLimit, &l.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, link.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan link: %w", err)
	}
	return &l, nil
}
