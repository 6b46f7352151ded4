package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"shortlink/internal/config"
	"shortlink/internal/handler"
	"shortlink/internal/keystore"
	"shortlink/internal/link"
	"shortlink/internal/repository"
)

type backend struct {
	store  link.Store
	pinger handler.Pinger
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func (b *backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		ks := keystore.NewRedis(client)
		if err := ks.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("using redis store", slog.String("addr", cfg.Redis.Addr))
		return &backend{
			store:  repository.NewKV(ks, logger),
			pinger: ks,
			redis:  client,
		}, nil

	case config.BackendPostgres:
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("using postgres store",
			slog.String("host", cfg.Database.Host),
			slog.String("db", cfg.Database.DBName))
		return &backend{
			store:  repository.NewPostgres(pool),
			pinger: pool,
			pool:   pool,
		}, nil

	default:
		logger.Warn("using in-memory store, links do not survive a restart")
		return &backend{store: repository.NewKV(keystore.NewMemory(), logger)}, nil
	}
}

func openPool(ctx context.Context, dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return pool, nil
}
