package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/netutil"

	"shortlink/internal/cache"
	"shortlink/internal/config"
	"shortlink/internal/handler"
	"shortlink/internal/link"
	"shortlink/internal/metrics"
	custommiddleware "shortlink/internal/middleware"
	"shortlink/internal/password"
	"shortlink/internal/repository"
	"shortlink/internal/shortener"
	"shortlink/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(ctx, logger); err != nil {
		logger.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = cfg.Log.NewLogger(os.Stdout)
	if err != nil {
		return err
	}

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer b.Close()

	store := b.store
	var linkCache *cache.LinkCache
	if cfg.Cache.Enabled {
		linkCache, err = cache.New(cfg.Cache.MaxSizePow2)
		if err != nil {
			return fmt.Errorf("failed to create cache: %w", err)
		}
		defer linkCache.Close()
		store = repository.NewCached(store, linkCache, cfg.Cache.TTL)
	}

	recorder, err := startMetrics(ctx, cfg, b, linkCache, logger)
	if err != nil {
		return err
	}
	defer recorder.Close()

	linkService := link.NewService(
		store,
		newGenerator(cfg.App.CodeGenerator),
		password.NewArgon2(password.Params{
			Time:    cfg.Password.Time,
			Memory:  cfg.Password.MemoryKiB,
			Threads: cfg.Password.Threads,
		}),
		link.Config{
			BaseURL:          cfg.App.BaseURL,
			DefaultTTL:       cfg.App.DefaultTTL,
			ExpiryGrace:      cfg.App.ExpiryGrace,
			CodeLength:       cfg.App.CodeLength,
			MaxAttempts:      cfg.App.MaxAttempts,
			StoreTimeout:     cfg.App.StoreTimeout,
			BatchConcurrency: cfg.App.BatchConcurrency,
		},
		link.WithLogger(logger),
	)

	if cfg.Store.Backend == config.BackendPostgres && cfg.App.PurgeInterval > 0 {
		go purgeExpired(ctx, linkService, cfg.App.PurgeInterval, logger)
	}

	urlValidator := validation.NewURLValidator(
		cfg.Validation.MaxURLLength,
		cfg.Validation.MaxBatchSize,
		cfg.Validation.AllowPrivateIPs,
		validation.HostOf(cfg.App.BaseURL),
	)

	h := handler.New(linkService, urlValidator, logger, b.pinger)
	return serve(ctx, cfg, newRouter(cfg, h, recorder, logger), logger)
}

func newRouter(cfg *config.Config, h *handler.Handler, recorder custommiddleware.HTTPRecorder, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Validation.MaxRequestBodySize))
	e.Use(custommiddleware.Metrics(recorder, "/health", "/api/v1/health"))

	h.Register(e)

	// Without a secret the admin surface does not exist at all.
	if cfg.Admin.Secret != "" {
		h.RegisterAdmin(e.Group("/api/v1/links",
			custommiddleware.RequireSecret(custommiddleware.AdminSecretHeader, cfg.Admin.Secret)))
		logger.Info("admin endpoints enabled", slog.String("path", "/api/v1/links/*"))
	}
	if cfg.Pprof.Enabled {
		custommiddleware.RegisterPprof(e.Group("/debug/pprof",
			custommiddleware.RequireSecret(custommiddleware.PprofSecretHeader, cfg.Pprof.Secret)))
		logger.Info("pprof endpoints enabled", slog.String("path", "/debug/pprof/*"))
	}
	return e
}

func newGenerator(kind string) link.CodeGenerator {
	if kind == config.GeneratorSqids {
		return shortener.NewSqids(nil)
	}
	return shortener.NewRandom(nil)
}

// startMetrics returns a recorder that is a no-op unless metrics are enabled.
// Metrics always go to Postgres, reusing the store pool when there is one.
func startMetrics(
	ctx context.Context,
	cfg *config.Config,
	b *backend,
	linkCache *cache.LinkCache,
	logger *slog.Logger,
) (*metrics.Recorder, error) {
	if !cfg.Metrics.Enabled {
		return metrics.NewRecorder(nil, &cfg.Metrics, logger), nil
	}

	pool := b.pool
	if pool == nil {
		var err error
		pool, err = openPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open metrics database: %w", err)
		}
		b.pool = pool
	}
	if err := metrics.Migrate(ctx, pool); err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder(pool, &cfg.Metrics, logger)
	recorder.Start(ctx)

	opts := []metrics.CollectorOption{metrics.WithPool(pool)}
	if b.redis != nil {
		opts = append(opts, metrics.WithRedis(b.redis))
	}
	if linkCache != nil {
		opts = append(opts, metrics.WithCache(linkCache))
	}
	go metrics.NewCollector(recorder, opts...).Run(ctx, cfg.Metrics.CollectInterval)

	return recorder, nil
}

// purgeExpired removes dead rows from stores without native TTL eviction.
func purgeExpired(ctx context.Context, svc *link.Service, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.PurgeExpired(ctx)
			if err != nil {
				logger.Error("failed to purge expired links", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("purged expired links", slog.Int64("count", n))
			}
		}
	}
}

// serve runs the plain listener and, when configured, a TLS 1.3 one until
// ctx is done, then drains both.
func serve(ctx context.Context, cfg *config.Config, h http.Handler, logger *slog.Logger) error {
	type endpoint struct {
		name string
		srv  *http.Server
		ln   net.Listener
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	ln, err := listen(addr, cfg.Server.MaxConnections)
	if err != nil {
		return fmt.Errorf("failed to create HTTP listener: %w", err)
	}
	endpoints := []endpoint{{name: "http", srv: newServer(cfg.Server, h), ln: ln}}

	if cfg.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to load TLS certificate: %w", err)
		}
		tlsLn, err := listen(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.TLS.Port), cfg.Server.MaxConnections)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to create HTTPS listener: %w", err)
		}
		tlsLn = tls.NewListener(tlsLn, &tls.Config{
			MinVersion:       tls.VersionTLS13,
			Certificates:     []tls.Certificate{cert},
			CurvePreferences: []tls.CurveID{tls.X25519},
		})
		endpoints = append(endpoints, endpoint{name: "https", srv: newServer(cfg.Server, h), ln: tlsLn})
	}

	for _, ep := range endpoints {
		logger.Info("starting server",
			slog.String("scheme", ep.name),
			slog.String("addr", ep.ln.Addr().String()),
			slog.Int("max_connections", cfg.Server.MaxConnections))
		go func() {
			if err := ep.srv.Serve(ep.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", slog.String("scheme", ep.name), slog.String("error", err.Error()))
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	for _, ep := range endpoints {
		if err := ep.srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown failed: %w", ep.name, err))
		}
	}
	return errors.Join(errs...)
}

func listen(addr string, maxConnections int) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if maxConnections > 0 {
		l = netutil.LimitListener(l, maxConnections)
	}
	return l, nil
}

func newServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Handler:        h,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 14, // 16KB
	}
}
