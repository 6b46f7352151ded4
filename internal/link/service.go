package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTTL              = 7 * 24 * time.Hour
	DefaultExpiryGrace      = 24 * time.Hour
	DefaultStoreTimeout     = 2 * time.Second
	DefaultBatchConcurrency = 8

	minAliasLength = 3
	maxAliasLength = 32
	maxCodeLength  = 64
)

var (
	aliasRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// Aliases that would shadow routes served next to GET /{code}.
	reservedAliases = map[string]bool{
		"api":     true,
		"debug":   true,
		"health":  true,
		"shorten": true,
	}
)

// Config tunes a Service. Links without an expiry are evicted after
// DefaultTTL; links with one are kept ExpiryGrace past it, so reads in that
// window answer Expired rather than NotFound.
type Config struct {
	BaseURL          string
	DefaultTTL       time.Duration
	ExpiryGrace      time.Duration
	CodeLength       int
	MaxAttempts      int
	StoreTimeout     time.Duration
	BatchConcurrency int
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service allocates short links and resolves them.
type Service struct {
	store     Store
	hasher    PasswordHasher
	allocator *Allocator
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store Store, gen CodeGenerator, hasher PasswordHasher, cfg Config, opts ...Option) *Service {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.ExpiryGrace <= 0 {
		cfg.ExpiryGrace = DefaultExpiryGrace
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = DefaultBatchConcurrency
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	s := &Service{
		store:     store,
		hasher:    hasher,
		allocator: NewAllocator(gen, cfg.CodeLength, cfg.MaxAttempts),
		cfg:       cfg,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ShortURL(code string) string {
	return s.cfg.BaseURL + "/" + code
}

// Shorten validates the request, claims a code and persists the link.
// Nothing is written until validation and password hashing succeeded, so a
// resolver never observes a partial record.
func (s *Service) Shorten(ctx context.Context, rawURL string, opts Options) (*ShortLink, error) {
	target, err := parseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := validateOptions(opts, now); err != nil {
		return nil, err
	}

	l := &ShortLink{
		ID:        uuid.New(),
		TargetURL: target,
		CreatedAt: now,
		EvictAt:   now.Add(s.cfg.DefaultTTL),
		IsActive:  true,
	}
	if opts.ExpiresAt != nil {
		expiresAt := opts.ExpiresAt.UTC()
		l.ExpiresAt = &expiresAt
		l.EvictAt = expiresAt.Add(s.cfg.ExpiryGrace)
	}
	ttl := l.EvictAt.Sub(now)
	if opts.ClickLimit != nil {
		limit := *opts.ClickLimit
		l.ClickLimit = &limit
	}
	if opts.Password != "" {
		hash, err := s.hasher.Hash(opts.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		l.PasswordHash = hash
	}

	if opts.CustomAlias != "" {
		if err := s.claimAlias(ctx, l, opts.CustomAlias, ttl); err != nil {
			return nil, err
		}
		return l, nil
	}

	code, err := s.allocator.Allocate(ctx, func(ctx context.Context, code string) (bool, error) {
		// A generated code spelling a route name would be shadowed by it.
		if reserved(code) {
			return false, nil
		}
		l.Code = code
		return s.claim(ctx, l, ttl)
	})
	if err != nil {
		return nil, err
	}
	l.Code = code
	return l, nil
}

func (s *Service) claimAlias(ctx context.Context, l *ShortLink, alias string, ttl time.Duration) error {
	taken, err := s.exists(ctx, alias)
	if err != nil {
		return err
	}
	if taken {
		return ErrAliasTaken
	}

	// Another request may have claimed the alias since the check; the
	// conditional claim decides.
	l.Code = alias
	won, err := s.claim(ctx, l, ttl)
	if err != nil {
		return err
	}
	if !won {
		return ErrAliasTaken
	}
	return nil
}

// ShortenBatch shortens every URL with default options. Results keep the
// input order; the first failure cancels the rest.
func (s *Service) ShortenBatch(ctx context.Context, rawURLs []string) ([]*ShortLink, error) {
	links := make([]*ShortLink, len(rawURLs))
	if len(rawURLs) == 0 {
		return links, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, raw := range rawURLs {
		g.Go(func() error {
			l, err := s.Shorten(gctx, raw, Options{})
			if err != nil {
				return fmt.Errorf("url %d: %w", i, err)
			}
			links[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return links, nil
}

// Inspect returns the stored record regardless of its policy state.
func (s *Service) Inspect(ctx context.Context, code string) (*ShortLink, error) {
	if !validCode(code) {
		return nil, ErrNotFound
	}
	return s.get(ctx, code)
}

func (s *Service) Delete(ctx context.Context, code string) error {
	if !validCode(code) {
		return ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, code); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return storageErr("delete", err)
	}
	return nil
}

// Deactivate turns a link off while keeping its record.
func (s *Service) Deactivate(ctx context.Context, code string) (*ShortLink, error) {
	if !validCode(code) {
		return nil, ErrNotFound
	}
	return s.update(ctx, code, func(l *ShortLink) (bool, error) {
		if !l.IsActive {
			return false, nil
		}
		l.IsActive = false
		return true, nil
	})
}

// PurgeExpired removes dead records from stores that lack TTL eviction.
// It is a no-op for stores that evict on their own.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	p, ok := s.store.(Purger)
	if !ok {
		return 0, nil
	}
	n, err := p.PurgeExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, storageErr("purge", err)
	}
	return n, nil
}

func (s *Service) exists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	ok, err := s.store.Exists(ctx, code)
	if err != nil {
		return false, storageErr("exists", err)
	}
	return ok, nil
}

func (s *Service) claim(ctx context.Context, l *ShortLink, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	won, err := s.store.Claim(ctx, l, ttl)
	if err != nil {
		return false, storageErr("claim", err)
	}
	return won, nil
}

func (s *Service) get(ctx context.Context, code string) (*ShortLink, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	l, err := s.store.Get(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get", err)
	}
	return l, nil
}

func (s *Service) update(ctx context.Context, code string, fn func(*ShortLink) (bool, error)) (*ShortLink, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	l, err := s.store.Update(ctx, code, fn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("update", err)
	}
	return l, nil
}

func parseTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrInvalidURL
	}
	if parsed.Host == "" {
		return "", ErrInvalidURL
	}
	return raw, nil
}

func validateOptions(opts Options, now time.Time) error {
	if opts.CustomAlias != "" && !ValidAlias(opts.CustomAlias) {
		return ErrInvalidAlias
	}
	if opts.ExpiresAt != nil && !opts.ExpiresAt.After(now) {
		return ErrInvalidExpiry
	}
	if opts.ClickLimit != nil && *opts.ClickLimit < 0 {
		return ErrInvalidClickLimit
	}
	return nil
}

// ValidAlias reports whether alias may be used as a custom code.
func ValidAlias(alias string) bool {
	if len(alias) < minAliasLength || len(alias) > maxAliasLength {
		return false
	}
	if reserved(alias) {
		return false
	}
	return aliasRe.MatchString(alias)
}

func reserved(code string) bool {
	return reservedAliases[strings.ToLower(code)]
}

func validCode(code string) bool {
	return code != "" && len(code) <= maxCodeLength && aliasRe.MatchString(code)
}
