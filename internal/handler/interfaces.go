package handler

//go:generate go tool mockery

import (
	"context"

	"shortlink/internal/link"
)

type LinkService interface {
	Shorten(ctx context.Context, rawURL string, opts link.Options) (*link.ShortLink, error)
	ShortenBatch(ctx context.Context, rawURLs []string) ([]*link.ShortLink, error)
	Resolve(ctx context.Context, code, password string) (link.Resolution, error)
	ShortURL(code string) string
	Inspect(ctx context.Context, code string) (*link.ShortLink, error)
	Delete(ctx context.Context, code string) error
	Deactivate(ctx context.Context, code string) (*link.ShortLink, error)
}

type URLValidator interface {
	ValidateURL(url string) error
	ValidateBatch(urls []string) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
