// Package linktest holds the behaviour every link.Store backend must show
// when driven through link.Service.
package linktest

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"shortlink/internal/link"
	"shortlink/internal/password"
	"shortlink/internal/shortener"
)

// Factory returns an empty store owned by t. Stores that keep their own
// notion of time should take it from clock, via Share or Follow.
type Factory func(t *testing.T, clock *Clock) link.Store

var codeRe = regexp.MustCompile(`^[0-9A-Za-z]{6}$`)

// Clock is a settable time source.
type Clock struct {
	mu        sync.Mutex
	now       time.Time
	shared    bool
	followers []func(time.Duration)
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock and every follower forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	followers := c.followers
	c.mu.Unlock()

	for _, fn := range followers {
		fn(d)
	}
}

// Share marks the clock as the store's time source and returns its Now.
func (c *Clock) Share() func() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shared = true
	return c.Now
}

// Follow runs fn on every Advance, for stores whose time can only be
// pushed forward, such as miniredis.
func (c *Clock) Follow(fn func(time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shared = true
	c.followers = append(c.followers, fn)
}

// Shared reports whether the store under test runs on this clock.
func (c *Clock) Shared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shared
}

// NewService wires store with real generators and a cheap argon2 setup.
func NewService(store link.Store, clock *Clock) *link.Service {
	hasher := password.NewArgon2(password.Params{Time: 1, Memory: 1024, Threads: 1})
	return link.NewService(store, shortener.NewRandom(nil), hasher,
		link.Config{BaseURL: "http://sho.rt/"},
		link.WithClock(clock.Now),
	)
}

func Run(t *testing.T, newStore Factory) {
	t.Helper()

	setup := func(t *testing.T) (*link.Service, *Clock) {
		clock := NewClock(time.Now())
		return NewService(newStore(t, clock), clock), clock
	}

	t.Run("RoundTrip", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		l, err := svc.Shorten(ctx, "https://example.com/page", link.Options{})
		require.NoError(t, err)
		assert.Regexp(t, codeRe, l.Code)
		assert.Equal(t, "http://sho.rt/"+l.Code, svc.ShortURL(l.Code))

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)
		assert.Equal(t, "https://example.com/page", res.TargetURL)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		svc, _ := setup(t)

		for _, code := range []string{"zzzzzz", "nope", "bad code!", ""} {
			res, err := svc.Resolve(context.Background(), code, "")
			require.NoError(t, err)
			assert.Equal(t, link.VerdictNotFound, res.Verdict, code)
		}
	})

	t.Run("InvalidURL", func(t *testing.T) {
		svc, _ := setup(t)

		for _, raw := range []string{"", "not a url", "/relative", "ftp://example.com", "https://"} {
			_, err := svc.Shorten(context.Background(), raw, link.Options{})
			require.ErrorIs(t, err, link.ErrInvalidURL, raw)
		}
	})

	t.Run("UniqueCodes", func(t *testing.T) {
		svc, _ := setup(t)
		const n = 1000

		codes := make([]string, n)
		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(16)
		for i := range n {
			g.Go(func() error {
				l, err := svc.Shorten(ctx, fmt.Sprintf("https://example.com/%d", i), link.Options{})
				if err != nil {
					return err
				}
				codes[i] = l.Code
				return nil
			})
		}
		require.NoError(t, g.Wait())

		seen := make(map[string]struct{}, n)
		for _, code := range codes {
			seen[code] = struct{}{}
		}
		assert.Len(t, seen, n)
	})

	t.Run("Expiry", func(t *testing.T) {
		svc, clock := setup(t)
		ctx := context.Background()

		expiresAt := clock.Now().Add(time.Hour)
		l, err := svc.Shorten(ctx, "https://example.com/soon", link.Options{ExpiresAt: &expiresAt})
		require.NoError(t, err)

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)

		clock.Advance(time.Hour + time.Second)

		res, err = svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictExpired, res.Verdict)

		// The expired record was evicted on the way out.
		res, err = svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictNotFound, res.Verdict)
	})

	t.Run("ExpiryPastGrace", func(t *testing.T) {
		svc, clock := setup(t)
		if !clock.Shared() {
			t.Skip("store does not run on the test clock")
		}
		ctx := context.Background()

		expiresAt := clock.Now().Add(time.Hour)
		l, err := svc.Shorten(ctx, "https://example.com/gone", link.Options{ExpiresAt: &expiresAt})
		require.NoError(t, err)

		clock.Advance(time.Hour + link.DefaultExpiryGrace - time.Second)
		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictExpired, res.Verdict)

		expiresAt = clock.Now().Add(time.Hour)
		other, err := svc.Shorten(ctx, "https://example.com/gone", link.Options{ExpiresAt: &expiresAt})
		require.NoError(t, err)

		clock.Advance(time.Hour + link.DefaultExpiryGrace + time.Second)
		res, err = svc.Resolve(ctx, other.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictNotFound, res.Verdict)
	})

	t.Run("ExpiryInPast", func(t *testing.T) {
		svc, clock := setup(t)

		past := clock.Now().Add(-time.Second)
		_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{ExpiresAt: &past})
		require.ErrorIs(t, err, link.ErrInvalidExpiry)
	})

	t.Run("ClickLimitOne", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		limit := int64(1)
		l, err := svc.Shorten(ctx, "https://example.com/once", link.Options{ClickLimit: &limit})
		require.NoError(t, err)

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)

		for range 2 {
			res, err = svc.Resolve(ctx, l.Code, "")
			require.NoError(t, err)
			assert.Equal(t, link.VerdictLimitExhausted, res.Verdict)
		}

		stored, err := svc.Inspect(ctx, l.Code)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
		assert.Equal(t, int64(0), *stored.ClickLimit)
	})

	t.Run("ClickLimitZero", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		limit := int64(0)
		l, err := svc.Shorten(ctx, "https://example.com/never", link.Options{ClickLimit: &limit})
		require.NoError(t, err)

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictLimitExhausted, res.Verdict)
	})

	t.Run("ClickLimitConcurrent", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		limit := int64(5)
		l, err := svc.Shorten(ctx, "https://example.com/hot", link.Options{ClickLimit: &limit})
		require.NoError(t, err)

		var found, exhausted atomic.Int32
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := svc.Resolve(ctx, l.Code, "")
				if !assert.NoError(t, err) {
					return
				}
				switch res.Verdict {
				case link.VerdictFound:
					found.Add(1)
				case link.VerdictLimitExhausted:
					exhausted.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), found.Load())
		assert.Equal(t, int32(15), exhausted.Load())
	})

	t.Run("Password", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		l, err := svc.Shorten(ctx, "https://example.com/secret", link.Options{Password: "hunter2"})
		require.NoError(t, err)

		stored, err := svc.Inspect(ctx, l.Code)
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", stored.PasswordHash)
		assert.True(t, stored.Protected())

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictPasswordRequired, res.Verdict)

		res, err = svc.Resolve(ctx, l.Code, "wrong")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictPasswordMismatch, res.Verdict)
		assert.Empty(t, res.TargetURL)

		res, err = svc.Resolve(ctx, l.Code, "hunter2")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)
		assert.Equal(t, "https://example.com/secret", res.TargetURL)
	})

	t.Run("PasswordDoesNotSpendClicks", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		limit := int64(1)
		l, err := svc.Shorten(ctx, "https://example.com/guarded", link.Options{Password: "pw", ClickLimit: &limit})
		require.NoError(t, err)

		res, err := svc.Resolve(ctx, l.Code, "bad")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictPasswordMismatch, res.Verdict)

		res, err = svc.Resolve(ctx, l.Code, "pw")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)
	})

	t.Run("AliasCollision", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		first, err := svc.Shorten(ctx, "https://example.com/first", link.Options{CustomAlias: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "abc", first.Code)

		_, err = svc.Shorten(ctx, "https://example.com/second", link.Options{CustomAlias: "abc"})
		require.ErrorIs(t, err, link.ErrAliasTaken)

		res, err := svc.Resolve(ctx, "abc", "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictFound, res.Verdict)
		assert.Equal(t, "https://example.com/first", res.TargetURL)
	})

	t.Run("AliasConcurrent", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		var won, taken atomic.Int32
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Shorten(ctx, fmt.Sprintf("https://example.com/%d", i), link.Options{CustomAlias: "contested"})
				switch {
				case err == nil:
					won.Add(1)
				case assert.ErrorIs(t, err, link.ErrAliasTaken):
					taken.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), won.Load())
		assert.Equal(t, int32(9), taken.Load())
	})

	t.Run("InvalidAlias", func(t *testing.T) {
		svc, _ := setup(t)

		for _, alias := range []string{"ab", "has space", "semi;colon", "health", "API"} {
			_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{CustomAlias: alias})
			require.ErrorIs(t, err, link.ErrInvalidAlias, alias)
		}
	})

	t.Run("Deactivate", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		l, err := svc.Shorten(ctx, "https://example.com/off", link.Options{})
		require.NoError(t, err)

		_, err = svc.Deactivate(ctx, l.Code)
		require.NoError(t, err)

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictInactive, res.Verdict)

		stored, err := svc.Inspect(ctx, l.Code)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
		assert.Equal(t, "https://example.com/off", stored.TargetURL)

		_, err = svc.Deactivate(ctx, "missing")
		require.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		l, err := svc.Shorten(ctx, "https://example.com/bye", link.Options{})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, l.Code))
		require.ErrorIs(t, svc.Delete(ctx, l.Code), link.ErrNotFound)

		res, err := svc.Resolve(ctx, l.Code, "")
		require.NoError(t, err)
		assert.Equal(t, link.VerdictNotFound, res.Verdict)
	})

	t.Run("Batch", func(t *testing.T) {
		svc, _ := setup(t)
		ctx := context.Background()

		urls := []string{"https://a.example", "https://b.example", "https://c.example"}
		links, err := svc.ShortenBatch(ctx, urls)
		require.NoError(t, err)
		require.Len(t, links, len(urls))

		for i, l := range links {
			res, err := svc.Resolve(ctx, l.Code, "")
			require.NoError(t, err)
			assert.Equal(t, urls[i], res.TargetURL)
		}
	})
}
