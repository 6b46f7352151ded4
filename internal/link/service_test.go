package link_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shortlink/internal/link"
	"shortlink/internal/link/mocks"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type deps struct {
	store  *mocks.MockStore
	gen    *mocks.MockCodeGenerator
	hasher *mocks.MockPasswordHasher
}

func newService(t *testing.T, cfg link.Config) (*link.Service, deps) {
	t.Helper()

	d := deps{
		store:  mocks.NewMockStore(t),
		gen:    mocks.NewMockCodeGenerator(t),
		hasher: mocks.NewMockPasswordHasher(t),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://short.url"
	}
	svc := link.NewService(d.store, d.gen, d.hasher, cfg,
		link.WithClock(func() time.Time { return testNow }))
	return svc, d
}

func withCode(code string) any {
	return mock.MatchedBy(func(l *link.ShortLink) bool { return l.Code == code })
}

func TestShortURL(t *testing.T) {
	svc, _ := newService(t, link.Config{BaseURL: "https://sho.rt/"})
	assert.Equal(t, "https://sho.rt/abc123", svc.ShortURL("abc123"))
}

func TestShorten_Success(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.gen.EXPECT().Generate(6).Return("xyz789", nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("xyz789"), link.DefaultTTL).Return(true, nil)

	l, err := svc.Shorten(context.Background(), "  https://example.com  ", link.Options{})
	require.NoError(t, err)

	assert.Equal(t, "xyz789", l.Code)
	assert.Equal(t, "https://example.com", l.TargetURL)
	assert.Equal(t, testNow, l.CreatedAt)
	assert.Equal(t, testNow.Add(link.DefaultTTL), l.EvictAt)
	assert.Nil(t, l.ExpiresAt)
	assert.True(t, l.IsActive)
	assert.NotEqual(t, uuid.Nil, l.ID)
}

func TestShorten_InvalidInputTouchesNothing(t *testing.T) {
	past := testNow.Add(-time.Minute)
	negative := int64(-1)

	tests := []struct {
		name    string
		url     string
		opts    link.Options
		wantErr error
	}{
		{name: "empty url", url: "", wantErr: link.ErrInvalidURL},
		{name: "relative url", url: "/path", wantErr: link.ErrInvalidURL},
		{name: "unsupported scheme", url: "javascript:alert(1)", wantErr: link.ErrInvalidURL},
		{name: "missing host", url: "http://", wantErr: link.ErrInvalidURL},
		{name: "short alias", url: "https://example.com", opts: link.Options{CustomAlias: "ab"}, wantErr: link.ErrInvalidAlias},
		{name: "alias with slash", url: "https://example.com", opts: link.Options{CustomAlias: "a/b/c"}, wantErr: link.ErrInvalidAlias},
		{name: "reserved alias", url: "https://example.com", opts: link.Options{CustomAlias: "shorten"}, wantErr: link.ErrInvalidAlias},
		{name: "expiry in past", url: "https://example.com", opts: link.Options{ExpiresAt: &past}, wantErr: link.ErrInvalidExpiry},
		{name: "expiry now", url: "https://example.com", opts: link.Options{ExpiresAt: &testNow}, wantErr: link.ErrInvalidExpiry},
		{name: "negative click limit", url: "https://example.com", opts: link.Options{ClickLimit: &negative}, wantErr: link.ErrInvalidClickLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, link.Config{})

			_, err := svc.Shorten(context.Background(), tt.url, tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, link.IsUserError(err))
		})
	}
}

func TestShorten_ExpiryDrivesTTL(t *testing.T) {
	svc, d := newService(t, link.Config{})
	expiresAt := testNow.Add(90 * time.Minute)

	d.gen.EXPECT().Generate(6).Return("abc123", nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("abc123"), 90*time.Minute+link.DefaultExpiryGrace).Return(true, nil)

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{ExpiresAt: &expiresAt})
	require.NoError(t, err)
	require.NotNil(t, l.ExpiresAt)
	assert.Equal(t, expiresAt, *l.ExpiresAt)
	assert.Equal(t, expiresAt.Add(link.DefaultExpiryGrace), l.EvictAt)
}

func TestShorten_ConfiguredExpiryGrace(t *testing.T) {
	svc, d := newService(t, link.Config{ExpiryGrace: 10 * time.Minute})
	expiresAt := testNow.Add(time.Hour)

	d.gen.EXPECT().Generate(6).Return("abc123", nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("abc123"), 70*time.Minute).Return(true, nil)

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{ExpiresAt: &expiresAt})
	require.NoError(t, err)
	assert.True(t, l.EvictAt.After(*l.ExpiresAt))
}

func TestShorten_SkipsReservedGeneratedCodes(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.gen.EXPECT().Generate(6).Return("health", nil).Once()
	d.gen.EXPECT().Generate(6).Return("Shorten", nil).Once()
	d.gen.EXPECT().Generate(6).Return("abc123", nil).Once()
	d.store.EXPECT().Claim(mock.Anything, withCode("abc123"), link.DefaultTTL).Return(true, nil).Once()

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.NoError(t, err)
	assert.Equal(t, "abc123", l.Code)
}

func TestShorten_ConfiguredDefaults(t *testing.T) {
	svc, d := newService(t, link.Config{DefaultTTL: time.Hour, CodeLength: 8})

	d.gen.EXPECT().Generate(8).Return("abcd1234", nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("abcd1234"), time.Hour).Return(true, nil)

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.NoError(t, err)
}

func TestShorten_PasswordHashedBeforeWrite(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.hasher.EXPECT().Hash("s3cret").Return("$argon2id$hash", nil)
	d.gen.EXPECT().Generate(6).Return("abc123", nil)
	d.store.EXPECT().Claim(mock.Anything,
		mock.MatchedBy(func(l *link.ShortLink) bool { return l.PasswordHash == "$argon2id$hash" }),
		mock.Anything,
	).Return(true, nil)

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{Password: "s3cret"})
	require.NoError(t, err)
	assert.True(t, l.Protected())
}

func TestShorten_HashErrorWritesNothing(t *testing.T) {
	svc, d := newService(t, link.Config{})
	hashErr := errors.New("out of memory")

	d.hasher.EXPECT().Hash("pw").Return("", hashErr)

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{Password: "pw"})
	require.ErrorIs(t, err, hashErr)
	assert.False(t, link.IsUserError(err))
}

func TestShorten_LostClaimRetries(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.gen.EXPECT().Generate(6).Return("first1", nil).Once()
	d.gen.EXPECT().Generate(6).Return("second", nil).Once()
	d.store.EXPECT().Claim(mock.Anything, withCode("first1"), mock.Anything).Return(false, nil).Once()
	d.store.EXPECT().Claim(mock.Anything, withCode("second"), mock.Anything).Return(true, nil).Once()

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.NoError(t, err)
	assert.Equal(t, "second", l.Code)
}

func TestShorten_AllocationExhausted(t *testing.T) {
	svc, d := newService(t, link.Config{MaxAttempts: 3})

	d.gen.EXPECT().Generate(6).Return("dupdup", nil).Times(3)
	d.store.EXPECT().Claim(mock.Anything, withCode("dupdup"), mock.Anything).Return(false, nil).Times(3)

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.ErrorIs(t, err, link.ErrAllocationExhausted)
	assert.False(t, link.IsUserError(err))
}

func TestShorten_StorageError(t *testing.T) {
	svc, d := newService(t, link.Config{})
	storeErr := errors.New("connection refused")

	d.gen.EXPECT().Generate(6).Return("abc123", nil).Once()
	d.store.EXPECT().Claim(mock.Anything, mock.Anything, mock.Anything).Return(false, storeErr).Once()

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.ErrorIs(t, err, link.ErrStorage)
	require.ErrorIs(t, err, storeErr)
}

func TestShorten_StoreCallsAreBounded(t *testing.T) {
	svc, d := newService(t, link.Config{StoreTimeout: time.Second})

	d.gen.EXPECT().Generate(6).Return("abc123", nil)
	d.store.EXPECT().Claim(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *link.ShortLink, _ time.Duration) (bool, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
			return true, nil
		})

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{})
	require.NoError(t, err)
}

func TestShorten_CustomAlias(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.store.EXPECT().Exists(mock.Anything, "my-link").Return(false, nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("my-link"), link.DefaultTTL).Return(true, nil)

	l, err := svc.Shorten(context.Background(), "https://example.com", link.Options{CustomAlias: "my-link"})
	require.NoError(t, err)
	assert.Equal(t, "my-link", l.Code)
}

func TestShorten_CustomAliasTaken(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.store.EXPECT().Exists(mock.Anything, "my-link").Return(true, nil)

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{CustomAlias: "my-link"})
	require.ErrorIs(t, err, link.ErrAliasTaken)
}

func TestShorten_CustomAliasLostRace(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.store.EXPECT().Exists(mock.Anything, "my-link").Return(false, nil)
	d.store.EXPECT().Claim(mock.Anything, withCode("my-link"), mock.Anything).Return(false, nil)

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{CustomAlias: "my-link"})
	require.ErrorIs(t, err, link.ErrAliasTaken)
}

func TestShorten_CustomAliasExistsError(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.store.EXPECT().Exists(mock.Anything, "my-link").Return(false, errors.New("timeout"))

	_, err := svc.Shorten(context.Background(), "https://example.com", link.Options{CustomAlias: "my-link"})
	require.ErrorIs(t, err, link.ErrStorage)
}

func TestShortenBatch_KeepsOrder(t *testing.T) {
	svc, d := newService(t, link.Config{BatchConcurrency: 1})

	d.gen.EXPECT().Generate(6).Return("code01", nil).Once()
	d.gen.EXPECT().Generate(6).Return("code02", nil).Once()
	d.store.EXPECT().Claim(mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Times(2)

	links, err := svc.ShortenBatch(context.Background(), []string{"https://a.example", "https://b.example"})
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "code01", links[0].Code)
	assert.Equal(t, "https://a.example", links[0].TargetURL)
	assert.Equal(t, "code02", links[1].Code)
	assert.Equal(t, "https://b.example", links[1].TargetURL)
}

func TestShortenBatch_Empty(t *testing.T) {
	svc, _ := newService(t, link.Config{})

	links, err := svc.ShortenBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestShortenBatch_ReportsFailingIndex(t *testing.T) {
	svc, d := newService(t, link.Config{})

	d.gen.EXPECT().Generate(6).Return("code01", nil).Maybe()
	d.store.EXPECT().Claim(mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Maybe()

	_, err := svc.ShortenBatch(context.Background(), []string{"https://a.example", "not-a-url"})
	require.ErrorIs(t, err, link.ErrInvalidURL)
	assert.Contains(t, err.Error(), "url 1")
}

func TestInspect(t *testing.T) {
	svc, d := newService(t, link.Config{})
	want := &link.ShortLink{Code: "abc123", TargetURL: "https://example.com"}

	d.store.EXPECT().Get(mock.Anything, "abc123").Return(want, nil)
	d.store.EXPECT().Get(mock.Anything, "gone01").Return(nil, link.ErrNotFound)

	got, err := svc.Inspect(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Inspect(context.Background(), "gone01")
	require.ErrorIs(t, err, link.ErrNotFound)

	_, err = svc.Inspect(context.Background(), "../etc")
	require.ErrorIs(t, err, link.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, d := newService(t, link.Config{})
	storeErr := errors.New("broken pipe")

	d.store.EXPECT().Delete(mock.Anything, "abc123").Return(nil).Once()
	d.store.EXPECT().Delete(mock.Anything, "gone01").Return(link.ErrNotFound).Once()
	d.store.EXPECT().Delete(mock.Anything, "broken").Return(storeErr).Once()

	require.NoError(t, svc.Delete(context.Background(), "abc123"))
	require.ErrorIs(t, svc.Delete(context.Background(), "gone01"), link.ErrNotFound)

	err := svc.Delete(context.Background(), "broken")
	require.ErrorIs(t, err, link.ErrStorage)
	require.ErrorIs(t, err, storeErr)
}

func TestDeactivate(t *testing.T) {
	svc, d := newService(t, link.Config{})
	stored := &link.ShortLink{Code: "abc123", IsActive: true}

	d.store.EXPECT().Update(mock.Anything, "abc123", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, fn func(*link.ShortLink) (bool, error)) (*link.ShortLink, error) {
			changed, err := fn(stored)
			assert.True(t, changed)
			return stored, err
		})

	l, err := svc.Deactivate(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, l.IsActive)
}

type purgingStore struct {
	*mocks.MockStore
	purged int64
}

func (p *purgingStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	if !now.Equal(testNow) {
		return 0, errors.New("unexpected clock")
	}
	return p.purged, nil
}

func TestPurgeExpired(t *testing.T) {
	svc, _ := newService(t, link.Config{})

	n, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "stores with native TTL have nothing to purge")

	store := &purgingStore{MockStore: mocks.NewMockStore(t), purged: 3}
	svc = link.NewService(store, mocks.NewMockCodeGenerator(t), mocks.NewMockPasswordHasher(t), link.Config{},
		link.WithClock(func() time.Time { return testNow }))

	n, err = svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestValidAlias(t *testing.T) {
	tests := []struct {
		alias string
		want  bool
	}{
		{"abc", true},
		{"my_link-2024", true},
		{"ab", false},
		{"this-alias-is-way-too-long-to-be-accepted", false},
		{"with space", false},
		{"üñí", false},
		{"Health", false},
		{"debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			assert.Equal(t, tt.want, link.ValidAlias(tt.alias))
		})
	}
}
