package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/linktrack/internal/models"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T, next LinkRepository) (*CachedLinkRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedLinkRepository(next, client, time.Minute, zap.NewNop()), mr
}

func TestCachedLinkRepository_ReadThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	link := testLink("url_1", "abc123", "usr_1", time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC))

	next := NewMockLinkRepository(ctrl)
	next.EXPECT().FindByCode(gomock.Any(), "abc123").Return(link, nil).Times(1)

	cache, mr := newTestCache(t, next)

	first, err := cache.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, link.URL, first.URL)
	assert.True(t, mr.Exists("link:code:abc123"))

	// Второй запрос обслуживается из кеша
	second, err := cache.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, link.ID, second.ID)
	assert.True(t, link.CreatedAt.Equal(second.CreatedAt))

	ttl := mr.TTL("link:code:abc123")
	assert.Equal(t, time.Minute, ttl)
}

func TestCachedLinkRepository_MissIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := NewMockLinkRepository(ctrl)
	next.EXPECT().FindByCode(gomock.Any(), "nope").Return(nil, ErrNotFound).Times(2)

	cache, mr := newTestCache(t, next)

	for i := 0; i < 2; i++ {
		_, err := cache.FindByCode(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.False(t, mr.Exists("link:code:nope"))
}

func TestCachedLinkRepository_RedisDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	link := testLink("url_1", "abc123", "usr_1", time.Now())
	next := NewMockLinkRepository(ctrl)
	next.EXPECT().FindByCode(gomock.Any(), "abc123").Return(link, nil)

	cache, mr := newTestCache(t, next)
	mr.Close()

	got, err := cache.FindByCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "url_1", got.ID)
}

func TestCachedLinkRepository_Invalidation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRepository()
	require.NoError(t, store.CreateLink(ctx, testLink("url_1", "abc123", "usr_1", time.Now())))

	cache, mr := newTestCache(t, store)

	_, err := cache.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, mr.Exists("link:code:abc123"))

	link, err := cache.GetLink(ctx, "url_1")
	require.NoError(t, err)
	link.IsActive = false
	link.Code = "xyz789"
	require.NoError(t, cache.UpdateLink(ctx, link))
	assert.False(t, mr.Exists("link:code:abc123"))

	got, err := cache.FindByCode(ctx, "xyz789")
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, cache.DeleteLink(ctx, "url_1"))
	assert.False(t, mr.Exists("link:code:xyz789"))

	_, err = cache.FindByCode(ctx, "xyz789")
	assert.ErrorIs(t, err, ErrNotFound)
}

// gatedLinkStore задерживает первое чтение по коду, пока тест не откроет шлюз
type gatedLinkStore struct {
	LinkRepository
	read    chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedLinkStore(next LinkRepository) *gatedLinkStore {
	return &gatedLinkStore{
		LinkRepository: next,
		read:           make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (g *gatedLinkStore) FindByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	link, err := g.LinkRepository.FindByCode(ctx, code)
	g.once.Do(func() {
		close(g.read)
		<-g.release
	})
	return link, err
}

func TestCachedLinkRepository_ConcurrentDisableIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRepository()
	require.NoError(t, store.CreateLink(ctx, testLink("url_1", "abc123", "usr_1", time.Now())))

	gated := newGatedLinkStore(store)
	cache, mr := newTestCache(t, gated)

	type result struct {
		link *models.ShortLink
		err  error
	}
	done := make(chan result, 1)
	go func() {
		link, err := cache.FindByCode(ctx, "abc123")
		done <- result{link, err}
	}()

	// Чтение из хранилища уже вернуло активную ссылку, но в кеш ещё не попало
	<-gated.read
	link, err := cache.GetLink(ctx, "url_1")
	require.NoError(t, err)
	link.IsActive = false
	require.NoError(t, cache.UpdateLink(ctx, link))
	close(gated.release)

	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.link.IsActive)
	assert.False(t, mr.Exists("link:code:abc123"))

	got, err := cache.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCachedLinkRepository_ConcurrentDeleteIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRepository()
	require.NoError(t, store.CreateLink(ctx, testLink("url_1", "abc123", "usr_1", time.Now())))

	gated := newGatedLinkStore(store)
	cache, mr := newTestCache(t, gated)

	done := make(chan error, 1)
	go func() {
		_, err := cache.FindByCode(ctx, "abc123")
		done <- err
	}()

	<-gated.read
	require.NoError(t, cache.DeleteLink(ctx, "url_1"))
	close(gated.release)
	require.NoError(t, <-done)

	assert.False(t, mr.Exists("link:code:abc123"))
	_, err := cache.FindByCode(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedLinkRepository_WriteBumpsVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRepository()
	require.NoError(t, store.CreateLink(ctx, testLink("url_1", "abc123", "usr_1", time.Now())))

	cache, mr := newTestCache(t, store)

	link, err := cache.GetLink(ctx, "url_1")
	require.NoError(t, err)
	link.URL = "https://example.org"
	require.NoError(t, cache.UpdateLink(ctx, link))

	version, err := mr.Get("link:ver:abc123")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
	assert.Equal(t, time.Hour, mr.TTL("link:ver:abc123"))

	// После записи заполнение снова разрешено
	got, err := cache.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", got.URL)
	assert.True(t, mr.Exists("link:code:abc123"))
}
