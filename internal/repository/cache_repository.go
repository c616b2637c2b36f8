package repository

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/tempizhere/linktrack/internal/metrics"
	"github.com/tempizhere/linktrack/internal/models"
	"go.uber.org/zap"
)

const (
	linkCachePrefix   = "link:code:"
	linkVersionPrefix = "link:ver:"
)

// errStaleFill означает, что ссылку изменили, пока её читали из хранилища
var errStaleFill = errors.New("link changed during cache fill")

// CachedLinkRepository кеширует поиск ссылок по коду в Redis.
// Отсутствующие коды не кешируются, ошибки Redis не прерывают запрос.
// Каждая запись меняет версию кода, и заполнение кеша выполняется только
// если версия не изменилась с момента чтения из хранилища.
type CachedLinkRepository struct {
	LinkRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLinkRepository оборачивает хранилище ссылок кешем
func NewCachedLinkRepository(next LinkRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedLinkRepository {
	return &CachedLinkRepository{
		LinkRepository: next,
		client:         client,
		ttl:            ttl,
		logger:         logger,
	}
}

func linkCacheKey(code string) string {
	return linkCachePrefix + code
}

func linkVersionKey(code string) string {
	return linkVersionPrefix + code
}

// FindByCode читает ссылку из кеша, при промахе обращается к хранилищу
func (r *CachedLinkRepository) FindByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	raw, err := r.client.Get(ctx, linkCacheKey(code)).Bytes()
	switch {
	case err == nil:
		var link models.ShortLink
		decodeErr := json.Unmarshal(raw, &link)
		if decodeErr == nil {
			metrics.CacheHits.Inc()
			return &link, nil
		}
		r.logger.Warn("Failed to decode cached link", zap.String("code", code), zap.Error(decodeErr))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Failed to read link from cache", zap.String("code", code), zap.Error(err))
	}
	metrics.CacheMisses.Inc()

	version, err := r.client.Get(ctx, linkVersionKey(code)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		// без версии нельзя проверить конкурентную запись, поэтому кеш не заполняется
		r.logger.Warn("Failed to read link version", zap.String("code", code), zap.Error(err))
		return r.LinkRepository.FindByCode(ctx, code)
	}

	link, err := r.LinkRepository.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := r.fill(ctx, link, version); err != nil {
		if errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
			r.logger.Debug("Skipped stale cache fill", zap.String("code", code))
		} else {
			r.logger.Warn("Failed to write link to cache", zap.String("code", code), zap.Error(err))
		}
	}
	return link, nil
}

// fill кладёт ссылку в кеш, если версия кода всё ещё равна version
func (r *CachedLinkRepository) fill(ctx context.Context, link *models.ShortLink, version string) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	verKey := linkVersionKey(link.Code)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, linkCacheKey(link.Code), data, r.ttl)
			return nil
		})
		return err
	}, verKey)
}

// UpdateLink обновляет ссылку и сбрасывает кеш старого кода
func (r *CachedLinkRepository) UpdateLink(ctx context.Context, link *models.ShortLink) error {
	old, err := r.LinkRepository.GetLink(ctx, link.ID)
	if err != nil {
		return err
	}
	if err := r.LinkRepository.UpdateLink(ctx, link); err != nil {
		return err
	}
	codes := []string{old.Code}
	if link.Code != old.Code {
		codes = append(codes, link.Code)
	}
	r.invalidate(ctx, codes...)
	return nil
}

// DeleteLink удаляет ссылку и её запись в кеше
func (r *CachedLinkRepository) DeleteLink(ctx context.Context, id string) error {
	old, err := r.LinkRepository.GetLink(ctx, id)
	if err != nil {
		return err
	}
	if err := r.LinkRepository.DeleteLink(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, old.Code)
	return nil
}

func (r *CachedLinkRepository) invalidate(ctx context.Context, codes ...string) {
	err := r.bumpAndDelete(ctx, codes)
	if err != nil {
		// запись в хранилище уже прошла, поэтому повторяем без отмены запроса
		err = r.bumpAndDelete(context.WithoutCancel(ctx), codes)
	}
	if err != nil {
		r.logger.Warn("Failed to invalidate cached link", zap.Strings("codes", codes), zap.Error(err))
	}
}

// bumpAndDelete меняет версию кодов до удаления, чтобы незавершённые заполнения не вернули старую запись
func (r *CachedLinkRepository) bumpAndDelete(ctx context.Context, codes []string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, code := range codes {
			pipe.Incr(ctx, linkVersionKey(code))
			pipe.Expire(ctx, linkVersionKey(code), r.versionTTL())
			pipe.Del(ctx, linkCacheKey(code))
		}
		return nil
	})
	return err
}

// versionTTL переживает любое заполнение, начатое до записи
func (r *CachedLinkRepository) versionTTL() time.Duration {
	const minVersionTTL = time.Hour
	if ttl := 2 * r.ttl; ttl > minVersionTTL {
		return ttl
	}
	return minVersionTTL
}
