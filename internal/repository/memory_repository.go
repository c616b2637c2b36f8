package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tempizhere/linktrack/internal/models"
)

// MemoryRepository реализует LinkRepository и ClickRepository в памяти процесса
type MemoryRepository struct {
	mu     sync.RWMutex
	links  map[string]models.ShortLink
	codes  map[string]string
	clicks []models.ClickRecord
}

// NewMemoryRepository создаёт новый экземпляр MemoryRepository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		links: make(map[string]models.ShortLink),
		codes: make(map[string]string),
	}
}

// FindByCode возвращает ссылку по короткому коду
func (r *MemoryRepository) FindByCode(_ context.Context, code string) (*models.ShortLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.codes[code]
	if !ok {
		return nil, ErrNotFound
	}
	link := r.links[id]
	return &link, nil
}

// GetLink возвращает ссылку по идентификатору
func (r *MemoryRepository) GetLink(_ context.Context, id string) (*models.ShortLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &link, nil
}

// CreateLink сохраняет новую ссылку, код должен быть свободен
func (r *MemoryRepository) CreateLink(_ context.Context, link *models.ShortLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.codes[link.Code]; taken {
		return ErrCodeExists
	}
	r.links[link.ID] = *link
	r.codes[link.Code] = link.ID
	return nil
}

// UpdateLink перезаписывает ссылку, освобождая старый код при его смене
func (r *MemoryRepository) UpdateLink(_ context.Context, link *models.ShortLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.links[link.ID]
	if !ok {
		return ErrNotFound
	}
	if old.Code != link.Code {
		if _, taken := r.codes[link.Code]; taken {
			return ErrCodeExists
		}
		delete(r.codes, old.Code)
		r.codes[link.Code] = link.ID
	}
	r.links[link.ID] = *link
	return nil
}

// DeleteLink удаляет ссылку и все её переходы
func (r *MemoryRepository) DeleteLink(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.links, id)
	delete(r.codes, link.Code)
	r.removeClicks(func(c models.ClickRecord) bool { return c.LinkID == id })
	return nil
}

// ListLinks возвращает ссылки пользователя, новые первыми
func (r *MemoryRepository) ListLinks(_ context.Context, userID string, limit, offset int) ([]models.ShortLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var links []models.ShortLink
	for _, link := range r.links {
		if link.UserID == userID {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].ID > links[j].ID
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return page(links, limit, offset), nil
}

// CountLinks возвращает число ссылок и число уникальных владельцев
func (r *MemoryRepository) CountLinks(_ context.Context) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make(map[string]struct{})
	for _, link := range r.links {
		if link.UserID != "" {
			users[link.UserID] = struct{}{}
		}
	}
	return int64(len(r.links)), int64(len(users)), nil
}

// InsertClick сохраняет запись о переходе
func (r *MemoryRepository) InsertClick(_ context.Context, click *models.ClickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[click.LinkID]; !ok {
		return ErrNotFound
	}
	r.clicks = append(r.clicks, *click)
	return nil
}

// GetClick возвращает переход по идентификатору
func (r *MemoryRepository) GetClick(_ context.Context, id string) (*models.ClickRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, click := range r.clicks {
		if click.ID == id {
			return &click, nil
		}
	}
	return nil, ErrNotFound
}

// ListClicks возвращает переходы по ссылке, новые первыми
func (r *MemoryRepository) ListClicks(_ context.Context, linkID string, limit, offset int) ([]models.ClickRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var clicks []models.ClickRecord
	for i := len(r.clicks) - 1; i >= 0; i-- {
		if r.clicks[i].LinkID == linkID {
			clicks = append(clicks, r.clicks[i])
		}
	}
	sort.SliceStable(clicks, func(i, j int) bool {
		return clicks[i].ClickedAt.After(clicks[j].ClickedAt)
	})
	return page(clicks, limit, offset), nil
}

// DeleteClick удаляет один переход
func (r *MemoryRepository) DeleteClick(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.removeClicks(func(c models.ClickRecord) bool { return c.ID == id }) == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClicksByLink удаляет все переходы ссылки
func (r *MemoryRepository) DeleteClicksByLink(_ context.Context, linkID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeClicks(func(c models.ClickRecord) bool { return c.LinkID == linkID }), nil
}

// Stats считает статистику по переходам ссылки в порядке их сохранения
func (r *MemoryRepository) Stats(_ context.Context, linkID string, filter models.StatsFilter) (*models.ClickStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var clicks []models.ClickRecord
	for _, click := range r.clicks {
		if click.LinkID != linkID {
			continue
		}
		if filter.From != nil && click.ClickedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && click.ClickedAt.After(*filter.To) {
			continue
		}
		clicks = append(clicks, click)
	}
	return Aggregate(clicks), nil
}

// CountClicks возвращает общее число переходов
func (r *MemoryRepository) CountClicks(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.clicks)), nil
}

// Clear очищает хранилище
func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links = make(map[string]models.ShortLink)
	r.codes = make(map[string]string)
	r.clicks = nil
}

// removeClicks удаляет подходящие переходы, вызывается под блокировкой записи
func (r *MemoryRepository) removeClicks(match func(models.ClickRecord) bool) int64 {
	kept := r.clicks[:0]
	var removed int64
	for _, click := range r.clicks {
		if match(click) {
			removed++
			continue
		}
		kept = append(kept, click)
	}
	r.clicks = kept
	return removed
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
