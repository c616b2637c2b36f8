// Package repository содержит хранилища коротких ссылок и записей о переходах.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tempizhere/linktrack/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

var (
	// ErrNotFound возвращается, когда запись отсутствует в хранилище
	ErrNotFound = errors.New("not found")
	// ErrCodeExists возвращается при попытке занять уже используемый короткий код
	ErrCodeExists = errors.New("short code already exists")
)

// TopLimit ограничивает число строк в каждой группировке статистики
const TopLimit = 10

// DateLimit ограничивает число дней в разбивке переходов по датам
const DateLimit = 30

// LinkRepository определяет интерфейс хранилища коротких ссылок
type LinkRepository interface {
	// FindByCode возвращает ссылку по короткому коду
	FindByCode(ctx context.Context, code string) (*models.ShortLink, error)
	// GetLink возвращает ссылку по идентификатору
	GetLink(ctx context.Context, id string) (*models.ShortLink, error)
	// CreateLink сохраняет новую ссылку
	CreateLink(ctx context.Context, link *models.ShortLink) error
	// UpdateLink перезаписывает изменяемые поля ссылки
	UpdateLink(ctx context.Context, link *models.ShortLink) error
	// DeleteLink удаляет ссылку вместе со всеми её переходами
	DeleteLink(ctx context.Context, id string) error
	// ListLinks возвращает ссылки пользователя, новые первыми
	ListLinks(ctx context.Context, userID string, limit, offset int) ([]models.ShortLink, error)
	// CountLinks возвращает число ссылок и число их владельцев
	CountLinks(ctx context.Context) (links int64, users int64, err error)
}

// ClickRepository определяет интерфейс хранилища переходов
type ClickRepository interface {
	// InsertClick сохраняет запись о переходе
	InsertClick(ctx context.Context, click *models.ClickRecord) error
	// GetClick возвращает переход по идентификатору
	GetClick(ctx context.Context, id string) (*models.ClickRecord, error)
	// ListClicks возвращает переходы по ссылке, новые первыми
	ListClicks(ctx context.Context, linkID string, limit, offset int) ([]models.ClickRecord, error)
	// DeleteClick удаляет один переход
	DeleteClick(ctx context.Context, id string) error
	// DeleteClicksByLink удаляет все переходы ссылки и возвращает их число
	DeleteClicksByLink(ctx context.Context, linkID string) (int64, error)
	// Stats считает агрегированную статистику переходов по ссылке
	Stats(ctx context.Context, linkID string, filter models.StatsFilter) (*models.ClickStats, error)
	// CountClicks возвращает общее число переходов
	CountClicks(ctx context.Context) (int64, error)
}

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// PingContext проверяет соединение с базой данных
	PingContext(ctx context.Context) error
	// Close закрывает соединение с базой данных
	Close() error
	// ExecContext выполняет SQL-команду без возврата результатов
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	// QueryContext выполняет SQL-запрос и возвращает результаты
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// QueryRowContext выполняет SQL-запрос и возвращает одну строку результата
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
