// Package proto содержит типы сообщений и описание gRPC сервиса ссылок.
// Сообщения передаются в JSON через кодек CodecName.
package proto

import (
	"time"

	"github.com/tempizhere/linktrack/internal/models"
)

// ResolveRequest представляет запрос разрешения короткого кода
type ResolveRequest struct {
	Code string `json:"code"`
}

// ResolveResponse содержит целевой URL успешного разрешения
type ResolveResponse struct {
	URL string `json:"url"`
}

// Link описывает короткую ссылку в ответах сервиса
type Link struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	URL       string     `json:"url"`
	ShortURL  string     `json:"short_url"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateLinkRequest представляет запрос на создание ссылки
type CreateLinkRequest struct {
	URL       string     `json:"url"`
	Code      string     `json:"code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateLinkResponse содержит созданную ссылку
type CreateLinkResponse struct {
	Link *Link `json:"link"`
}

// GetLinkStatsRequest представляет запрос статистики по ссылке; границы включительно
type GetLinkStatsRequest struct {
	LinkID string     `json:"link_id"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
}

// GetLinkStatsResponse содержит агрегированную статистику
type GetLinkStatsResponse struct {
	Stats *models.ClickStats `json:"stats"`
}

// GetServiceStatsRequest представляет запрос общих счётчиков
type GetServiceStatsRequest struct{}

// GetServiceStatsResponse содержит общее число ссылок, переходов и владельцев
type GetServiceStatsResponse struct {
	Links  int64 `json:"links"`
	Clicks int64 `json:"clicks"`
	Users  int64 `json:"users"`
}

// PingRequest представляет запрос проверки состояния
type PingRequest struct{}

// PingResponse сообщает доступность базы данных
type PingResponse struct {
	DatabaseAvailable bool `json:"database_available"`
}
