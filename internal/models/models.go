// Package models содержит доменные типы сервиса коротких ссылок и аналитики переходов.
package models

import "time"

// DeviceType описывает класс устройства посетителя
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceUnknown DeviceType = "unknown"
)

// ShortLink связывает короткий код с целевым URL
type ShortLink struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	URL       string     `json:"url"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    string     `json:"user_id"`
}

// ClickRecord описывает один учтённый переход по короткой ссылке.
// IP посетителя хранится только в виде хеша.
type ClickRecord struct {
	ID             string     `json:"id"`
	LinkID         string     `json:"link_id"`
	ClickedAt      time.Time  `json:"clicked_at"`
	UserAgent      *string    `json:"user_agent,omitempty"`
	Browser        *string    `json:"browser,omitempty"`
	BrowserVersion *string    `json:"browser_version,omitempty"`
	OS             *string    `json:"os,omitempty"`
	OSVersion      *string    `json:"os_version,omitempty"`
	Device         DeviceType `json:"device"`
	IPHash         *string    `json:"ip_hash,omitempty"`
	Country        *string    `json:"country,omitempty"`
	Region         *string    `json:"region,omitempty"`
	City           *string    `json:"city,omitempty"`
	Latitude       *string    `json:"latitude,omitempty"`
	Longitude      *string    `json:"longitude,omitempty"`
	Referrer       *string    `json:"referrer,omitempty"`
	ReferrerDomain *string    `json:"referrer_domain,omitempty"`
}

// ParsedUserAgent содержит разобранные поля User-Agent
type ParsedUserAgent struct {
	Browser        string
	BrowserVersion string
	OS             string
	OSVersion      string
	Device         DeviceType
}

// Geo содержит геоданные из заголовков платформы
type Geo struct {
	City      *string
	Country   *string
	Region    *string
	Latitude  *string
	Longitude *string
}

// StatsFilter ограничивает выборку переходов по времени (обе границы включительно)
type StatsFilter struct {
	From *time.Time
	To   *time.Time
}

// Bucket описывает строку группировки до привязки к измерению
type Bucket struct {
	Value  *string
	Clicks int64
}

// CountryClicks содержит число переходов из страны
type CountryClicks struct {
	Country *string `json:"country"`
	Clicks  int64   `json:"clicks"`
}

// ReferrerClicks содержит число переходов с домена-источника
type ReferrerClicks struct {
	ReferrerDomain *string `json:"referrer_domain"`
	Clicks         int64   `json:"clicks"`
}

// BrowserClicks содержит число переходов из браузера
type BrowserClicks struct {
	Browser *string `json:"browser"`
	Clicks  int64   `json:"clicks"`
}

// DeviceClicks содержит число переходов с класса устройств
type DeviceClicks struct {
	Device *string `json:"device"`
	Clicks int64   `json:"clicks"`
}

// ByCountry привязывает строку группировки к стране
func ByCountry(b Bucket) CountryClicks { return CountryClicks{Country: b.Value, Clicks: b.Clicks} }

// ByReferrer привязывает строку группировки к домену-источнику
func ByReferrer(b Bucket) ReferrerClicks {
	return ReferrerClicks{ReferrerDomain: b.Value, Clicks: b.Clicks}
}

// ByBrowser привязывает строку группировки к браузеру
func ByBrowser(b Bucket) BrowserClicks { return BrowserClicks{Browser: b.Value, Clicks: b.Clicks} }

// ByDevice привязывает строку группировки к классу устройства
func ByDevice(b Bucket) DeviceClicks { return DeviceClicks{Device: b.Value, Clicks: b.Clicks} }

// MapBuckets переводит строки группировки в записи конкретного измерения.
// Пустой вход даёт пустой, а не nil срез.
func MapBuckets[T any](in []Bucket, f func(Bucket) T) []T {
	out := make([]T, 0, len(in))
	for _, b := range in {
		out = append(out, f(b))
	}
	return out
}

// DateLayout задаёт формат даты в разбивке переходов по дням
const DateLayout = "2006-01-02"

// DateClicks содержит число переходов за календарный день (UTC)
type DateClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// ClickStats содержит агрегированную статистику по ссылке
type ClickStats struct {
	TotalClicks    int64            `json:"total_clicks"`
	UniqueVisitors int64            `json:"unique_visitors"`
	TopCountries   []CountryClicks  `json:"top_countries"`
	TopReferrers   []ReferrerClicks `json:"top_referrers"`
	TopBrowsers    []BrowserClicks  `json:"top_browsers"`
	TopDevices     []DeviceClicks   `json:"top_devices"`
	ClicksByDate   []DateClicks     `json:"clicks_by_date"`
}

// ServiceStats содержит общие счётчики сервиса
type ServiceStats struct {
	Links  int64 `json:"links"`
	Clicks int64 `json:"clicks"`
	Users  int64 `json:"users"`
}

// CreateLinkRequest представляет запрос на создание короткой ссылки
type CreateLinkRequest struct {
	URL       string     `json:"url" validate:"required,url,max=2048"`
	Code      string     `json:"code,omitempty" validate:"omitempty,shortcode"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UpdateLinkRequest представляет частичное обновление ссылки; nil-поля не меняются
type UpdateLinkRequest struct {
	URL          *string    `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	Code         *string    `json:"code,omitempty" validate:"omitempty,shortcode"`
	IsActive     *bool      `json:"is_active,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ClearExpires bool       `json:"clear_expires_at,omitempty"`
}

// LinkResponse возвращает ссылку вместе с полным коротким URL
type LinkResponse struct {
	ShortLink
	ShortURL string `json:"short_url"`
}
