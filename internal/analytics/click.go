package analytics

import (
	"net/http"
	"time"

	"github.com/tempizhere/linktrack/internal/models"
)

// BuildClick собирает запись о переходе из заголовков запроса.
// Идентификатор записи заполняет вызывающий код.
func BuildClick(linkID string, h http.Header, now time.Time, hasher Hasher) models.ClickRecord {
	click := models.ClickRecord{
		LinkID:    linkID,
		ClickedAt: now,
		Device:    models.DeviceUnknown,
	}

	if ua := h.Get("User-Agent"); ua != "" {
		parsed := ParseUserAgent(ua)
		click.UserAgent = &ua
		click.Browser = &parsed.Browser
		click.BrowserVersion = &parsed.BrowserVersion
		click.OS = &parsed.OS
		click.OSVersion = &parsed.OSVersion
		click.Device = parsed.Device
	}

	click.IPHash = hasher.Hash(ClientIP(h))

	geo := ParseGeo(h)
	click.Country = geo.Country
	click.Region = geo.Region
	click.City = geo.City
	click.Latitude = geo.Latitude
	click.Longitude = geo.Longitude

	if ref := h.Get("Referer"); ref != "" {
		click.Referrer = &ref
		click.ReferrerDomain = ReferrerDomain(ref)
	}

	return click
}
