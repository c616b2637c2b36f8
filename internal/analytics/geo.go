package analytics

import (
	"net/http"

	"github.com/tempizhere/linktrack/internal/models"
)

// Заголовки геолокации, которые добавляет платформа
const (
	HeaderGeoCity      = "X-Vercel-IP-City"
	HeaderGeoCountry   = "X-Vercel-IP-Country"
	HeaderGeoRegion    = "X-Vercel-IP-Country-Region"
	HeaderGeoLatitude  = "X-Vercel-IP-Latitude"
	HeaderGeoLongitude = "X-Vercel-IP-Longitude"
	HeaderCFCountry    = "CF-IPCountry"
)

// ParseGeo читает геозаголовки как есть; отсутствующие поля остаются nil
func ParseGeo(h http.Header) models.Geo {
	geo := models.Geo{
		City:      headerValue(h, HeaderGeoCity),
		Country:   headerValue(h, HeaderGeoCountry),
		Region:    headerValue(h, HeaderGeoRegion),
		Latitude:  headerValue(h, HeaderGeoLatitude),
		Longitude: headerValue(h, HeaderGeoLongitude),
	}
	if geo.Country == nil {
		geo.Country = headerValue(h, HeaderCFCountry)
	}
	return geo
}

func headerValue(h http.Header, name string) *string {
	v := h.Get(name)
	if v == "" {
		return nil
	}
	return &v
}
