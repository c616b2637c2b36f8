package analytics

import (
	"github.com/mileusna/useragent"
	"github.com/tempizhere/linktrack/internal/models"
)

// Unknown подставляется вместо нераспознанных полей User-Agent
const Unknown = "Unknown"

// ParseUserAgent разбирает строку User-Agent на браузер, ОС и класс устройства.
// Десктоп определяется по распознанной ОС без признаков телефона или планшета.
func ParseUserAgent(raw string) models.ParsedUserAgent {
	ua := useragent.Parse(raw)

	parsed := models.ParsedUserAgent{
		Browser:        orUnknown(ua.Name),
		BrowserVersion: orUnknown(ua.Version),
		OS:             orUnknown(ua.OS),
		OSVersion:      orUnknown(ua.OSVersion),
		Device:         models.DeviceUnknown,
	}

	switch {
	case ua.Tablet:
		parsed.Device = models.DeviceTablet
	case ua.Mobile:
		parsed.Device = models.DeviceMobile
	case ua.OS != "":
		parsed.Device = models.DeviceDesktop
	}

	return parsed
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
