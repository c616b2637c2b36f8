package analytics

import (
	"net/url"
	"strings"
)

// ReferrerDomain возвращает хост из заголовка Referer.
// Для пустого, некорректного или относительного значения возвращает nil.
func ReferrerDomain(referrer string) *string {
	if referrer == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(referrer))
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil
	}
	return &host
}
