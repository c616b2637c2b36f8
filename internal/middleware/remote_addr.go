package middleware

import (
	"net"
	"net/http"

	"github.com/tempizhere/linktrack/internal/analytics"
)

// RemoteAddrMiddleware подставляет адрес соединения в X-Real-IP,
// если запрос пришёл без заголовков прокси
func RemoteAddrMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if analytics.ClientIP(r.Header) == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				r.Header.Set("X-Real-IP", host)
			}
		}
		next.ServeHTTP(w, r)
	})
}
