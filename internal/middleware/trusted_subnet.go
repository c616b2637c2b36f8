// Package middleware содержит HTTP middleware для обработки запросов.
// Включает аутентификацию, логирование и проверку доверенных подсетей.
package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"go.uber.org/zap"
)

// TrustedSubnetMiddleware пропускает только запросы из доверенной подсети.
// IP клиента берётся из заголовка X-Real-IP. Пустая подсеть запрещает доступ всем.
func TrustedSubnetMiddleware(trustedSubnet string, logger *zap.Logger) func(http.Handler) http.Handler {
	prefix, parseErr := netip.ParsePrefix(strings.TrimSpace(trustedSubnet))
	if trustedSubnet != "" && parseErr != nil {
		logger.Error("Invalid trusted_subnet CIDR", zap.String("trusted_subnet", trustedSubnet), zap.Error(parseErr))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deny := func(reason string, fields ...zap.Field) {
				fields = append(fields,
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.String("remote_addr", r.RemoteAddr))
				logger.Warn("Access denied: "+reason, fields...)
				http.Error(w, "Access denied", http.StatusForbidden)
			}

			if trustedSubnet == "" {
				deny("trusted_subnet is empty")
				return
			}
			if parseErr != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			clientIP := r.Header.Get("X-Real-IP")
			if clientIP == "" {
				deny("X-Real-IP header is missing")
				return
			}
			addr, err := netip.ParseAddr(strings.TrimSpace(clientIP))
			if err != nil {
				deny("invalid IP address in X-Real-IP header", zap.String("client_ip", clientIP))
				return
			}
			if !prefix.Contains(addr.Unmap()) {
				deny("IP not in trusted subnet",
					zap.String("client_ip", clientIP), zap.String("trusted_subnet", trustedSubnet))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
