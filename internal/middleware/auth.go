package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CookieName содержит имя куки с токеном пользователя
const CookieName = "jwt_token"

type contextKey string

const userIDKey contextKey = "userID"

// TokenIssuer выпускает и проверяет токены пользователей
type TokenIssuer interface {
	GenerateUserID() (string, error)
	GenerateJWT(userID string) (string, error)
	ParseJWT(token string) (string, error)
}

// tokenFromRequest берёт токен из куки или заголовка Authorization
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// AuthMiddleware определяет владельца запроса по JWT.
// Без действительного токена выдаёт новую анонимную личность и ставит куку.
func AuthMiddleware(issuer TokenIssuer, cookieTTL time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string

			if token := tokenFromRequest(r); token != "" {
				id, err := issuer.ParseJWT(token)
				if err != nil {
					logger.Warn("Invalid JWT token", zap.Error(err))
				} else {
					userID = id
				}
			}

			if userID == "" {
				var err error
				userID, err = issuer.GenerateUserID()
				if err != nil {
					logger.Error("Failed to generate user ID", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				token, err := issuer.GenerateJWT(userID)
				if err != nil {
					logger.Error("Failed to issue JWT", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Expires:  time.Now().Add(cookieTTL),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set("Authorization", "Bearer "+token)
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID извлекает UserID из контекста
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID кладёт UserID в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
