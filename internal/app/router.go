package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tempizhere/linktrack/internal/middleware"
)

// RouterConfig содержит параметры маршрутизации
type RouterConfig struct {
	// TrustedSubnet: CIDR, которому доступна внутренняя статистика
	TrustedSubnet string
	// CookieTTL: срок жизни cookie с токеном
	CookieTTL time.Duration
	// RateLimit: запросов в минуту с одного IP; 0 отключает ограничение
	RateLimit int
	// CORSOrigins: разрешённые источники для /api; пустой список означает "*"
	CORSOrigins []string
	// RemoteAddrFallback: учитывать адрес соединения как IP посетителя без прокси-заголовков
	RemoteAddrFallback bool
}

func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(perMinute, time.Minute)
}

// NewRouter собирает chi-роутер со всеми маршрутами сервиса
func NewRouter(a *App, cfg RouterConfig) chi.Router {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggingMiddleware(a.logger))

	r.Get("/", a.HandleHome)
	r.Get("/ping", a.HandlePing)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Authorization", "Location"},
			MaxAge:         300,
		}))
		r.Use(chimw.Compress(5, "application/json"))
		r.Use(rateLimit(cfg.RateLimit))

		r.With(middleware.TrustedSubnetMiddleware(cfg.TrustedSubnet, a.logger)).
			Get("/internal/stats", a.HandleServiceStats)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(a.svc, cfg.CookieTTL, a.logger))

			r.Route("/links", func(r chi.Router) {
				r.Post("/", a.HandleCreateLink)
				r.Get("/", a.HandleListLinks)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", a.HandleGetLink)
					r.Patch("/", a.HandleUpdateLink)
					r.Delete("/", a.HandleDeleteLink)
					r.Get("/stats", a.HandleLinkStats)
					r.Get("/clicks", a.HandleListClicks)
					r.Delete("/clicks", a.HandleDeleteLinkClicks)
				})
			})
			r.Get("/clicks/{id}", a.HandleGetClick)
			r.Delete("/clicks/{id}", a.HandleDeleteClick)
		})
	})

	redirect := r.With(rateLimit(cfg.RateLimit))
	if cfg.RemoteAddrFallback {
		redirect = redirect.With(middleware.RemoteAddrMiddleware)
	}
	redirect.Get("/{code}", a.HandleRedirect)

	return r
}
