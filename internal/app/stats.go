package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linktrack/internal/middleware"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/service"
)

// parseTimeParam разбирает границу диапазона в формате RFC3339 или YYYY-MM-DD.
// Дата без времени в верхней границе означает конец этого дня (UTC).
func parseTimeParam(raw string, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, service.ErrInvalidRange
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// HandleLinkStats обрабатывает GET-запросы на "/api/links/{id}/stats"
func (a *App) HandleLinkStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	from, err := parseTimeParam(q.Get("from"), false)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	to, err := parseTimeParam(q.Get("to"), true)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	stats, err := a.svc.LinkStats(r.Context(), userID, chi.URLParam(r, "id"), from, to)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, stats)
}

// HandleServiceStats обрабатывает GET-запросы на "/api/internal/stats"
func (a *App) HandleServiceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.ServiceStats(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, stats)
}
