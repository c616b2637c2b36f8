package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linktrack/internal/middleware"
)

// DeletedResponse сообщает число удалённых записей
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// HandleListClicks обрабатывает GET-запросы на "/api/links/{id}/clicks"
func (a *App) HandleListClicks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limit, offset, err := pageParams(r)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	clicks, err := a.svc.ListClicks(r.Context(), userID, chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	if len(clicks) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, clicks)
}

// HandleDeleteLinkClicks обрабатывает DELETE-запросы на "/api/links/{id}/clicks"
func (a *App) HandleDeleteLinkClicks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	n, err := a.svc.DeleteLinkClicks(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, DeletedResponse{Deleted: n})
}

// HandleGetClick обрабатывает GET-запросы на "/api/clicks/{id}"
func (a *App) HandleGetClick(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	click, err := a.svc.GetClick(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, click)
}

// HandleDeleteClick обрабатывает DELETE-запросы на "/api/clicks/{id}"
func (a *App) HandleDeleteClick(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := a.svc.DeleteClick(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
