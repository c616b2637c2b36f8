package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linktrack/internal/middleware"
	"github.com/tempizhere/linktrack/internal/models"
)

// HandleCreateLink обрабатывает POST-запросы на "/api/links"
func (a *App) HandleCreateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link, err := a.svc.CreateLink(r.Context(), userID, req)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/links/"+link.ID)
	a.writeJSONResponse(w, http.StatusCreated, link)
}

// HandleListLinks обрабатывает GET-запросы на "/api/links"
func (a *App) HandleListLinks(w http.ResponseWriter, r *http.Request) {
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

	links, err := a.svc.ListLinks(r.Context(), userID, limit, offset)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	if len(links) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, links)
}

// HandleGetLink обрабатывает GET-запросы на "/api/links/{id}"
func (a *App) HandleGetLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	link, err := a.svc.GetLink(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleUpdateLink обрабатывает PATCH-запросы на "/api/links/{id}"
func (a *App) HandleUpdateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdateLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link, err := a.svc.UpdateLink(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.writeJSONResponse(w, http.StatusOK, link)
}

// HandleDeleteLink обрабатывает DELETE-запросы на "/api/links/{id}".
// Переходы по ссылке удаляются вместе с ней.
func (a *App) HandleDeleteLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := a.svc.DeleteLink(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
