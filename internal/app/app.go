// Package app содержит HTTP-слой сервиса: хендлеры, маршрутизацию и подключение к базе.
package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes ограничивает размер JSON-тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse представляет тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// App содержит хендлеры и зависимости
type App struct {
	svc    *service.Service
	db     repository.Database
	logger *zap.Logger
}

// NewApp создаёт новое приложение. db может быть nil, если хранилище в памяти.
func NewApp(svc *service.Service, db repository.Database, logger *zap.Logger) *App {
	return &App{svc: svc, db: db, logger: logger}
}

// HandlePing обрабатывает GET-запросы на "/ping"
func (a *App) HandlePing(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		http.Error(w, "Database not configured", http.StatusInternalServerError)
		return
	}
	if err := a.db.PingContext(r.Context()); err != nil {
		a.logger.Error("Database ping failed", zap.Error(err))
		http.Error(w, "Database connection failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeJSONResponse сериализует v и пишет его с указанным статусом
func (a *App) writeJSONResponse(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Failed to encode JSON", zap.Error(err))
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		a.logger.Debug("Failed to write response", zap.Error(err))
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSONResponse(w, status, ErrorResponse{Error: msg})
}

// writeServiceError переводит ошибку сервиса в HTTP-статус.
// Неожиданные ошибки логируются, клиент получает общее сообщение.
func (a *App) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		a.writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrCodeTaken):
		a.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidExpiry),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidPagination):
		a.writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON читает тело запроса в v. Неизвестные поля отклоняются.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pageParams читает limit и offset из строки запроса; отсутствующие значения равны 0
func pageParams(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return 0, 0, service.ErrInvalidPagination
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			return 0, 0, service.ErrInvalidPagination
		}
	}
	return limit, offset, nil
}
