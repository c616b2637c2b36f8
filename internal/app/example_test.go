package app_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/tempizhere/linktrack/internal/app"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
)

// ExampleNewRouter демонстрирует редирект и ответы для недоступных ссылок
func ExampleNewRouter() {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	_ = repo.CreateLink(ctx, &models.ShortLink{ID: "url_1", Code: "abc123", URL: "https://example.com", IsActive: true})
	_ = repo.CreateLink(ctx, &models.ShortLink{ID: "url_2", Code: "disabled1", URL: "https://example.com", IsActive: false})

	recorder := service.NewRecorder(repo, service.RecorderConfig{}, zap.NewNop())
	svc := service.NewService(repo, repo, recorder, "http://localhost:8080", "secret", zap.NewNop())
	router := app.NewRouter(app.NewApp(svc, nil, zap.NewNop()), app.RouterConfig{CookieTTL: time.Hour})

	for _, path := range []string{"/abc123", "/disabled1", "/missing"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		fmt.Println(path, rr.Code, rr.Header().Get("Location")+rr.Header().Get("Refresh"))
	}

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	_ = recorder.Wait(waitCtx)

	// Output:
	// /abc123 302 https://example.com
	// /disabled1 410 0; url=http://localhost:8080/?error=This+URL+has+been+disabled
	// /missing 404 0; url=http://localhost:8080/?error=URL+not+found
}
