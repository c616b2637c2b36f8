package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
)

const (
	testBaseURL = "http://localhost:8080"
	chromeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type testEnv struct {
	router   http.Handler
	svc      *service.Service
	repo     *repository.MemoryRepository
	recorder *service.Recorder
}

func newTestEnv(t *testing.T, cfg RouterConfig) *testEnv {
	t.Helper()
	repo := repository.NewMemoryRepository()
	recorder := service.NewRecorder(repo, service.RecorderConfig{Timeout: time.Second}, zap.NewNop())
	svc := service.NewService(repo, repo, recorder, testBaseURL, "secret", zap.NewNop())
	if cfg.CookieTTL == 0 {
		cfg.CookieTTL = time.Hour
	}
	return &testEnv{
		router:   NewRouter(NewApp(svc, nil, zap.NewNop()), cfg),
		svc:      svc,
		repo:     repo,
		recorder: recorder,
	}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.svc.GenerateJWT(userID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) seed(t *testing.T, link models.ShortLink) {
	t.Helper()
	require.NoError(t, e.repo.CreateLink(context.Background(), &link))
}

// wait дожидается фоновых записей переходов
func (e *testEnv) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.recorder.Wait(ctx))
}

func (e *testEnv) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func urlQuery(s string) string {
	return url.QueryEscape(s)
}
