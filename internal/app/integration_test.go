//go:build integration

package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "linktrack",
				"POSTGRES_PASSWORD": "linktrack",
				"POSTGRES_DB":       "linktrack",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping test: postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://linktrack:linktrack@%s:%s/linktrack?sslmode=disable", host, port.Port())
}

func TestPostgres_RedirectAndStats(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	// повторное применение схемы не должно падать
	require.NoError(t, migrate(ctx, db.conn))

	repo, err := repository.NewPostgresRepository(db, zap.NewNop())
	require.NoError(t, err)
	recorder := service.NewRecorder(repo, service.RecorderConfig{Timeout: 5 * time.Second}, zap.NewNop())
	svc := service.NewService(repo, repo, recorder, testBaseURL, "secret", zap.NewNop())
	router := NewRouter(NewApp(svc, db, zap.NewNop()), RouterConfig{CookieTTL: time.Hour})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	link, err := svc.CreateLink(ctx, "usr_1", models.CreateLinkRequest{URL: "https://example.com", Code: "abc123"})
	require.NoError(t, err)

	visits := []struct{ country, ip string }{
		{"US", "203.0.113.1"},
		{"US", "203.0.113.1"},
		{"CA", "203.0.113.2"},
	}
	for _, v := range visits {
		req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
		req.Header.Set("User-Agent", chromeUA)
		req.Header.Set("X-Vercel-IP-Country", v.country)
		req.Header.Set("X-Real-IP", v.ip)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusFound, rr.Code)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, recorder.Wait(waitCtx))

	stats, err := svc.LinkStats(ctx, "usr_1", link.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalClicks)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	require.NotEmpty(t, stats.TopCountries)
	assert.Equal(t, "US", *stats.TopCountries[0].Country)
	assert.Equal(t, int64(2), stats.TopCountries[0].Clicks)
	require.Len(t, stats.ClicksByDate, 1)
	assert.Equal(t, int64(3), stats.ClicksByDate[0].Clicks)

	_, err = svc.CreateLink(ctx, "usr_2", models.CreateLinkRequest{URL: "https://example.org", Code: "abc123"})
	assert.ErrorIs(t, err, service.ErrCodeTaken)

	require.NoError(t, svc.DeleteLink(ctx, "usr_1", link.ID))
	total, err := repo.CountClicks(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
