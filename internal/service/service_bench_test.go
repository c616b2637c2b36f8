package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"go.uber.org/zap"
)

// BenchmarkService_Resolve измеряет производительность разрешения кода без учёта переходов
func BenchmarkService_Resolve(b *testing.B) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := NewService(repo, repo, nil, "http://localhost:8080", "secret", zap.NewNop())
	if _, err := svc.CreateLink(ctx, "usr_1", models.CreateLinkRequest{URL: gofakeit.URL(), Code: "bench1"}); err != nil {
		b.Fatal(err)
	}
	h := http.Header{}
	h.Set("User-Agent", gofakeit.UserAgent())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if svc.Resolve(ctx, "bench1", h).Kind != OutcomeResolved {
			b.Fatal("unexpected outcome")
		}
	}
}

// BenchmarkRecorder_Record измеряет производительность синхронной записи перехода
func BenchmarkRecorder_Record(b *testing.B) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	if err := repo.CreateLink(ctx, &models.ShortLink{ID: "url_1", Code: "bench1", URL: "https://example.com", IsActive: true}); err != nil {
		b.Fatal(err)
	}
	recorder := NewRecorder(repo, RecorderConfig{}, zap.NewNop())
	h := http.Header{}
	h.Set("User-Agent", gofakeit.UserAgent())
	h.Set("X-Forwarded-For", gofakeit.IPv4Address())
	h.Set("Referer", gofakeit.URL())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		recorder.Record(ctx, "url_1", h)
	}
}

// BenchmarkGenerateShortCode измеряет производительность генерации кода
func BenchmarkGenerateShortCode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GenerateShortCode(); err != nil {
			b.Fatal(err)
		}
	}
}
