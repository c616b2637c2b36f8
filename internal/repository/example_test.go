package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
)

// ExampleMemoryRepository_FindByCode демонстрирует поиск ссылки по короткому коду
func ExampleMemoryRepository_FindByCode() {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	err := repo.CreateLink(ctx, &models.ShortLink{
		ID:        "url_1",
		Code:      "abc123",
		URL:       "https://example.com/very-long-url",
		IsActive:  true,
		CreatedAt: time.Now(),
		UserID:    "user-123",
	})
	if err != nil {
		fmt.Printf("Ошибка сохранения: %v\n", err)
		return
	}

	link, err := repo.FindByCode(ctx, "abc123")
	if err != nil {
		fmt.Printf("Ошибка поиска: %v\n", err)
		return
	}

	fmt.Printf("Код: %s\n", link.Code)
	fmt.Printf("Целевой URL: %s\n", link.URL)

	// Output:
	// Код: abc123
	// Целевой URL: https://example.com/very-long-url
}

// ExampleMemoryRepository_Stats демонстрирует подсчёт статистики переходов
func ExampleMemoryRepository_Stats() {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	day := time.Date(2025, 5, 28, 12, 0, 0, 0, time.UTC)

	_ = repo.CreateLink(ctx, &models.ShortLink{ID: "url_1", Code: "abc123", URL: "https://example.com", IsActive: true})

	for i, country := range []string{"US", "US", "CA"} {
		_ = repo.InsertClick(ctx, &models.ClickRecord{
			ID:        fmt.Sprintf("clk_%d", i),
			LinkID:    "url_1",
			ClickedAt: day,
			Country:   &country,
			Device:    models.DeviceDesktop,
		})
	}

	stats, _ := repo.Stats(ctx, "url_1", models.StatsFilter{})
	fmt.Printf("Всего переходов: %d\n", stats.TotalClicks)
	for _, b := range stats.TopCountries {
		fmt.Printf("%s: %d\n", *b.Country, b.Clicks)
	}

	// Output:
	// Всего переходов: 3
	// US: 2
	// CA: 1
}
