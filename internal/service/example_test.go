package service_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
)

// ExampleService_Resolve демонстрирует разрешение короткого кода
func ExampleService_Resolve() {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := service.NewService(repo, repo, nil, "http://localhost:8080", "secret", zap.NewNop())

	link, _ := svc.CreateLink(ctx, "user-123", models.CreateLinkRequest{
		URL:  "https://example.com/very-long-url",
		Code: "abc123",
	})
	fmt.Printf("Короткий URL: %s\n", link.ShortURL)

	outcome := svc.Resolve(ctx, "abc123", http.Header{})
	fmt.Printf("Статус: %d, адрес: %s\n", outcome.StatusCode(), outcome.URL)

	outcome = svc.Resolve(ctx, "missing", http.Header{})
	fmt.Printf("Статус: %d, сообщение: %s\n", outcome.StatusCode(), outcome.Message())

	// Output:
	// Короткий URL: http://localhost:8080/abc123
	// Статус: 302, адрес: https://example.com/very-long-url
	// Статус: 404, сообщение: URL not found
}

// ExampleGenerateShortCode демонстрирует генерацию короткого кода
func ExampleGenerateShortCode() {
	code, err := service.GenerateShortCode()
	if err != nil {
		fmt.Printf("Ошибка генерации: %v\n", err)
		return
	}
	fmt.Printf("Длина кода: %d\n", len(code))

	// Output:
	// Длина кода: 7
}
