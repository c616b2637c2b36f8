package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
)

// ListClicks возвращает переходы по ссылке пользователя, новые первыми
func (s *Service) ListClicks(ctx context.Context, userID, linkID string, limit, offset int) ([]models.ClickRecord, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedLink(ctx, userID, linkID); err != nil {
		return nil, err
	}
	clicks, err := s.clicks.ListClicks(ctx, linkID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}
	return clicks, nil
}

// ownedClick проверяет владельца перехода через его ссылку
func (s *Service) ownedClick(ctx context.Context, userID, clickID string) (*models.ClickRecord, error) {
	click, err := s.clicks.GetClick(ctx, clickID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get click: %w", err)
	}
	if _, err := s.ownedLink(ctx, userID, click.LinkID); err != nil {
		return nil, err
	}
	return click, nil
}

// GetClick возвращает переход, если его ссылка принадлежит пользователю
func (s *Service) GetClick(ctx context.Context, userID, clickID string) (*models.ClickRecord, error) {
	return s.ownedClick(ctx, userID, clickID)
}

// DeleteClick удаляет один переход
func (s *Service) DeleteClick(ctx context.Context, userID, clickID string) error {
	if _, err := s.ownedClick(ctx, userID, clickID); err != nil {
		return err
	}
	if err := s.clicks.DeleteClick(ctx, clickID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete click: %w", err)
	}
	return nil
}

// DeleteLinkClicks удаляет все переходы ссылки и возвращает их число
func (s *Service) DeleteLinkClicks(ctx context.Context, userID, linkID string) (int64, error) {
	if _, err := s.ownedLink(ctx, userID, linkID); err != nil {
		return 0, err
	}
	n, err := s.clicks.DeleteClicksByLink(ctx, linkID)
	if err != nil {
		return 0, fmt.Errorf("delete clicks: %w", err)
	}
	return n, nil
}
