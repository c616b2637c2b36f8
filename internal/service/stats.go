package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tempizhere/linktrack/internal/models"
	"golang.org/x/sync/errgroup"
)

// LinkStats возвращает статистику переходов по ссылке пользователя.
// Обе границы диапазона включительно, любая может отсутствовать.
func (s *Service) LinkStats(ctx context.Context, userID, linkID string, from, to *time.Time) (*models.ClickStats, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidRange
	}
	if _, err := s.ownedLink(ctx, userID, linkID); err != nil {
		return nil, err
	}
	stats, err := s.clicks.Stats(ctx, linkID, models.StatsFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("link stats: %w", err)
	}
	return stats, nil
}

// ServiceStats возвращает общее число ссылок, переходов и владельцев
func (s *Service) ServiceStats(ctx context.Context) (*models.ServiceStats, error) {
	var stats models.ServiceStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Links, stats.Users, err = s.links.CountLinks(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Clicks, err = s.clicks.CountClicks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service stats: %w", err)
	}
	return &stats, nil
}
