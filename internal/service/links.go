package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"go.uber.org/zap"
)

// codeAlphabet не содержит похожих символов 0, O, I и l
const codeAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	codeLength       = 7
	codeAttempts     = 5
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// GenerateShortCode генерирует случайный короткий код без смещения распределения
func GenerateShortCode() (string, error) {
	// Наибольшее кратное длине алфавита, меньшее 256
	const bound = 256 - 256%len(codeAlphabet)

	code := make([]byte, 0, codeLength)
	buf := make([]byte, codeLength*2)
	for len(code) < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= bound {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(code) == codeLength {
				break
			}
		}
	}
	return string(code), nil
}

// CreateLink создаёт короткую ссылку пользователя.
// Без пользовательского кода подбирает свободный случайный код.
func (s *Service) CreateLink(ctx context.Context, userID string, req models.CreateLinkRequest) (*models.LinkResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !httpURL(req.URL) {
		return nil, ErrInvalidURL
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return nil, ErrInvalidExpiry
	}

	link := &models.ShortLink{
		ID:        newID("url"),
		URL:       req.URL,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: s.now().UTC(),
		UserID:    userID,
	}

	if req.Code != "" {
		link.Code = req.Code
		if err := s.links.CreateLink(ctx, link); err != nil {
			return nil, s.mapCreateError(err)
		}
		return s.linkResponse(link), nil
	}

	for i := 0; i < codeAttempts; i++ {
		code, err := GenerateShortCode()
		if err != nil {
			return nil, fmt.Errorf("generate short code: %w", err)
		}
		link.Code = code
		err = s.links.CreateLink(ctx, link)
		if err == nil {
			return s.linkResponse(link), nil
		}
		if !errors.Is(err, repository.ErrCodeExists) {
			return nil, fmt.Errorf("create link: %w", err)
		}
		s.logger.Debug("Generated short code collision", zap.String("code", code))
	}
	return nil, ErrCodeGeneration
}

func (s *Service) mapCreateError(err error) error {
	if errors.Is(err, repository.ErrCodeExists) {
		return ErrCodeTaken
	}
	return fmt.Errorf("create link: %w", err)
}

func (s *Service) linkResponse(link *models.ShortLink) *models.LinkResponse {
	return &models.LinkResponse{ShortLink: *link, ShortURL: s.ShortURL(link.Code)}
}

// ownedLink возвращает ссылку, только если она принадлежит пользователю
func (s *Service) ownedLink(ctx context.Context, userID, id string) (*models.ShortLink, error) {
	link, err := s.links.GetLink(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	if link.UserID != userID {
		return nil, ErrNotFound
	}
	return link, nil
}

// GetLink возвращает ссылку пользователя
func (s *Service) GetLink(ctx context.Context, userID, id string) (*models.LinkResponse, error) {
	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.linkResponse(link), nil
}

// ListLinks возвращает страницу ссылок пользователя, новые первыми
func (s *Service) ListLinks(ctx context.Context, userID string, limit, offset int) ([]models.LinkResponse, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	links, err := s.links.ListLinks(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	resp := make([]models.LinkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, *s.linkResponse(&links[i]))
	}
	return resp, nil
}

// UpdateLink частично обновляет ссылку пользователя
func (s *Service) UpdateLink(ctx context.Context, userID, id string, req models.UpdateLinkRequest) (*models.LinkResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		if !httpURL(*req.URL) {
			return nil, ErrInvalidURL
		}
		link.URL = *req.URL
	}
	if req.Code != nil {
		link.Code = *req.Code
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	switch {
	case req.ClearExpires:
		link.ExpiresAt = nil
	case req.ExpiresAt != nil:
		if !req.ExpiresAt.After(s.now()) {
			return nil, ErrInvalidExpiry
		}
		link.ExpiresAt = req.ExpiresAt
	}

	if err := s.links.UpdateLink(ctx, link); err != nil {
		switch {
		case errors.Is(err, repository.ErrCodeExists):
			return nil, ErrCodeTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update link: %w", err)
	}
	return s.linkResponse(link), nil
}

// DeleteLink удаляет ссылку пользователя вместе с переходами
func (s *Service) DeleteLink(ctx context.Context, userID, id string) error {
	if _, err := s.ownedLink(ctx, userID, id); err != nil {
		return err
	}
	if err := s.links.DeleteLink(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

// normalizePage подставляет значения по умолчанию и проверяет границы страницы
func normalizePage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit || offset < 0 {
		return 0, 0, ErrInvalidPagination
	}
	return limit, offset, nil
}
