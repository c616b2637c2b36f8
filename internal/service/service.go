// Package service реализует бизнес-логику коротких ссылок: редирект,
// учёт переходов, управление ссылками и статистику.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tempizhere/linktrack/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrCodeTaken         = errors.New("short code already taken")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrInvalidCode       = errors.New("invalid short code")
	ErrInvalidExpiry     = errors.New("expiry must be in the future")
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidToken      = errors.New("invalid token")
	ErrCodeGeneration    = errors.New("failed to generate unique short code")
)

// Service реализует логику работы с короткими ссылками
type Service struct {
	links     repository.LinkRepository
	clicks    repository.ClickRepository
	recorder  *Recorder
	baseURL   string
	jwtSecret []byte
	tokenTTL  time.Duration
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewService создаёт новый экземпляр Service.
// recorder может быть nil, тогда переходы не учитываются.
func NewService(links repository.LinkRepository, clicks repository.ClickRepository, recorder *Recorder,
	baseURL, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		links:     links,
		clicks:    clicks,
		recorder:  recorder,
		baseURL:   strings.TrimRight(baseURL, "/"),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
		validate:  newValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock подменяет источник текущего времени
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetTokenTTL задаёт срок жизни выдаваемых токенов
func (s *Service) SetTokenTTL(ttl time.Duration) {
	if ttl > 0 {
		s.tokenTTL = ttl
	}
}

// Recorder возвращает регистратор переходов сервиса
func (s *Service) Recorder() *Recorder {
	return s.recorder
}

// ShortURL возвращает полный короткий URL для кода
func (s *Service) ShortURL(code string) string {
	return s.baseURL + "/" + code
}

// BaseURL возвращает базовый адрес сервиса
func (s *Service) BaseURL() string {
	return s.baseURL
}

// newID создаёт сортируемый по времени идентификатор с префиксом
func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "_" + id.String()
}
