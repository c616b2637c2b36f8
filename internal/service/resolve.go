package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/tempizhere/linktrack/internal/metrics"
	"github.com/tempizhere/linktrack/internal/repository"
	"go.uber.org/zap"
)

// OutcomeKind описывает исход разрешения короткого кода
type OutcomeKind int

const (
	OutcomeResolved OutcomeKind = iota
	OutcomeNotFound
	OutcomeDisabled
	OutcomeExpired
	OutcomeInternalError
)

// String возвращает метку исхода для логов и метрик
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeExpired:
		return "expired"
	default:
		return "internal_error"
	}
}

// RedirectOutcome описывает результат разрешения кода. URL заполнен только для OutcomeResolved.
type RedirectOutcome struct {
	Kind OutcomeKind
	URL  string
}

// StatusCode возвращает HTTP-статус исхода
func (o RedirectOutcome) StatusCode() int {
	switch o.Kind {
	case OutcomeResolved:
		return http.StatusFound
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeDisabled, OutcomeExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает сообщение для посетителя
func (o RedirectOutcome) Message() string {
	switch o.Kind {
	case OutcomeResolved:
		return ""
	case OutcomeNotFound:
		return "URL not found"
	case OutcomeDisabled:
		return "This URL has been disabled"
	case OutcomeExpired:
		return "This URL has expired"
	default:
		return "Failed to process redirect"
	}
}

// Resolve разрешает короткий код в целевой URL.
// Отключённая ссылка даёт OutcomeDisabled независимо от срока действия.
// При успехе переход учитывается в фоне, его результат не влияет на исход.
func (s *Service) Resolve(ctx context.Context, code string, headers http.Header) RedirectOutcome {
	outcome, linkID := s.resolve(ctx, code)
	metrics.RedirectsTotal.WithLabelValues(outcome.Kind.String()).Inc()

	if outcome.Kind == OutcomeResolved && s.recorder != nil {
		s.recorder.Dispatch(ctx, linkID, headers.Clone())
	}
	return outcome
}

func (s *Service) resolve(ctx context.Context, code string) (RedirectOutcome, string) {
	link, err := s.links.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("Short code not found", zap.String("code", code))
		return RedirectOutcome{Kind: OutcomeNotFound}, ""
	}
	if err != nil {
		s.logger.Error("Failed to resolve short code", zap.String("code", code), zap.Error(err))
		return RedirectOutcome{Kind: OutcomeInternalError}, ""
	}

	if !link.IsActive {
		s.logger.Debug("Short link is disabled", zap.String("code", code))
		return RedirectOutcome{Kind: OutcomeDisabled}, ""
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(s.now()) {
		s.logger.Debug("Short link has expired", zap.String("code", code))
		return RedirectOutcome{Kind: OutcomeExpired}, ""
	}

	return RedirectOutcome{Kind: OutcomeResolved, URL: link.URL}, link.ID
}
