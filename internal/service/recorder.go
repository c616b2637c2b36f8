package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/tempizhere/linktrack/internal/analytics"
	"github.com/tempizhere/linktrack/internal/metrics"
	"github.com/tempizhere/linktrack/internal/repository"
	"go.uber.org/zap"
)

const breakerName = "click-store"

// RecorderConfig задаёт параметры регистратора переходов
type RecorderConfig struct {
	// Timeout ограничивает одну запись перехода
	Timeout time.Duration
	// IPSalt добавляется к IP перед хешированием
	IPSalt string
	// FailureThreshold: число ошибок подряд, после которого хранилище временно не используется
	FailureThreshold uint32
	// OpenTimeout: время до пробного запроса после размыкания
	OpenTimeout time.Duration
}

// Recorder сохраняет записи о переходах в фоне.
// Ошибки записи логируются и не возвращаются вызывающему коду.
type Recorder struct {
	clicks  repository.ClickRepository
	hasher  analytics.Hasher
	breaker *gobreaker.CircuitBreaker[struct{}]
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewRecorder создаёт регистратор переходов
func NewRecorder(clicks repository.ClickRepository, cfg RecorderConfig, logger *zap.Logger) *Recorder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	r := &Recorder{
		clicks:  clicks,
		hasher:  analytics.NewHasher(cfg.IPSalt),
		timeout: cfg.Timeout,
		logger:  logger,
		now:     time.Now,
	}
	r.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    breakerName,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Click store circuit breaker state changed",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	metrics.BreakerState.WithLabelValues(breakerName).Set(float64(gobreaker.StateClosed))
	return r
}

// Dispatch запускает запись перехода в отдельной горутине.
// Отмена ctx не прерывает запись, её ограничивает только собственный таймаут.
func (r *Recorder) Dispatch(ctx context.Context, linkID string, headers http.Header) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		r.Record(recordCtx, linkID, headers)
	}()
}

// Record строит и сохраняет запись о переходе. Никогда не паникует наружу.
func (r *Recorder) Record(ctx context.Context, linkID string, headers http.Header) {
	defer func() {
		if p := recover(); p != nil {
			metrics.ClickRecordFailuresTotal.WithLabelValues("panic").Inc()
			r.logger.Error("Panic while recording click", zap.String("link_id", linkID), zap.Any("panic", p))
		}
	}()

	click := analytics.BuildClick(linkID, headers, r.now(), r.hasher)
	click.ID = newID("clk")

	_, err := r.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, r.clicks.InsertClick(ctx, &click)
	})
	if err != nil {
		reason := "storage"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			reason = "breaker_open"
		}
		metrics.ClickRecordFailuresTotal.WithLabelValues(reason).Inc()
		r.logger.Warn("Failed to record click",
			zap.String("link_id", linkID), zap.String("reason", reason), zap.Error(err))
		return
	}

	metrics.ClicksRecordedTotal.Inc()
	r.logger.Debug("Click recorded", zap.String("link_id", linkID), zap.String("click_id", click.ID))
}

// Wait ожидает завершения запущенных записей или истечения ctx
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for click records: %w", ctx.Err())
	}
}
