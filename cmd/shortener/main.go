// Сервер коротких ссылок с учётом переходов: HTTP (chi) и gRPC поверх одного сервиса.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tempizhere/linktrack/internal/app"
	"github.com/tempizhere/linktrack/internal/config"
	grpcserver "github.com/tempizhere/linktrack/internal/grpc"
	"github.com/tempizhere/linktrack/internal/log"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// storage объединяет выбранные хранилища и их ресурсы
type storage struct {
	links   repository.LinkRepository
	clicks  repository.ClickRepository
	db      repository.Database
	closers []func() error
}

// Close освобождает ресурсы в обратном порядке
func (s *storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// newStorage выбирает Postgres при заданном DSN, иначе память.
// При заданном адресе Redis чтение ссылок идёт через кэш.
func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	st := &storage{}

	if cfg.DatabaseDSN == "" {
		mem := repository.NewMemoryRepository()
		st.links, st.clicks = mem, mem
		logger.Info("Using in-memory storage")
	} else {
		db, err := app.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		st.db = db
		st.closers = append(st.closers, db.Close)

		pg, err := repository.NewPostgresRepository(db, logger)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		st.links, st.clicks = pg, pg
		logger.Info("Using PostgreSQL storage")
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		st.closers = append(st.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st.links = repository.NewCachedLinkRepository(st.links, client, cfg.CacheTTL, logger)
		logger.Info("Using Redis link cache", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	return st, nil
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("Using default JWT secret, set JWT_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close storage", zap.Error(err))
		}
	}()

	recorder := service.NewRecorder(st.clicks, service.RecorderConfig{
		Timeout: cfg.RecordTimeout,
		IPSalt:  cfg.IPHashSalt,
	}, logger)
	svc := service.NewService(st.links, st.clicks, recorder, cfg.BaseURL, cfg.JWTSecret, logger)
	svc.SetTokenTTL(cfg.CookieTTL)

	httpServer := &http.Server{
		Addr: cfg.RunAddr,
		Handler: app.NewRouter(app.NewApp(svc, st.db, logger), app.RouterConfig{
			TrustedSubnet: cfg.TrustedSubnet,
			CookieTTL:     cfg.CookieTTL,
			RateLimit:     cfg.RateLimit,
			CORSOrigins:   cfg.CORSOrigins,

			RemoteAddrFallback: cfg.RemoteAddrFallback,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var grpcServer *grpc.Server
	var grpcListener net.Listener
	if cfg.GRPCAddr != "" {
		grpcListener, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen gRPC: %w", err)
		}
		srv := grpcserver.NewServer(svc, st.db, logger)
		srv.SetPeerAddrFallback(cfg.RemoteAddrFallback)
		grpcServer = grpcserver.NewGRPCServer(srv, cfg.TrustedSubnet, logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("address", cfg.RunAddr), zap.String("base_url", cfg.BaseURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	if grpcServer != nil {
		g.Go(func() error {
			logger.Info("Starting gRPC server", zap.String("address", cfg.GRPCAddr))
			if err := grpcServer.Serve(grpcListener); err != nil {
				return fmt.Errorf("gRPC server: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		if grpcServer != nil {
			grpcServer.GracefulStop()
		}
		// переходы, принятые до остановки, дописываются до закрытия хранилища
		if werr := recorder.Wait(shutdownCtx); werr != nil {
			logger.Warn("Click recording did not finish before shutdown", zap.Error(werr))
		}
		return err
	})

	return g.Wait()
}
