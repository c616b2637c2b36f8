// Package grpc содержит gRPC-адаптер сервиса ссылок
package grpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/tempizhere/linktrack/internal/analytics"
	"github.com/tempizhere/linktrack/internal/grpc/proto"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Server реализует gRPC сервис ссылок
type Server struct {
	proto.UnimplementedLinkServiceServer
	svc    *service.Service
	db     repository.Database
	logger *zap.Logger

	peerAddrFallback bool
}

// NewServer создаёт реализацию сервиса. db может быть nil.
func NewServer(svc *service.Service, db repository.Database, logger *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		db:     db,
		logger: logger,
	}
}

// SetPeerAddrFallback разрешает считать адрес пира IP посетителя,
// если в метаданных нет заголовков прокси
func (s *Server) SetPeerAddrFallback(on bool) {
	s.peerAddrFallback = on
}

// NewGRPCServer создаёт grpc.Server с интерцепторами и зарегистрированным сервисом
func NewGRPCServer(srv *Server, trustedSubnet string, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger),
		TrustedSubnetInterceptor(trustedSubnet, logger),
		AuthInterceptor(srv.svc, logger),
	))
	proto.RegisterLinkServiceServer(s, srv)
	return s
}

// Resolve разрешает короткий код и учитывает переход по заголовкам из метаданных
func (s *Server) Resolve(ctx context.Context, req *proto.ResolveRequest) (*proto.ResolveResponse, error) {
	outcome := s.svc.Resolve(ctx, req.Code, headersFromContext(ctx, s.peerAddrFallback))
	switch outcome.Kind {
	case service.OutcomeResolved:
		return &proto.ResolveResponse{URL: outcome.URL}, nil
	case service.OutcomeNotFound:
		return nil, status.Error(codes.NotFound, outcome.Message())
	case service.OutcomeDisabled, service.OutcomeExpired:
		return nil, status.Error(codes.FailedPrecondition, outcome.Message())
	default:
		return nil, status.Error(codes.Internal, outcome.Message())
	}
}

// CreateLink создаёт ссылку от имени пользователя из токена
func (s *Server) CreateLink(ctx context.Context, req *proto.CreateLinkRequest) (*proto.CreateLinkResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.svc.CreateLink(ctx, userID, models.CreateLinkRequest{
		URL:       req.URL,
		Code:      req.Code,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &proto.CreateLinkResponse{Link: toProtoLink(link)}, nil
}

// GetLinkStats возвращает статистику переходов по ссылке пользователя
func (s *Server) GetLinkStats(ctx context.Context, req *proto.GetLinkStatsRequest) (*proto.GetLinkStatsResponse, error) {
	if req.LinkID == "" {
		return nil, status.Error(codes.InvalidArgument, "link ID is required")
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.svc.LinkStats(ctx, userID, req.LinkID, req.From, req.To)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &proto.GetLinkStatsResponse{Stats: stats}, nil
}

// GetServiceStats возвращает общие счётчики сервиса
func (s *Server) GetServiceStats(ctx context.Context, _ *proto.GetServiceStatsRequest) (*proto.GetServiceStatsResponse, error) {
	stats, err := s.svc.ServiceStats(ctx)
	if err != nil {
		s.logger.Error("Failed to get stats", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to get statistics")
	}

	return &proto.GetServiceStatsResponse{
		Links:  stats.Links,
		Clicks: stats.Clicks,
		Users:  stats.Users,
	}, nil
}

// Ping проверяет состояние базы данных
func (s *Server) Ping(ctx context.Context, _ *proto.PingRequest) (*proto.PingResponse, error) {
	if s.db == nil {
		return &proto.PingResponse{DatabaseAvailable: false}, nil
	}

	err := s.db.PingContext(ctx)
	return &proto.PingResponse{
		DatabaseAvailable: err == nil,
	}, nil
}

func toProtoLink(l *models.LinkResponse) *proto.Link {
	return &proto.Link{
		ID:        l.ID,
		Code:      l.Code,
		URL:       l.URL,
		ShortURL:  l.ShortURL,
		IsActive:  l.IsActive,
		ExpiresAt: l.ExpiresAt,
		CreatedAt: l.CreatedAt,
	}
}

// headersFromContext переносит входящие метаданные в http.Header.
// При peerFallback и отсутствии заголовков с IP клиента используется адрес пира.
func headersFromContext(ctx context.Context, peerFallback bool) http.Header {
	h := make(http.Header)
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for key, values := range md {
			if strings.HasPrefix(key, ":") || strings.HasPrefix(key, "grpc-") {
				continue
			}
			for _, v := range values {
				h.Add(key, v)
			}
		}
	}

	if peerFallback && analytics.ClientIP(h) == "" {
		if p, ok := peer.FromContext(ctx); ok {
			if tcpAddr, ok := p.Addr.(*net.TCPAddr); ok {
				h.Set("X-Real-IP", tcpAddr.IP.String())
			}
		}
	}
	return h
}

// getUserIDFromContext извлекает UserID из контекста
func getUserIDFromContext(ctx context.Context) (string, error) {
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		return userID, nil
	}
	return "", status.Error(codes.Unauthenticated, "user not authenticated")
}

// mapError преобразует ошибки бизнес-логики в gRPC статусы
func (s *Server) mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, service.ErrCodeTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidExpiry),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidPagination):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("Unexpected error", zap.Error(err))
		return status.Error(codes.Internal, "internal server error")
	}
}
