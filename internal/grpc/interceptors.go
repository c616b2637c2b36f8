package grpc

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/tempizhere/linktrack/internal/grpc/proto"
	"github.com/tempizhere/linktrack/internal/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// contextKey определяет тип для ключей контекста
type contextKey string

const userIDKey contextKey = "userID"

// publicMethods не требуют идентификации пользователя
var publicMethods = map[string]bool{
	proto.LinkServiceResolveMethod:         true,
	proto.LinkServicePingMethod:            true,
	proto.LinkServiceGetServiceStatsMethod: true,
}

// AuthInterceptor создаёт интерцептор для аутентификации пользователей.
// Без валидного токена выдаётся новый идентификатор, токен уходит в заголовке ответа.
func AuthInterceptor(issuer middleware.TokenIssuer, logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		var userID string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
				if token, found := strings.CutPrefix(authHeaders[0], "Bearer "); found {
					var err error
					userID, err = issuer.ParseJWT(token)
					if err != nil {
						logger.Warn("Invalid JWT token", zap.Error(err))
					}
				}
			}
		}

		if userID == "" {
			var err error
			userID, err = issuer.GenerateUserID()
			if err != nil {
				logger.Error("Failed to generate user ID", zap.Error(err))
				return nil, status.Error(codes.Internal, "failed to generate user ID")
			}

			token, err := issuer.GenerateJWT(userID)
			if err != nil {
				logger.Error("Failed to generate JWT", zap.Error(err))
				return nil, status.Error(codes.Internal, "failed to generate JWT")
			}

			if err := grpc.SetHeader(ctx, metadata.Pairs("authorization", "Bearer "+token)); err != nil {
				logger.Error("Failed to set response header", zap.Error(err))
			}

			logger.Info("Generated new JWT for gRPC", zap.String("user_id", userID))
		}

		ctx = context.WithValue(ctx, userIDKey, userID)
		return handler(ctx, req)
	}
}

// TrustedSubnetInterceptor ограничивает GetServiceStats доверенной подсетью.
// Адрес клиента берётся из пира соединения.
func TrustedSubnetInterceptor(trustedSubnet string, logger *zap.Logger) grpc.UnaryServerInterceptor {
	prefix, parseErr := netip.ParsePrefix(strings.TrimSpace(trustedSubnet))
	if trustedSubnet != "" && parseErr != nil {
		logger.Error("Invalid trusted subnet", zap.String("subnet", trustedSubnet), zap.Error(parseErr))
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if info.FullMethod != proto.LinkServiceGetServiceStatsMethod {
			return handler(ctx, req)
		}

		if trustedSubnet == "" {
			return nil, status.Error(codes.PermissionDenied, "trusted subnet not configured")
		}
		if parseErr != nil {
			return nil, status.Error(codes.Internal, "invalid trusted subnet configuration")
		}

		p, ok := peer.FromContext(ctx)
		if !ok {
			return nil, status.Error(codes.PermissionDenied, "failed to get peer info")
		}

		var addr netip.Addr
		if tcpAddr, ok := p.Addr.(*net.TCPAddr); ok {
			addr, _ = netip.AddrFromSlice(tcpAddr.IP)
		}
		if !addr.IsValid() || !prefix.Contains(addr.Unmap()) {
			logger.Warn("Access denied from untrusted IP", zap.String("peer", p.Addr.String()))
			return nil, status.Error(codes.PermissionDenied, "access denied")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor создаёт интерцептор для логирования gRPC запросов.
// Ожидаемые отказы пишутся на info, внутренние ошибки на error.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		var clientIP string
		if p, ok := peer.FromContext(ctx); ok {
			clientIP = p.Addr.String()
		}

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("client_ip", clientIP),
			zap.String("status_code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if code == codes.Internal || code == codes.Unknown {
			logger.Error("gRPC request", append(fields, zap.Error(err))...)
		} else {
			logger.Info("gRPC request", fields...)
		}

		return resp, err
	}
}
