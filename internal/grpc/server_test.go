package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/linktrack/internal/analytics"
	"github.com/tempizhere/linktrack/internal/grpc/proto"
	"github.com/tempizhere/linktrack/internal/models"
	"github.com/tempizhere/linktrack/internal/repository"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type testEnv struct {
	client   proto.LinkServiceClient
	svc      *service.Service
	repo     *repository.MemoryRepository
	recorder *service.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repository.NewMemoryRepository()
	recorder := service.NewRecorder(repo, service.RecorderConfig{Timeout: time.Second}, zap.NewNop())
	svc := service.NewService(repo, repo, recorder, "http://localhost:8080", "secret", zap.NewNop())

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(NewServer(svc, nil, zap.NewNop()), "10.0.0.0/8", zap.NewNop())
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{
		client:   proto.NewLinkServiceClient(conn),
		svc:      svc,
		repo:     repo,
		recorder: recorder,
	}
}

func (e *testEnv) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.recorder.Wait(ctx))
}

func (e *testEnv) authorized(t *testing.T, userID string) context.Context {
	t.Helper()
	token, err := e.svc.GenerateJWT(userID)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestServer_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.repo.CreateLink(ctx, &models.ShortLink{ID: "url_1", Code: "abc123", URL: "https://example.com", IsActive: true}))
	require.NoError(t, env.repo.CreateLink(ctx, &models.ShortLink{ID: "url_2", Code: "disabled1", URL: "https://example.com"}))

	md := metadata.AppendToOutgoingContext(ctx,
		"x-forwarded-for", "203.0.113.7, 10.0.0.1",
		"referer", "https://google.com/search",
		"x-vercel-ip-country", "US")
	resp, err := env.client.Resolve(md, &proto.ResolveRequest{Code: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", resp.URL)

	tests := []struct {
		name string
		code string
		want codes.Code
	}{
		{name: "empty", code: "", want: codes.NotFound},
		{name: "unknown", code: "nope99", want: codes.NotFound},
		{name: "disabled", code: "disabled1", want: codes.FailedPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Resolve(ctx, &proto.ResolveRequest{Code: tt.code})
			assert.Equal(t, tt.want, status.Code(err))
		})
	}

	env.wait(t)
	clicks, err := env.repo.ListClicks(ctx, "url_1", 10, 0)
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	require.NotNil(t, clicks[0].IPHash)
	assert.Equal(t, *analytics.HashIP("203.0.113.7"), *clicks[0].IPHash)
	require.NotNil(t, clicks[0].ReferrerDomain)
	assert.Equal(t, "google.com", *clicks[0].ReferrerDomain)
	require.NotNil(t, clicks[0].Country)
	assert.Equal(t, "US", *clicks[0].Country)

	disabledClicks, err := env.repo.ListClicks(ctx, "url_2", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, disabledClicks)
}

func TestServer_CreateLinkAndStats(t *testing.T) {
	env := newTestEnv(t)

	var header metadata.MD
	resp, err := env.client.CreateLink(context.Background(),
		&proto.CreateLinkRequest{URL: "https://example.com", Code: "promo-1"}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/promo-1", resp.Link.ShortURL)
	assert.True(t, resp.Link.IsActive)

	auth := header.Get("authorization")
	require.Len(t, auth, 1)
	ownerCtx := metadata.AppendToOutgoingContext(context.Background(), "authorization", auth[0])

	_, err = env.client.CreateLink(ownerCtx, &proto.CreateLinkRequest{URL: "https://example.org", Code: "promo-1"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	_, err = env.client.CreateLink(ownerCtx, &proto.CreateLinkRequest{URL: "not a url"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.Resolve(context.Background(), &proto.ResolveRequest{Code: "promo-1"})
	require.NoError(t, err)
	env.wait(t)

	stats, err := env.client.GetLinkStats(ownerCtx, &proto.GetLinkStatsRequest{LinkID: resp.Link.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Stats.TotalClicks)

	_, err = env.client.GetLinkStats(env.authorized(t, "usr_other"), &proto.GetLinkStatsRequest{LinkID: resp.Link.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	from := time.Now().Add(time.Hour)
	to := time.Now()
	_, err = env.client.GetLinkStats(ownerCtx, &proto.GetLinkStatsRequest{LinkID: resp.Link.ID, From: &from, To: &to})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_GetServiceStatsOverBufconnDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.GetServiceStats(context.Background(), &proto.GetServiceStatsRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestServer_GetServiceStats(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.CreateLink(ctx, &models.ShortLink{ID: "url_1", Code: "abc123", URL: "https://example.com", UserID: "usr_1"}))
	require.NoError(t, repo.InsertClick(ctx, &models.ClickRecord{ID: "clk_1", LinkID: "url_1", ClickedAt: time.Now()}))
	srv := NewServer(service.NewService(repo, repo, nil, "http://localhost:8080", "secret", zap.NewNop()), nil, zap.NewNop())

	resp, err := srv.GetServiceStats(ctx, &proto.GetServiceStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, &proto.GetServiceStatsResponse{Links: 1, Clicks: 1, Users: 1}, resp)
}

func TestServer_Ping(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Ping(context.Background(), &proto.PingRequest{})
	require.NoError(t, err)
	assert.False(t, resp.DatabaseAvailable)
}

func TestServer_MapError(t *testing.T) {
	srv := &Server{logger: zap.NewNop()}

	tests := []struct {
		err  error
		want codes.Code
	}{
		{service.ErrNotFound, codes.NotFound},
		{service.ErrCodeTaken, codes.AlreadyExists},
		{service.ErrInvalidURL, codes.InvalidArgument},
		{service.ErrInvalidCode, codes.InvalidArgument},
		{service.ErrInvalidExpiry, codes.InvalidArgument},
		{service.ErrInvalidRange, codes.InvalidArgument},
		{service.ErrInvalidPagination, codes.InvalidArgument},
		{errors.New("connection reset"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(srv.mapError(tt.err)), tt.err.Error())
	}
	assert.NoError(t, srv.mapError(nil))
}

func TestHeadersFromContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"user-agent", "curl/8.0",
		"x-real-ip", "198.51.100.4",
		":authority", "bufnet",
		"grpc-accept-encoding", "gzip",
	))

	h := headersFromContext(ctx, true)
	assert.Equal(t, "curl/8.0", h.Get("User-Agent"))
	assert.Equal(t, "198.51.100.4", h.Get("X-Real-IP"))
	assert.Empty(t, h.Get(":authority"))
	assert.Empty(t, h.Get("Grpc-Accept-Encoding"))
}

func TestHeadersFromContext_PeerFallback(t *testing.T) {
	ctx := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("203.0.113.9"), Port: 41000},
	})
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("user-agent", "curl/8.0"))

	tests := []struct {
		name     string
		fallback bool
		expected string
	}{
		{name: "disabled by default", fallback: false, expected: ""},
		{name: "enabled", fallback: true, expected: "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := headersFromContext(ctx, tt.fallback)
			assert.Equal(t, tt.expected, h.Get("X-Real-IP"))
			assert.Equal(t, "curl/8.0", h.Get("User-Agent"))
		})
	}
}
