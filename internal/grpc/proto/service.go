package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName содержит полное имя gRPC сервиса
const ServiceName = "linktrack.v1.LinkService"

// Полные имена методов сервиса
const (
	LinkServiceResolveMethod         = "/" + ServiceName + "/Resolve"
	LinkServiceCreateLinkMethod      = "/" + ServiceName + "/CreateLink"
	LinkServiceGetLinkStatsMethod    = "/" + ServiceName + "/GetLinkStats"
	LinkServiceGetServiceStatsMethod = "/" + ServiceName + "/GetServiceStats"
	LinkServicePingMethod            = "/" + ServiceName + "/Ping"
)

// LinkServiceServer представляет интерфейс gRPC сервиса
type LinkServiceServer interface {
	Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error)
	CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error)
	GetLinkStats(ctx context.Context, req *GetLinkStatsRequest) (*GetLinkStatsResponse, error)
	GetServiceStats(ctx context.Context, req *GetServiceStatsRequest) (*GetServiceStatsResponse, error)
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)
}

// UnimplementedLinkServiceServer отвечает codes.Unimplemented на все методы
type UnimplementedLinkServiceServer struct{}

func (UnimplementedLinkServiceServer) Resolve(context.Context, *ResolveRequest) (*ResolveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Resolve not implemented")
}

func (UnimplementedLinkServiceServer) CreateLink(context.Context, *CreateLinkRequest) (*CreateLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateLink not implemented")
}

func (UnimplementedLinkServiceServer) GetLinkStats(context.Context, *GetLinkStatsRequest) (*GetLinkStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLinkStats not implemented")
}

func (UnimplementedLinkServiceServer) GetServiceStats(context.Context, *GetServiceStatsRequest) (*GetServiceStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetServiceStats not implemented")
}

func (UnimplementedLinkServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unaryHandler строит grpc.MethodHandler для метода с типом запроса Req
func unaryHandler[Req any, Resp any](fullMethod string, call func(LinkServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LinkServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LinkServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LinkServiceDesc описывает сервис для grpc.Server
var LinkServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: unaryHandler(LinkServiceResolveMethod, LinkServiceServer.Resolve)},
		{MethodName: "CreateLink", Handler: unaryHandler(LinkServiceCreateLinkMethod, LinkServiceServer.CreateLink)},
		{MethodName: "GetLinkStats", Handler: unaryHandler(LinkServiceGetLinkStatsMethod, LinkServiceServer.GetLinkStats)},
		{MethodName: "GetServiceStats", Handler: unaryHandler(LinkServiceGetServiceStatsMethod, LinkServiceServer.GetServiceStats)},
		{MethodName: "Ping", Handler: unaryHandler(LinkServicePingMethod, LinkServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linktrack/v1/link_service.proto",
}

// RegisterLinkServiceServer регистрирует реализацию сервиса в gRPC сервере
func RegisterLinkServiceServer(s grpc.ServiceRegistrar, srv LinkServiceServer) {
	s.RegisterService(&LinkServiceDesc, srv)
}

// LinkServiceClient представляет клиент сервиса ссылок
type LinkServiceClient interface {
	Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error)
	CreateLink(ctx context.Context, in *CreateLinkRequest, opts ...grpc.CallOption) (*CreateLinkResponse, error)
	GetLinkStats(ctx context.Context, in *GetLinkStatsRequest, opts ...grpc.CallOption) (*GetLinkStatsResponse, error)
	GetServiceStats(ctx context.Context, in *GetServiceStatsRequest, opts ...grpc.CallOption) (*GetServiceStatsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type linkServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLinkServiceClient создаёт клиент поверх соединения; сообщения кодируются в JSON
func NewLinkServiceClient(cc grpc.ClientConnInterface) LinkServiceClient {
	return &linkServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *linkServiceClient) Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	return invoke[ResolveResponse](ctx, c.cc, LinkServiceResolveMethod, in, opts)
}

func (c *linkServiceClient) CreateLink(ctx context.Context, in *CreateLinkRequest, opts ...grpc.CallOption) (*CreateLinkResponse, error) {
	return invoke[CreateLinkResponse](ctx, c.cc, LinkServiceCreateLinkMethod, in, opts)
}

func (c *linkServiceClient) GetLinkStats(ctx context.Context, in *GetLinkStatsRequest, opts ...grpc.CallOption) (*GetLinkStatsResponse, error) {
	return invoke[GetLinkStatsResponse](ctx, c.cc, LinkServiceGetLinkStatsMethod, in, opts)
}

func (c *linkServiceClient) GetServiceStats(ctx context.Context, in *GetServiceStatsRequest, opts ...grpc.CallOption) (*GetServiceStatsResponse, error) {
	return invoke[GetServiceStatsResponse](ctx, c.cc, LinkServiceGetServiceStatsMethod, in, opts)
}

func (c *linkServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, LinkServicePingMethod, in, opts)
}
