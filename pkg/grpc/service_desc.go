package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// AlertService speaks google.protobuf.Struct on the wire so any gRPC client
// can call it without generated stubs. The JSON shape of each message is
// documented on the request and response types in messages.go.

const AlertService_ServiceName = "trinetra.alerts.v1.AlertService"

const (
	AlertService_SaveAlert_FullMethodName           = "/trinetra.alerts.v1.AlertService/SaveAlert"
	AlertService_GetAllAlerts_FullMethodName        = "/trinetra.alerts.v1.AlertService/GetAllAlerts"
	AlertService_MarkAlertAsRead_FullMethodName     = "/trinetra.alerts.v1.AlertService/MarkAlertAsRead"
	AlertService_MarkAllAlertsAsRead_FullMethodName = "/trinetra.alerts.v1.AlertService/MarkAllAlertsAsRead"
	AlertService_DeleteAlert_FullMethodName         = "/trinetra.alerts.v1.AlertService/DeleteAlert"
	AlertService_ClearAllAlerts_FullMethodName      = "/trinetra.alerts.v1.AlertService/ClearAllAlerts"
	AlertService_SetAlertStatus_FullMethodName      = "/trinetra.alerts.v1.AlertService/SetAlertStatus"
	AlertService_PostLimiter_FullMethodName         = "/trinetra.alerts.v1.AlertService/PostLimiter"
	AlertService_WatchAlerts_FullMethodName         = "/trinetra.alerts.v1.AlertService/WatchAlerts"
)

// AlertServiceServer is the server API for AlertService.
type AlertServiceServer interface {
	SaveAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAllAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkAlertAsRead(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkAllAlertsAsRead(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	DeleteAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearAllAlerts(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetAlertStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchAlerts(*emptypb.Empty, AlertService_WatchAlertsServer) error
}

type AlertService_WatchAlertsServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type alertServiceWatchAlertsServer struct {
	grpc.ServerStream
}

func (x *alertServiceWatchAlertsServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// unaryMethodHandler matches grpc.MethodDesc.Handler.
type unaryMethodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler[Req proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(AlertServiceServer, context.Context, Req) (*structpb.Struct, error),
) unaryMethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AlertServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AlertServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

func _AlertService_WatchAlerts_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(AlertServiceServer).WatchAlerts(m, &alertServiceWatchAlertsServer{stream})
}

var AlertService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AlertService_ServiceName,
	HandlerType: (*AlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SaveAlert",
			Handler:    unaryHandler(AlertService_SaveAlert_FullMethodName, newStruct, AlertServiceServer.SaveAlert),
		},
		{
			MethodName: "GetAllAlerts",
			Handler:    unaryHandler(AlertService_GetAllAlerts_FullMethodName, newStruct, AlertServiceServer.GetAllAlerts),
		},
		{
			MethodName: "MarkAlertAsRead",
			Handler:    unaryHandler(AlertService_MarkAlertAsRead_FullMethodName, newStruct, AlertServiceServer.MarkAlertAsRead),
		},
		{
			MethodName: "MarkAllAlertsAsRead",
			Handler:    unaryHandler(AlertService_MarkAllAlertsAsRead_FullMethodName, newEmpty, AlertServiceServer.MarkAllAlertsAsRead),
		},
		{
			MethodName: "DeleteAlert",
			Handler:    unaryHandler(AlertService_DeleteAlert_FullMethodName, newStruct, AlertServiceServer.DeleteAlert),
		},
		{
			MethodName: "ClearAllAlerts",
			Handler:    unaryHandler(AlertService_ClearAllAlerts_FullMethodName, newEmpty, AlertServiceServer.ClearAllAlerts),
		},
		{
			MethodName: "SetAlertStatus",
			Handler:    unaryHandler(AlertService_SetAlertStatus_FullMethodName, newStruct, AlertServiceServer.SetAlertStatus),
		},
		{
			MethodName: "PostLimiter",
			Handler:    unaryHandler(AlertService_PostLimiter_FullMethodName, newStruct, AlertServiceServer.PostLimiter),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchAlerts",
			Handler:       _AlertService_WatchAlerts_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "alerts/v1/alert_service.proto",
}

func RegisterAlertServiceServer(s grpc.ServiceRegistrar, srv AlertServiceServer) {
	s.RegisterService(&AlertService_ServiceDesc, srv)
}

// AlertServiceClient is the raw client API for AlertService.
type AlertServiceClient interface {
	SaveAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetAllAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	MarkAlertAsRead(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	MarkAllAlertsAsRead(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearAllAlerts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetAlertStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchAlerts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (AlertService_WatchAlertsClient, error)
}

type alertServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAlertServiceClient(cc grpc.ClientConnInterface) AlertServiceClient {
	return &alertServiceClient{cc}
}

func (c *alertServiceClient) invoke(ctx context.Context, method string, in proto.Message, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *alertServiceClient) SaveAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_SaveAlert_FullMethodName, in, opts)
}

func (c *alertServiceClient) GetAllAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_GetAllAlerts_FullMethodName, in, opts)
}

func (c *alertServiceClient) MarkAlertAsRead(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_MarkAlertAsRead_FullMethodName, in, opts)
}

func (c *alertServiceClient) MarkAllAlertsAsRead(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_MarkAllAlertsAsRead_FullMethodName, in, opts)
}

func (c *alertServiceClient) DeleteAlert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_DeleteAlert_FullMethodName, in, opts)
}

func (c *alertServiceClient) ClearAllAlerts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_ClearAllAlerts_FullMethodName, in, opts)
}

func (c *alertServiceClient) SetAlertStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_SetAlertStatus_FullMethodName, in, opts)
}

func (c *alertServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AlertService_PostLimiter_FullMethodName, in, opts)
}

func (c *alertServiceClient) WatchAlerts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (AlertService_WatchAlertsClient, error) {
	stream, err := c.cc.NewStream(ctx, &AlertService_ServiceDesc.Streams[0], AlertService_WatchAlerts_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &alertServiceWatchAlertsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type AlertService_WatchAlertsClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type alertServiceWatchAlertsClient struct {
	grpc.ClientStream
}

func (x *alertServiceWatchAlertsClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
