package buddy

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "gymbuddy.v1.BuddyService"

// Method names. Every method takes and returns a google.protobuf.Struct.
const (
	MethodGetRecommendations = "GetRecommendations"
	MethodPutDecision        = "PutDecision"
	MethodCountLikedYou      = "CountLikedYou"
	MethodSearchUsers        = "SearchUsers"
	MethodUpdateProfile      = "UpdateProfile"
	MethodListMatches        = "ListMatches"
	MethodDeactivateMatch    = "DeactivateMatch"
	MethodOpenChat           = "OpenChat"
	MethodSendMessage        = "SendMessage"
	MethodReactToMessage     = "ReactToMessage"
	MethodListMessages       = "ListMessages"
	MethodSuggestSessions    = "SuggestSessions"
	MethodProposeSession     = "ProposeSession"
	MethodExportSession      = "ExportSession"
)

// BuddyServiceServer is the server API for the buddy service.
type BuddyServiceServer interface {
	GetRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PutDecision(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CountLikedYou(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMatches(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeactivateMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OpenChat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SendMessage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReactToMessage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMessages(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SuggestSessions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProposeSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(BuddyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// handler adapts a server method to grpc.MethodDesc, running the interceptor chain.
func handler(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BuddyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		h := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BuddyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, h)
	}
}

// FullMethod returns "/gymbuddy.v1.BuddyService/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BuddyService_ServiceDesc is the grpc.ServiceDesc for the buddy service.
var BuddyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BuddyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodGetRecommendations, Handler: handler(MethodGetRecommendations, BuddyServiceServer.GetRecommendations)},
		{MethodName: MethodPutDecision, Handler: handler(MethodPutDecision, BuddyServiceServer.PutDecision)},
		{MethodName: MethodCountLikedYou, Handler: handler(MethodCountLikedYou, BuddyServiceServer.CountLikedYou)},
		{MethodName: MethodSearchUsers, Handler: handler(MethodSearchUsers, BuddyServiceServer.SearchUsers)},
		{MethodName: MethodUpdateProfile, Handler: handler(MethodUpdateProfile, BuddyServiceServer.UpdateProfile)},
		{MethodName: MethodListMatches, Handler: handler(MethodListMatches, BuddyServiceServer.ListMatches)},
		{MethodName: MethodDeactivateMatch, Handler: handler(MethodDeactivateMatch, BuddyServiceServer.DeactivateMatch)},
		{MethodName: MethodOpenChat, Handler: handler(MethodOpenChat, BuddyServiceServer.OpenChat)},
		{MethodName: MethodSendMessage, Handler: handler(MethodSendMessage, BuddyServiceServer.SendMessage)},
		{MethodName: MethodReactToMessage, Handler: handler(MethodReactToMessage, BuddyServiceServer.ReactToMessage)},
		{MethodName: MethodListMessages, Handler: handler(MethodListMessages, BuddyServiceServer.ListMessages)},
		{MethodName: MethodSuggestSessions, Handler: handler(MethodSuggestSessions, BuddyServiceServer.SuggestSessions)},
		{MethodName: MethodProposeSession, Handler: handler(MethodProposeSession, BuddyServiceServer.ProposeSession)},
		{MethodName: MethodExportSession, Handler: handler(MethodExportSession, BuddyServiceServer.ExportSession)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gymbuddy/v1/buddy.proto",
}

// RegisterBuddyServiceServer attaches srv to s.
func RegisterBuddyServiceServer(s grpc.ServiceRegistrar, srv BuddyServiceServer) {
	s.RegisterService(&BuddyService_ServiceDesc, srv)
}

// Client calls the buddy service over a connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with in and returns the response struct.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
