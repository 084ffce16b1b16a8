package bookings_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "spacetravel.bookings.v1.BookingsService"

const (
	methodCreateBooking  = "CreateBooking"
	methodListBookings   = "ListBookings"
	methodCancelBooking  = "CancelBooking"
	methodConfirmBooking = "ConfirmBooking"
)

// FullMethod returns the wire name of a BookingsService method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BookingsServiceServer carries bookings as google.protobuf.Struct values that
// mirror the JSON booking layout.
type BookingsServiceServer interface {
	CreateBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBookings(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	CancelBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type UnimplementedBookingsServiceServer struct{}

func (UnimplementedBookingsServiceServer) CreateBooking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBooking not implemented")
}

func (UnimplementedBookingsServiceServer) ListBookings(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBookings not implemented")
}

func (UnimplementedBookingsServiceServer) CancelBooking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelBooking not implemented")
}

func (UnimplementedBookingsServiceServer) ConfirmBooking(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmBooking not implemented")
}

var BookingsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: methodCreateBooking,
			Handler: unaryHandler(methodCreateBooking, func(srv BookingsServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreateBooking(ctx, in)
			}),
		},
		{
			MethodName: methodListBookings,
			Handler: unaryHandler(methodListBookings, func(srv BookingsServiceServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return srv.ListBookings(ctx, in)
			}),
		},
		{
			MethodName: methodCancelBooking,
			Handler: unaryHandler(methodCancelBooking, func(srv BookingsServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.CancelBooking(ctx, in)
			}),
		},
		{
			MethodName: methodConfirmBooking,
			Handler: unaryHandler(methodConfirmBooking, func(srv BookingsServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ConfirmBooking(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spacetravel/bookings/v1/bookings.proto",
}

func RegisterBookingsServiceServer(s grpc.ServiceRegistrar, srv BookingsServiceServer) {
	s.RegisterService(&BookingsService_ServiceDesc, srv)
}

func unaryHandler[Req any, PReq interface {
	*Req
	proto.Message
}](method string, call func(BookingsServiceServer, context.Context, PReq) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingsServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls BookingsService over any client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) CreateBooking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, methodCreateBooking, in, opts...)
}

func (c *Client) ListBookings(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, methodListBookings, in, opts...)
}

func (c *Client) CancelBooking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, methodCancelBooking, in, opts...)
}

func (c *Client) ConfirmBooking(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, methodConfirmBooking, in, opts...)
}

func invoke(ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
