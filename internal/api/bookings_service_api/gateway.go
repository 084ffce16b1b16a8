package bookings_service_api

import (
	"context"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type gatewayRoute struct {
	method  string
	pattern string
	rpc     string
	request func(r *http.Request, inbound runtime.Marshaler, params map[string]string) (proto.Message, error)
}

func bodyRequest(r *http.Request, inbound runtime.Marshaler, _ map[string]string) (proto.Message, error) {
	in := new(structpb.Struct)
	if err := inbound.NewDecoder(r.Body).Decode(in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	return in, nil
}

func emptyRequest(*http.Request, runtime.Marshaler, map[string]string) (proto.Message, error) {
	return new(emptypb.Empty), nil
}

func idRequest(_ *http.Request, _ runtime.Marshaler, params map[string]string) (proto.Message, error) {
	return structpb.NewStruct(map[string]any{"id": params["id"]})
}

var gatewayRoutes = []gatewayRoute{
	{http.MethodPost, "/v1/bookings", methodCreateBooking, bodyRequest},
	{http.MethodGet, "/v1/bookings", methodListBookings, emptyRequest},
	{http.MethodDelete, "/v1/bookings/{id}", methodCancelBooking, idRequest},
	{http.MethodPost, "/v1/bookings/{id}/confirm", methodConfirmBooking, idRequest},
}

// RegisterBookingsServiceHandler forwards the REST routes of BookingsService on
// mux to conn.
func RegisterBookingsServiceHandler(_ context.Context, mux *runtime.ServeMux, conn grpc.ClientConnInterface) error {
	for _, route := range gatewayRoutes {
		if err := mux.HandlePath(route.method, route.pattern, forward(mux, conn, route)); err != nil {
			return err
		}
	}
	return nil
}

func forward(mux *runtime.ServeMux, conn grpc.ClientConnInterface, route gatewayRoute) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		inbound, outbound := runtime.MarshalerForRequest(mux, r)

		ctx, err := runtime.AnnotateContext(ctx, mux, r, FullMethod(route.rpc), runtime.WithHTTPPathPattern(route.pattern))
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}

		in, err := route.request(r, inbound, params)
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}

		var md runtime.ServerMetadata
		out, err := invoke(ctx, conn, route.rpc, in, grpc.Header(&md.HeaderMD), grpc.Trailer(&md.TrailerMD))
		ctx = runtime.NewServerMetadataContext(ctx, md)
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}
		runtime.ForwardResponseMessage(ctx, mux, outbound, w, r, out)
	}
}
