package bookings_service_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/service/booking"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements BookingsServiceServer on top of the booking use case.
type Server struct {
	bookings booking.BookingUseCase
	UnimplementedBookingsServiceServer
}

func NewServer(bookings booking.BookingUseCase) *Server {
	return &Server{bookings: bookings}
}

func (s *Server) CreateBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input booking.CreateBookingInput
	if err := fromStruct(req, &input); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode booking: %v", err)
	}

	created, err := s.bookings.CreateBooking(ctx, input)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(created)
}

func (s *Server) ListBookings(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	records, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(struct {
		Bookings []domain.BookingRecord `json:"bookings"`
	}{Bookings: records})
}

func (s *Server) CancelBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := bookingID(req)
	if err != nil {
		return nil, err
	}
	record, err := s.bookings.CancelBooking(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(record)
}

func (s *Server) ConfirmBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := bookingID(req)
	if err != nil {
		return nil, err
	}
	record, err := s.bookings.ConfirmBooking(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(record)
}

func bookingID(req *structpb.Struct) (string, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "id is required")
	}
	return id, nil
}

func toStatus(err error) error {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case booking.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func fromStruct(in *structpb.Struct, out any) error {
	payload, err := json.Marshal(in.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

func toStruct(v any) (*structpb.Struct, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

var _ BookingsServiceServer = (*Server)(nil)
