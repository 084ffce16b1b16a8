package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/kafka"
	"github.com/Domenick1991/spacetravel/internal/repository"
	"github.com/Domenick1991/spacetravel/internal/service/fare"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error)
	ListBookings(ctx context.Context) ([]domain.BookingRecord, error)
	CancelBooking(ctx context.Context, id string) (*domain.BookingRecord, error)
	ConfirmBooking(ctx context.Context, id string) (*domain.BookingRecord, error)
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

type DestinationSource interface {
	FindDestination(id domain.DestinationID) (domain.Destination, bool)
}

type FareResolver interface {
	ResolveInput(destination, tier string) (fare.Fare, error)
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

// publishAttempts bounds broker retries for one event; a failed event is logged and dropped.
const publishAttempts = 3

// CreateBookingResult carries the stored record and the follow-up notice shown
// to the traveller.
type CreateBookingResult struct {
	Booking domain.BookingRecord `json:"booking"`
	Notice  string               `json:"notice"`
}

type BookingService struct {
	store              repository.BookingStore
	destinations       DestinationSource
	fares              FareResolver
	builder            *Builder
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.builder.now = now
	}
}

func WithIDGenerator(newID func() string) BookingServiceOption {
	return func(s *BookingService) {
		s.builder.newID = newID
	}
}

func NewBookingService(
	store repository.BookingStore,
	destinations DestinationSource,
	fares FareResolver,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:        store,
		destinations: destinations,
		fares:        fares,
		builder:      NewBuilder(),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	service.log = service.log.With(zap.String("service", "booking"))
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var destination domain.Destination
	if id, ok := domain.ParseDestinationID(input.Destination); ok {
		destination, _ = s.destinations.FindDestination(id)
	}
	if destination.ID == "" {
		s.log.Warn("Booking for unknown destination", zap.String("destination", input.Destination))
	}

	resolved, fareErr := s.fares.ResolveInput(input.Destination, input.CabinClass)
	if fareErr != nil {
		s.log.Warn("Fare unresolved, pricing at zero",
			zap.String("destination", input.Destination),
			zap.String("cabin_class", input.CabinClass),
			zap.Error(fareErr))
	}

	record := s.builder.Build(input, resolved, fareErr, destination)
	if err := s.store.Append(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", record.ID),
		zap.String("destination", record.Destination),
		zap.Int64("price", record.Price))
	s.publish(ctx, kafka.EventBookingCreated, record)

	return &CreateBookingResult{
		Booking: record,
		Notice:  domain.ConfirmationNotice(domain.CabinTier(record.CabinClass)),
	}, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.BookingRecord, error) {
	return s.store.List(ctx)
}

func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.BookingRecord, error) {
	return s.transition(ctx, id, s.store.Cancel, kafka.EventBookingCancelled)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id string) (*domain.BookingRecord, error) {
	return s.transition(ctx, id, s.store.Confirm, kafka.EventBookingConfirmed)
}

func (s *BookingService) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	return domain.Summarize(records), nil
}

type storeTransition func(ctx context.Context, id string) (*domain.BookingRecord, bool, error)

// transition publishes only when the store reports that it moved the status;
// disallowed moves come back unchanged.
func (s *BookingService) transition(ctx context.Context, id string, apply storeTransition, eventType string) (*domain.BookingRecord, error) {
	updated, changed, err := apply(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.Info("Booking status changed",
			zap.String("booking_id", id),
			zap.String("to", string(updated.Status)))
		s.publish(ctx, eventType, *updated)
	}
	return updated, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, record domain.BookingRecord) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, record, s.builder.now().UTC())

	err := s.producer.PublishWithRetry(ctx, s.bookingTopic, record.ID, event, publishAttempts)
	if err == nil && s.notificationsTopic != "" {
		err = s.producer.PublishWithRetry(ctx, s.notificationsTopic, record.ID, event, publishAttempts)
	}
	if err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.String("type", eventType),
			zap.String("booking_id", record.ID),
			zap.Error(err))
	}
}

// IsNotFound reports whether err means the booking id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrBookingNotFound)
}

var _ BookingUseCase = (*BookingService)(nil)
