package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/spacetravel/internal/catalog"
	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/kafka"
	"github.com/Domenick1991/spacetravel/internal/repository"
	"github.com/Domenick1991/spacetravel/internal/service/fare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Append(ctx context.Context, record domain.BookingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBookingStore) List(ctx context.Context) ([]domain.BookingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRecord), args.Error(1)
}

func (m *MockBookingStore) Cancel(ctx context.Context, id string) (*domain.BookingRecord, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.BookingRecord), args.Bool(1), args.Error(2)
}

func (m *MockBookingStore) Confirm(ctx context.Context, id string) (*domain.BookingRecord, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.BookingRecord), args.Bool(1), args.Error(2)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error {
	args := m.Called(ctx, topic, key, value, maxRetries)
	return args.Error(0)
}

var fixedNow = time.Date(2025, time.May, 20, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, store repository.BookingStore, opts ...BookingServiceOption) *BookingService {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	opts = append([]BookingServiceOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "booking-1" }),
	}, opts...)
	return NewBookingService(store, cat, fare.NewResolver(cat), opts...)
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		FirstName:     "Valentina",
		LastName:      "Tereshkova",
		Email:         "valentina@example.com",
		Phone:         "+971 50 000 0000",
		Destination:   "space-hotel",
		CabinClass:    "economy",
		DepartureDate: "2025-06-01",
		ReturnDate:    "2025-06-01",
		Passengers:    2,
		LaunchPad:     "burj-khalifa",
	}
}

func TestBookingService_CreateBooking_EndToEnd(t *testing.T) {
	store := repository.NewBlobBookingStore(repository.NewMemoryKV())
	service := newTestService(t, store)
	ctx := context.Background()

	result, err := service.CreateBooking(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "An email confirmation within 48 hours", result.Notice)

	records, err := service.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, domain.BookingStatusPending, got.Status)
	assert.Equal(t, int64(350000), got.Price)
	assert.Equal(t, "booking-1", got.ID)
	assert.Equal(t, "Space Hotel Dubai", got.DestinationName)
	assert.Equal(t, "Economy Shuttle Seat", got.CabinClassName)
	assert.Equal(t, []string{}, got.CabinClassFeatures)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, result.Booking, got)
}

func TestBookingService_CreateBooking_VIPFeatures(t *testing.T) {
	store := &MockBookingStore{}
	service := newTestService(t, store)
	ctx := context.Background()

	input := validInput()
	input.Destination = "mars-colony"
	input.CabinClass = "vip"

	store.On("Append", ctx, mock.MatchedBy(func(r domain.BookingRecord) bool {
		return r.Price == 2000000 && r.CabinClassName == "VIP Zero-G Elite"
	})).Return(nil).Once()

	result, err := service.CreateBooking(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"VIP Pod", "Mars Rover Tour"}, result.Booking.CabinClassFeatures)
	assert.Equal(t, "A call from our concierge team within 24 hours", result.Notice)
	store.AssertExpectations(t)
}

func TestBookingService_CreateBooking_UnknownDestinationIsPermissive(t *testing.T) {
	store := &MockBookingStore{}
	core, logs := observer.New(zap.WarnLevel)
	service := newTestService(t, store, WithLogger(zap.New(core)))
	ctx := context.Background()

	input := validInput()
	input.Destination = "pluto-base"

	store.On("Append", ctx, mock.Anything).Return(nil).Once()

	result, err := service.CreateBooking(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Booking.Price)
	assert.Empty(t, result.Booking.DestinationName)
	assert.Empty(t, result.Booking.CabinClassName)
	assert.Equal(t, domain.BookingStatusPending, result.Booking.Status)
	assert.Equal(t, 2, logs.Len())
}

func TestBookingService_CreateBooking_Validation(t *testing.T) {
	store := &MockBookingStore{}
	service := newTestService(t, store)

	tests := []struct {
		name   string
		mutate func(*CreateBookingInput)
		field  string
	}{
		{"too many passengers", func(in *CreateBookingInput) { in.Passengers = 5 }, "passengers"},
		{"no passengers", func(in *CreateBookingInput) { in.Passengers = 0 }, "passengers"},
		{"bad email", func(in *CreateBookingInput) { in.Email = "not-an-email" }, "email"},
		{"bad tier", func(in *CreateBookingInput) { in.CabinClass = "first" }, "cabinClass"},
		{"bad date", func(in *CreateBookingInput) { in.DepartureDate = "01/06/2025" }, "departureDate"},
		{"missing name", func(in *CreateBookingInput) { in.FirstName = "" }, "firstName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			result, err := service.CreateBooking(context.Background(), input)
			assert.Nil(t, result)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
	store.AssertNotCalled(t, "Append")
}

func TestBookingService_CreateBooking_StoreError(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	expectedErr := errors.New("redis down")
	store.On("Append", ctx, mock.Anything).Return(expectedErr).Once()

	result, err := service.CreateBooking(ctx, validInput())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, expectedErr)
	producer.AssertNotCalled(t, "PublishWithRetry")
}

func TestBookingService_CreateBooking_Publishes(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store,
		WithProducer(producer, "bookings"),
		WithNotificationsTopic("notifications"),
	)
	ctx := context.Background()

	isCreated := mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCreated && e.BookingID == "booking-1" && e.Price == 350000
	})
	store.On("Append", ctx, mock.Anything).Return(nil).Once()
	producer.On("PublishWithRetry", ctx, "bookings", "booking-1", isCreated, publishAttempts).Return(nil).Once()
	producer.On("PublishWithRetry", ctx, "notifications", "booking-1", isCreated, publishAttempts).Return(nil).Once()

	_, err := service.CreateBooking(ctx, validInput())
	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_PublishFailureIsLogged(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	core, logs := observer.New(zap.WarnLevel)
	service := newTestService(t, store, WithProducer(producer, "bookings"), WithLogger(zap.New(core)))
	ctx := context.Background()

	store.On("Append", ctx, mock.Anything).Return(nil).Once()
	producer.On("PublishWithRetry", ctx, "bookings", "booking-1", mock.Anything, publishAttempts).Return(errors.New("broker down")).Once()

	result, err := service.CreateBooking(ctx, validInput())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish booking event").Len())
}

func TestBookingService_CancelBooking(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	cancelled := domain.BookingRecord{ID: "b-1", Status: domain.BookingStatusCancelled}

	store.On("Cancel", ctx, "b-1").Return(&cancelled, true, nil).Once()
	producer.On("PublishWithRetry", ctx, "bookings", "b-1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCancelled
	}), publishAttempts).Return(nil).Once()

	got, err := service.CancelBooking(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, got.Status)
	store.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CancelBooking_ConfirmedUnchanged(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	confirmed := domain.BookingRecord{ID: "b-1", Status: domain.BookingStatusConfirmed}
	store.On("Cancel", ctx, "b-1").Return(&confirmed, false, nil).Once()

	got, err := service.CancelBooking(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
	producer.AssertNotCalled(t, "PublishWithRetry")
}

func TestBookingService_CancelBooking_AlreadyCancelled(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	cancelled := domain.BookingRecord{ID: "b-1", Status: domain.BookingStatusCancelled}
	store.On("Cancel", ctx, "b-1").Return(&cancelled, false, nil).Once()

	_, err := service.CancelBooking(ctx, "b-1")
	require.NoError(t, err)
	producer.AssertNotCalled(t, "PublishWithRetry")
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	store := &MockBookingStore{}
	service := newTestService(t, store)
	ctx := context.Background()

	store.On("Cancel", ctx, "missing").Return(nil, false, fmt.Errorf("booking missing: %w", repository.ErrBookingNotFound)).Once()

	got, err := service.CancelBooking(ctx, "missing")
	assert.Nil(t, got)
	assert.True(t, IsNotFound(err))
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	store := &MockBookingStore{}
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	confirmed := domain.BookingRecord{ID: "b-1", Status: domain.BookingStatusConfirmed}

	store.On("Confirm", ctx, "b-1").Return(&confirmed, true, nil).Once()
	producer.On("PublishWithRetry", ctx, "bookings", "b-1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingConfirmed && e.Status == "confirmed"
	}), publishAttempts).Return(nil).Once()

	got, err := service.ConfirmBooking(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
	producer.AssertExpectations(t)
}

func TestBookingService_ConfirmBooking_StoreError(t *testing.T) {
	store := &MockBookingStore{}
	service := newTestService(t, store)
	ctx := context.Background()

	expectedErr := errors.New("update error")
	store.On("Confirm", ctx, "b-1").Return(nil, false, expectedErr).Once()

	got, err := service.ConfirmBooking(ctx, "b-1")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, expectedErr)
}

func TestBookingService_ConcurrentCancelPublishesOnce(t *testing.T) {
	store := repository.NewBlobBookingStore(repository.NewMemoryKV())
	producer := &MockProducer{}
	service := newTestService(t, store, WithProducer(producer, "bookings"))
	ctx := context.Background()

	producer.On("PublishWithRetry", ctx, "bookings", "booking-1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCreated
	}), publishAttempts).Return(nil).Once()
	producer.On("PublishWithRetry", ctx, "bookings", "booking-1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCancelled
	}), publishAttempts).Return(nil).Once()

	_, err := service.CreateBooking(ctx, validInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := service.CancelBooking(ctx, "booking-1")
			assert.NoError(t, err)
			assert.Equal(t, domain.BookingStatusCancelled, got.Status)
		}()
	}
	wg.Wait()

	producer.AssertExpectations(t)
	producer.AssertNumberOfCalls(t, "PublishWithRetry", 2)
}

func TestBookingService_Summary(t *testing.T) {
	store := &MockBookingStore{}
	service := newTestService(t, store)
	ctx := context.Background()

	store.On("List", ctx).Return([]domain.BookingRecord{
		{ID: "1", Status: domain.BookingStatusPending},
		{ID: "2", Status: domain.BookingStatusConfirmed},
		{ID: "3", Status: domain.BookingStatusCancelled},
	}, nil).Once()

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalBookings)
	assert.Equal(t, 2, summary.UpcomingTrips)
}

func TestBuilder_Build(t *testing.T) {
	b := &Builder{
		now:   func() time.Time { return fixedNow },
		newID: func() string { return "fixed" },
	}

	input := validInput()
	input.CabinClass = "vip"
	input.SpecialRequests = "window seat"

	features := []string{"Earth-View Suite", "Space Spa Access"}
	record := b.Build(input, fare.Fare{DisplayName: "VIP Zero-G Elite", Price: 750000, Features: features}, nil,
		domain.Destination{ID: domain.DestinationSpaceHotel, Name: "Space Hotel Dubai"})

	assert.Equal(t, "fixed", record.ID)
	assert.Equal(t, "window seat", record.SpecialRequests)
	assert.Equal(t, features, record.CabinClassFeatures)
	features[0] = "changed"
	assert.Equal(t, "Earth-View Suite", record.CabinClassFeatures[0])

	unresolved := b.Build(input, fare.Fare{Price: 999}, fare.ErrFareUnresolved, domain.Destination{})
	assert.Equal(t, int64(0), unresolved.Price)
	assert.Equal(t, []string{}, unresolved.CabinClassFeatures)
	assert.Empty(t, unresolved.DestinationName)
}
