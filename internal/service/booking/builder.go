package booking

import (
	"slices"
	"time"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/service/fare"
	"github.com/google/uuid"
)

// CreateBookingInput is the booking form as submitted by the traveller.
type CreateBookingInput struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=32"`
	Destination     string `json:"destination" validate:"required"`
	CabinClass      string `json:"cabinClass" validate:"required,oneof=economy luxury vip"`
	DepartureDate   string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate      string `json:"returnDate" validate:"required,datetime=2006-01-02"`
	Passengers      int    `json:"passengers" validate:"min=1,max=4"`
	LaunchPad       string `json:"launchPad" validate:"required"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

// Builder turns a submitted form and its resolved fare into a new pending record.
type Builder struct {
	now   func() time.Time
	newID func() string
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now, newID: uuid.NewString}
}

// Build never persists. A non-nil fareErr leaves price at zero and the cabin
// names empty; a zero destination leaves the destination name empty.
func (b *Builder) Build(input CreateBookingInput, resolved fare.Fare, fareErr error, destination domain.Destination) domain.BookingRecord {
	record := domain.BookingRecord{
		ID:                 b.newID(),
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              input.Email,
		Phone:              input.Phone,
		Destination:        input.Destination,
		DestinationName:    destination.Name,
		CabinClass:         input.CabinClass,
		CabinClassFeatures: []string{},
		DepartureDate:      input.DepartureDate,
		ReturnDate:         input.ReturnDate,
		Passengers:         input.Passengers,
		LaunchPad:          input.LaunchPad,
		SpecialRequests:    input.SpecialRequests,
		Status:             domain.BookingStatusPending,
		CreatedAt:          b.now().UTC(),
	}

	if fareErr == nil {
		record.CabinClassName = resolved.DisplayName
		record.Price = resolved.Price
		if input.CabinClass == string(domain.CabinVIP) {
			record.CabinClassFeatures = slices.Clone(resolved.Features)
		}
	}
	return record
}
