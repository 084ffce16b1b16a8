package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/kafka"
	"go.uber.org/zap"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender renders booking events into messages. Delivery is a structured log
// entry; no mail transport is configured.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sender{log: log.With(zap.String("component", "email"))}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.log.Warn("Booking event without recipient", zap.String("booking_id", event.BookingID), zap.String("type", event.Type))
		return nil
	}

	msg, ok := Compose(event)
	if !ok {
		s.log.Debug("No notification for event", zap.String("type", event.Type))
		return nil
	}

	s.log.Info("Sending email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("booking_id", event.BookingID),
		zap.String("type", event.Type),
	)
	return ctx.Err()
}

func Compose(event kafka.BookingEvent) (Message, bool) {
	name := event.DestinationName
	if name == "" {
		name = event.Destination
	}
	greeting := fmt.Sprintf("Dear %s %s,", event.FirstName, event.LastName)

	var subject, body string
	switch event.Type {
	case kafka.EventBookingCreated:
		subject = fmt.Sprintf("Your trip to %s is booked", name)
		body = fmt.Sprintf("%s\n\nWe received your booking %s for %d passenger(s), departing %s and returning %s.\nWhat happens next: %s.",
			greeting, event.BookingID, event.Passengers, event.DepartureDate, event.ReturnDate,
			domain.ConfirmationNotice(domain.CabinTier(event.CabinClass)))
	case kafka.EventBookingConfirmed:
		subject = fmt.Sprintf("Your trip to %s is confirmed", name)
		body = fmt.Sprintf("%s\n\nBooking %s is confirmed. Departure: %s.", greeting, event.BookingID, event.DepartureDate)
	case kafka.EventBookingCancelled:
		subject = fmt.Sprintf("Your trip to %s was cancelled", name)
		body = fmt.Sprintf("%s\n\nBooking %s has been cancelled.", greeting, event.BookingID)
	default:
		return Message{}, false
	}

	return Message{To: event.Email, Subject: subject, Body: body}, true
}
