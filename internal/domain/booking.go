package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingRecord is the persisted unit of a trip request. Field names follow the
// stored list layout shared with the web client.
type BookingRecord struct {
	ID                 string        `json:"id"`
	FirstName          string        `json:"firstName"`
	LastName           string        `json:"lastName"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Destination        string        `json:"destination"`
	DestinationName    string        `json:"destinationName"`
	CabinClass         string        `json:"cabinClass"`
	CabinClassName     string        `json:"cabinClassName"`
	CabinClassFeatures []string      `json:"cabinClassFeatures"`
	DepartureDate      string        `json:"departureDate"`
	ReturnDate         string        `json:"returnDate"`
	Passengers         int           `json:"passengers"`
	LaunchPad          string        `json:"launchPad"`
	SpecialRequests    string        `json:"specialRequests"`
	Price              int64         `json:"price"`
	Status             BookingStatus `json:"status"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// DashboardSummary aggregates the stored bookings for the traveller dashboard.
type DashboardSummary struct {
	TotalBookings int                   `json:"totalBookings"`
	UpcomingTrips int                   `json:"upcomingTrips"`
	ByStatus      map[BookingStatus]int `json:"byStatus"`
}

func Summarize(records []BookingRecord) DashboardSummary {
	summary := DashboardSummary{
		TotalBookings: len(records),
		ByStatus: map[BookingStatus]int{
			BookingStatusPending:   0,
			BookingStatusConfirmed: 0,
			BookingStatusCancelled: 0,
		},
	}
	for _, r := range records {
		summary.ByStatus[r.Status]++
		if r.Status == BookingStatusPending || r.Status == BookingStatusConfirmed {
			summary.UpcomingTrips++
		}
	}
	return summary
}

// ConfirmationNotice tells the traveller how the booking will be followed up.
func ConfirmationNotice(tier CabinTier) string {
	switch tier {
	case CabinLuxury, CabinVIP:
		return "A call from our concierge team within 24 hours"
	default:
		return "An email confirmation within 48 hours"
	}
}
