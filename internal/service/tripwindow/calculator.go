// Package tripwindow computes the departure and return date bounds offered for a destination.
//
// Unknown destinations are never an error: every bound degrades to today or unbounded so
// the booking form stays usable with unvalidated input.
package tripwindow

import (
	"time"

	"github.com/Domenick1991/spacetravel/internal/domain"
)

type RuleSource interface {
	TripRule(id domain.DestinationID) (domain.TripRule, bool)
}

type Calculator struct {
	rules RuleSource
}

func NewCalculator(rules RuleSource) *Calculator {
	return &Calculator{rules: rules}
}

// MinDepartureDate returns today for continuous destinations and the fixed window
// opening date otherwise. The window does not move with today.
func (c *Calculator) MinDepartureDate(id domain.DestinationID, today time.Time) time.Time {
	rule, ok := c.rules.TripRule(id)
	if !ok || rule.Continuous {
		return domain.DateOf(today)
	}
	return rule.WindowOpen
}

func (c *Calculator) MaxDepartureDate(id domain.DestinationID) domain.DateBound {
	rule, ok := c.rules.TripRule(id)
	if !ok || rule.Continuous {
		return domain.Unbounded()
	}
	return domain.BoundAt(rule.WindowClose)
}

// MinReturnDate adds the minimum stay to departure. A zero departure means none
// has been chosen yet and yields today.
func (c *Calculator) MinReturnDate(id domain.DestinationID, departure, today time.Time) time.Time {
	rule, ok := c.rules.TripRule(id)
	if departure.IsZero() || !ok {
		return domain.DateOf(today)
	}
	return domain.DateOf(rule.MinStay.AddTo(domain.DateOf(departure)))
}

func (c *Calculator) MaxReturnDate(id domain.DestinationID, departure time.Time) domain.DateBound {
	rule, ok := c.rules.TripRule(id)
	if departure.IsZero() || !ok {
		return domain.Unbounded()
	}
	return domain.BoundAt(rule.MaxStay.AddTo(domain.DateOf(departure)))
}

// Windows is the full set of bounds shown on the booking form.
type Windows struct {
	Destination  domain.DestinationID `json:"destination"`
	MinDeparture string               `json:"minDepartureDate"`
	MaxDeparture domain.DateBound     `json:"maxDepartureDate"`
	MinReturn    string               `json:"minReturnDate"`
	MaxReturn    domain.DateBound     `json:"maxReturnDate"`
	Continuous   bool                 `json:"continuous"`
	// WindowClosed is set when the fixed launch window already lies in the past.
	WindowClosed bool `json:"windowClosed"`
}

func (c *Calculator) Windows(id domain.DestinationID, today, departure time.Time) Windows {
	rule, known := c.rules.TripRule(id)
	w := Windows{
		Destination:  id,
		MinDeparture: domain.FormatDate(c.MinDepartureDate(id, today)),
		MaxDeparture: c.MaxDepartureDate(id),
		MinReturn:    domain.FormatDate(c.MinReturnDate(id, departure, today)),
		MaxReturn:    c.MaxReturnDate(id, departure),
		Continuous:   !known || rule.Continuous,
	}
	if closeAt, ok := w.MaxDeparture.Date(); ok && closeAt.Before(domain.DateOf(today)) {
		w.WindowClosed = true
	}
	return w
}
