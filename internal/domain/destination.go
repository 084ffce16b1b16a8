package domain

import "time"

type DestinationID string

const (
	DestinationLunarGateway DestinationID = "lunar-gateway"
	DestinationMarsColony   DestinationID = "mars-colony"
	DestinationSpaceHotel   DestinationID = "space-hotel"
	DestinationVenusCloud   DestinationID = "venus-cloud"
	DestinationJupiterMoon  DestinationID = "jupiter-moon"
	DestinationSaturnRing   DestinationID = "saturn-ring"
)

// DestinationIDs lists every known destination in catalog order.
var DestinationIDs = []DestinationID{
	DestinationLunarGateway,
	DestinationMarsColony,
	DestinationSpaceHotel,
	DestinationVenusCloud,
	DestinationJupiterMoon,
	DestinationSaturnRing,
}

// ParseDestinationID maps external input onto the closed set of destinations.
func ParseDestinationID(s string) (DestinationID, bool) {
	id := DestinationID(s)
	switch id {
	case DestinationLunarGateway, DestinationMarsColony, DestinationSpaceHotel,
		DestinationVenusCloud, DestinationJupiterMoon, DestinationSaturnRing:
		return id, true
	default:
		return "", false
	}
}

type CabinTier string

const (
	CabinEconomy CabinTier = "economy"
	CabinLuxury  CabinTier = "luxury"
	CabinVIP     CabinTier = "vip"
)

var CabinTiers = []CabinTier{CabinEconomy, CabinLuxury, CabinVIP}

func ParseCabinTier(s string) (CabinTier, bool) {
	tier := CabinTier(s)
	switch tier {
	case CabinEconomy, CabinLuxury, CabinVIP:
		return tier, true
	default:
		return "", false
	}
}

type Destination struct {
	ID          DestinationID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       string        `json:"price"`
	Duration    string        `json:"duration"`
	Image       string        `json:"image"`
	Features    []string      `json:"features"`
}

type OrbitWindow struct {
	Distance     string `json:"distance"`
	Availability string `json:"availability"`
	Duration     string `json:"duration"`
	Alert        string `json:"alert"`
}

type CabinClass struct {
	Tier     CabinTier `json:"tier"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Features []string  `json:"features"`
}

type LaunchPad struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type StayUnit string

const (
	StayHours  StayUnit = "hours"
	StayDays   StayUnit = "days"
	StayMonths StayUnit = "months"
	StayYears  StayUnit = "years"
)

// Stay is a trip length in the unit natural for the destination.
type Stay struct {
	Amount int      `json:"amount"`
	Unit   StayUnit `json:"unit"`
}

// AddTo returns t shifted by the stay. Month and year overflow normalises like time.AddDate.
func (s Stay) AddTo(t time.Time) time.Time {
	switch s.Unit {
	case StayHours:
		return t.Add(time.Duration(s.Amount) * time.Hour)
	case StayDays:
		return t.AddDate(0, 0, s.Amount)
	case StayMonths:
		return t.AddDate(0, s.Amount, 0)
	case StayYears:
		return t.AddDate(s.Amount, 0, 0)
	default:
		return t
	}
}

// TripRule holds the departure window and stay limits of a destination.
// Continuous destinations depart any day; the window dates are zero for them.
type TripRule struct {
	Continuous  bool
	WindowOpen  time.Time
	WindowClose time.Time
	MinStay     Stay
	MaxStay     Stay
}
