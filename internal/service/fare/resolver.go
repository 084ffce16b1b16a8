package fare

import (
	"errors"

	"github.com/Domenick1991/spacetravel/internal/domain"
)

// ErrFareUnresolved means the destination has no cabin of the requested tier.
// Callers price such a booking at zero instead of guessing.
var ErrFareUnresolved = errors.New("fare unresolved")

type CabinSource interface {
	GetCabinClass(id domain.DestinationID, tier domain.CabinTier) (domain.CabinClass, bool)
}

type Fare struct {
	DisplayName string   `json:"displayName"`
	Price       int64    `json:"price"`
	Features    []string `json:"features"`
}

type Resolver struct {
	cabins CabinSource
}

func NewResolver(cabins CabinSource) *Resolver {
	return &Resolver{cabins: cabins}
}

func (r *Resolver) Resolve(id domain.DestinationID, tier domain.CabinTier) (Fare, error) {
	cabin, ok := r.cabins.GetCabinClass(id, tier)
	if !ok {
		return Fare{Features: []string{}}, ErrFareUnresolved
	}

	features := []string{}
	if tier == domain.CabinVIP {
		features = append(features, cabin.Features...)
	}
	return Fare{DisplayName: cabin.Name, Price: cabin.Price, Features: features}, nil
}

// ResolveInput resolves raw form values, treating unknown identifiers as unresolved.
func (r *Resolver) ResolveInput(destination, tier string) (Fare, error) {
	id, ok := domain.ParseDestinationID(destination)
	if !ok {
		return Fare{Features: []string{}}, ErrFareUnresolved
	}
	t, ok := domain.ParseCabinTier(tier)
	if !ok {
		return Fare{Features: []string{}}, ErrFareUnresolved
	}
	return r.Resolve(id, t)
}
