package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/spacetravel/internal/domain"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type document struct {
	Destinations []destinationDoc `yaml:"destinations"`
	LaunchPads   []launchPadDoc   `yaml:"launch_pads"`
	Tips         []string         `yaml:"tips"`
}

type destinationDoc struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Price       string              `yaml:"price"`
	Duration    string              `yaml:"duration"`
	Image       string              `yaml:"image"`
	Features    []string            `yaml:"features"`
	Orbit       *orbitDoc           `yaml:"orbit"`
	Trip        *tripDoc            `yaml:"trip"`
	Cabins      map[string]cabinDoc `yaml:"cabins"`
}

type orbitDoc struct {
	Distance     string `yaml:"distance"`
	Availability string `yaml:"availability"`
	Duration     string `yaml:"duration"`
	Alert        string `yaml:"alert"`
}

type tripDoc struct {
	Continuous  bool    `yaml:"continuous"`
	WindowOpen  string  `yaml:"window_open"`
	WindowClose string  `yaml:"window_close"`
	MinStay     stayDoc `yaml:"min_stay"`
	MaxStay     stayDoc `yaml:"max_stay"`
}

type stayDoc struct {
	Amount int    `yaml:"amount"`
	Unit   string `yaml:"unit"`
}

type cabinDoc struct {
	Name     string   `yaml:"name"`
	Price    int64    `yaml:"price"`
	Features []string `yaml:"features"`
}

type launchPadDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

func (doc document) build() (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[domain.DestinationID]int, len(doc.Destinations)),
		orbits: make(map[domain.DestinationID]domain.OrbitWindow),
		rules:  make(map[domain.DestinationID]domain.TripRule),
		cabins: make(map[cabinKey]domain.CabinClass),
		tips:   doc.Tips,
	}

	for _, d := range doc.Destinations {
		id, ok := domain.ParseDestinationID(d.ID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown destination %q", ErrInvalidCatalog, d.ID)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate destination %q", ErrInvalidCatalog, id)
		}
		c.byID[id] = len(c.destinations)
		c.destinations = append(c.destinations, domain.Destination{
			ID:          id,
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Duration:    d.Duration,
			Image:       d.Image,
			Features:    nonNil(d.Features),
		})

		if d.Trip != nil {
			rule, err := d.Trip.rule()
			if err != nil {
				return nil, fmt.Errorf("%w: destination %q: %v", ErrInvalidCatalog, id, err)
			}
			c.rules[id] = rule
		}

		if d.Orbit == nil {
			continue
		}
		c.orbits[id] = domain.OrbitWindow(*d.Orbit)

		if len(d.Cabins) != len(domain.CabinTiers) {
			return nil, fmt.Errorf("%w: destination %q has %d cabin classes, want %d",
				ErrInvalidCatalog, id, len(d.Cabins), len(domain.CabinTiers))
		}
		for key, cabin := range d.Cabins {
			tier, ok := domain.ParseCabinTier(key)
			if !ok {
				return nil, fmt.Errorf("%w: destination %q: unknown cabin tier %q", ErrInvalidCatalog, id, key)
			}
			if tier != domain.CabinVIP && len(cabin.Features) > 0 {
				return nil, fmt.Errorf("%w: destination %q: only vip cabins carry features", ErrInvalidCatalog, id)
			}
			if tier == domain.CabinVIP && len(cabin.Features) == 0 {
				return nil, fmt.Errorf("%w: destination %q: vip cabin lists no features", ErrInvalidCatalog, id)
			}
			c.cabins[cabinKey{destination: id, tier: tier}] = domain.CabinClass{
				Tier:     tier,
				Name:     cabin.Name,
				Price:    cabin.Price,
				Features: nonNil(cabin.Features),
			}
		}
	}

	for _, p := range doc.LaunchPads {
		c.launchPads = append(c.launchPads, domain.LaunchPad(p))
	}

	return c, nil
}

func (t tripDoc) rule() (domain.TripRule, error) {
	minStay, err := t.MinStay.stay()
	if err != nil {
		return domain.TripRule{}, fmt.Errorf("min stay: %w", err)
	}
	maxStay, err := t.MaxStay.stay()
	if err != nil {
		return domain.TripRule{}, fmt.Errorf("max stay: %w", err)
	}
	ref := time.Date(2000, time.January, 31, 0, 0, 0, 0, time.UTC)
	if maxStay.AddTo(ref).Before(minStay.AddTo(ref)) {
		return domain.TripRule{}, errors.New("max stay is shorter than min stay")
	}

	rule := domain.TripRule{Continuous: t.Continuous, MinStay: minStay, MaxStay: maxStay}
	if t.Continuous {
		return rule, nil
	}

	if rule.WindowOpen, err = domain.ParseDate(t.WindowOpen); err != nil {
		return domain.TripRule{}, fmt.Errorf("window open: %w", err)
	}
	if rule.WindowClose, err = domain.ParseDate(t.WindowClose); err != nil {
		return domain.TripRule{}, fmt.Errorf("window close: %w", err)
	}
	if rule.WindowClose.Before(rule.WindowOpen) {
		return domain.TripRule{}, errors.New("window closes before it opens")
	}
	return rule, nil
}

func (s stayDoc) stay() (domain.Stay, error) {
	unit := domain.StayUnit(s.Unit)
	switch unit {
	case domain.StayHours, domain.StayDays, domain.StayMonths, domain.StayYears:
	default:
		return domain.Stay{}, fmt.Errorf("unknown unit %q", s.Unit)
	}
	if s.Amount < 0 {
		return domain.Stay{}, fmt.Errorf("negative amount %d", s.Amount)
	}
	return domain.Stay{Amount: s.Amount, Unit: unit}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
