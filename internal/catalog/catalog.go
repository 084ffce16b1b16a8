// Package catalog holds the immutable destination reference data: destinations,
// orbit windows, trip rules, cabin classes, launch pads and travel tips.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type cabinKey struct {
	destination domain.DestinationID
	tier        domain.CabinTier
}

// Catalog is safe for concurrent reads; nothing mutates it after Load.
type Catalog struct {
	destinations []domain.Destination
	byID         map[domain.DestinationID]int
	orbits       map[domain.DestinationID]domain.OrbitWindow
	rules        map[domain.DestinationID]domain.TripRule
	cabins       map[cabinKey]domain.CabinClass
	launchPads   []domain.LaunchPad
	tips         []string
}

// Default parses the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads the catalog from path, falling back to the embedded document when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc.build()
}

func (c *Catalog) ListDestinations() []domain.Destination {
	out := make([]domain.Destination, len(c.destinations))
	for i, d := range c.destinations {
		out[i] = cloneDestination(d)
	}
	return out
}

func (c *Catalog) FindDestination(id domain.DestinationID) (domain.Destination, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Destination{}, false
	}
	return cloneDestination(c.destinations[i]), true
}

func (c *Catalog) ListLaunchPads() []domain.LaunchPad {
	return slices.Clone(c.launchPads)
}

func (c *Catalog) FindLaunchPad(id string) (domain.LaunchPad, bool) {
	for _, p := range c.launchPads {
		if p.ID == id {
			return p, true
		}
	}
	return domain.LaunchPad{}, false
}

func (c *Catalog) GetOrbitWindow(id domain.DestinationID) (domain.OrbitWindow, bool) {
	w, ok := c.orbits[id]
	return w, ok
}

func (c *Catalog) GetCabinClass(id domain.DestinationID, tier domain.CabinTier) (domain.CabinClass, bool) {
	cabin, ok := c.cabins[cabinKey{destination: id, tier: tier}]
	if !ok {
		return domain.CabinClass{}, false
	}
	cabin.Features = slices.Clone(cabin.Features)
	return cabin, true
}

// CabinClasses returns the three tiers of a destination in economy, luxury, vip order.
func (c *Catalog) CabinClasses(id domain.DestinationID) []domain.CabinClass {
	var out []domain.CabinClass
	for _, tier := range domain.CabinTiers {
		if cabin, ok := c.GetCabinClass(id, tier); ok {
			out = append(out, cabin)
		}
	}
	return out
}

func (c *Catalog) TripRule(id domain.DestinationID) (domain.TripRule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

func (c *Catalog) Tips() []string {
	return slices.Clone(c.tips)
}

func cloneDestination(d domain.Destination) domain.Destination {
	d.Features = slices.Clone(d.Features)
	return d
}
