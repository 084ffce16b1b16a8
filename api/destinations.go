package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/Domenick1991/spacetravel/internal/service/fare"
	"github.com/Domenick1991/spacetravel/internal/service/tripwindow"
	"github.com/gin-gonic/gin"
)

type CatalogReader interface {
	ListDestinations() []domain.Destination
	FindDestination(id domain.DestinationID) (domain.Destination, bool)
	GetOrbitWindow(id domain.DestinationID) (domain.OrbitWindow, bool)
	CabinClasses(id domain.DestinationID) []domain.CabinClass
	ListLaunchPads() []domain.LaunchPad
}

type WindowCalculator interface {
	Windows(id domain.DestinationID, today, departure time.Time) tripwindow.Windows
}

type FareResolver interface {
	Resolve(id domain.DestinationID, tier domain.CabinTier) (fare.Fare, error)
}

type DestinationHandler struct {
	catalog CatalogReader
	windows WindowCalculator
	fares   FareResolver
	now     func() time.Time
}

type destinationDetails struct {
	Destination domain.Destination  `json:"destination"`
	OrbitWindow *domain.OrbitWindow `json:"orbitWindow"`
	Cabins      []domain.CabinClass `json:"cabins"`
}

type bookingFormResponse struct {
	Destination *domain.Destination `json:"destination"`
	Cabins      []domain.CabinClass `json:"cabins"`
	LaunchPads  []domain.LaunchPad  `json:"launchPads"`
	Windows     tripwindow.Windows  `json:"windows"`
}

func NewDestinationHandler(catalog CatalogReader, windows WindowCalculator, fares FareResolver) *DestinationHandler {
	return &DestinationHandler{catalog: catalog, windows: windows, fares: fares, now: time.Now}
}

func (h *DestinationHandler) Register(router *gin.RouterGroup) {
	router.GET("/destinations", h.list)
	router.GET("/destinations/:id", h.get)
	router.GET("/destinations/:id/windows", h.tripWindows)
	router.GET("/destinations/:id/fares/:tier", h.fare)
	router.GET("/launch-pads", h.launchPads)
	router.GET("/booking-form", h.bookingForm)
}

func (h *DestinationHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListDestinations())
}

func (h *DestinationHandler) get(c *gin.Context) {
	id, ok := domain.ParseDestinationID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "destination not found"})
		return
	}
	destination, ok := h.catalog.FindDestination(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "destination not found"})
		return
	}

	details := destinationDetails{Destination: destination, Cabins: h.catalog.CabinClasses(id)}
	if orbit, ok := h.catalog.GetOrbitWindow(id); ok {
		details.OrbitWindow = &orbit
	}
	c.JSON(http.StatusOK, details)
}

// tripWindows answers for any id; unknown destinations get permissive bounds.
func (h *DestinationHandler) tripWindows(c *gin.Context) {
	today, departure, ok := h.dates(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.windows.Windows(domain.DestinationID(c.Param("id")), today, departure))
}

func (h *DestinationHandler) fare(c *gin.Context) {
	id, idOK := domain.ParseDestinationID(c.Param("id"))
	tier, tierOK := domain.ParseCabinTier(c.Param("tier"))
	if !idOK || !tierOK {
		c.JSON(http.StatusNotFound, gin.H{"error": fare.ErrFareUnresolved.Error()})
		return
	}

	resolved, err := h.fares.Resolve(id, tier)
	if errors.Is(err, fare.ErrFareUnresolved) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resolved)
}

func (h *DestinationHandler) launchPads(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ListLaunchPads())
}

func (h *DestinationHandler) bookingForm(c *gin.Context) {
	today, departure, ok := h.dates(c)
	if !ok {
		return
	}

	raw := c.Query("destination")
	resp := bookingFormResponse{
		Cabins:     []domain.CabinClass{},
		LaunchPads: h.catalog.ListLaunchPads(),
		Windows:    h.windows.Windows(domain.DestinationID(raw), today, departure),
	}
	if id, ok := domain.ParseDestinationID(raw); ok {
		if destination, found := h.catalog.FindDestination(id); found {
			resp.Destination = &destination
			resp.Cabins = h.catalog.CabinClasses(id)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// dates reads the optional today and departure query values. It writes a 400
// and reports false when either is malformed.
func (h *DestinationHandler) dates(c *gin.Context) (time.Time, time.Time, bool) {
	today := domain.DateOf(h.now())
	if raw := c.Query("today"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today date"})
			return time.Time{}, time.Time{}, false
		}
		today = parsed
	}

	var departure time.Time
	if raw := c.Query("departure"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure date"})
			return time.Time{}, time.Time{}, false
		}
		departure = parsed
	}
	return today, departure, true
}
