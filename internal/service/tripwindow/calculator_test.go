package tripwindow

import (
	"testing"
	"time"

	"github.com/Domenick1991/spacetravel/internal/catalog"
	"github.com/Domenick1991/spacetravel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewCalculator(c)
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestContinuousDestinations_DepartFromToday(t *testing.T) {
	calc := newCalculator(t)
	today := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	for _, id := range []domain.DestinationID{domain.DestinationLunarGateway, domain.DestinationSpaceHotel} {
		assert.Equal(t, date(t, "2025-03-10"), calc.MinDepartureDate(id, today), id)
		assert.True(t, calc.MaxDepartureDate(id).IsUnbounded(), id)
	}
}

func TestWindowedDestinations_IgnoreToday(t *testing.T) {
	calc := newCalculator(t)

	testCases := []struct {
		id          domain.DestinationID
		open, close string
	}{
		{domain.DestinationMarsColony, "2027-01-01", "2027-12-31"},
		{domain.DestinationVenusCloud, "2026-01-01", "2026-12-31"},
		{domain.DestinationJupiterMoon, "2026-01-01", "2026-12-31"},
		{domain.DestinationSaturnRing, "2027-01-01", "2027-12-31"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.id), func(t *testing.T) {
			for _, today := range []string{"2024-01-15", "2026-06-01", "2030-01-01"} {
				assert.Equal(t, date(t, tc.open), calc.MinDepartureDate(tc.id, date(t, today)))
				maxDep, ok := calc.MaxDepartureDate(tc.id).Date()
				require.True(t, ok)
				assert.Equal(t, date(t, tc.close), maxDep)
			}
		})
	}
}

func TestMinReturnNeverAfterMaxReturn(t *testing.T) {
	calc := newCalculator(t)
	today := date(t, "2025-01-01")

	departures := []string{"2025-01-31", "2025-02-28", "2026-08-31", "2027-12-31", "2028-02-29"}
	for _, id := range domain.DestinationIDs {
		for _, dep := range departures {
			departure := date(t, dep)
			minRet := calc.MinReturnDate(id, departure, today)
			maxRet, ok := calc.MaxReturnDate(id, departure).Date()
			require.True(t, ok)
			assert.False(t, maxRet.Before(minRet), "%s departing %s", id, dep)
			assert.False(t, minRet.Before(departure), "%s departing %s", id, dep)
		}
	}
}

func TestLunarGatewayReturnWindow(t *testing.T) {
	calc := newCalculator(t)
	departure := date(t, "2025-06-01")

	assert.Equal(t, "2025-06-04", domain.FormatDate(calc.MinReturnDate(domain.DestinationLunarGateway, departure, time.Now())))
	assert.Equal(t, "2025-06-06", calc.MaxReturnDate(domain.DestinationLunarGateway, departure).String())
}

func TestReturnWindowUnits(t *testing.T) {
	calc := newCalculator(t)
	departure := date(t, "2026-03-15")

	testCases := []struct {
		id       domain.DestinationID
		min, max string
	}{
		{domain.DestinationSpaceHotel, "2026-03-15", "2026-03-15"},
		{domain.DestinationMarsColony, "2026-09-15", "2026-12-15"},
		{domain.DestinationVenusCloud, "2026-06-15", "2026-08-15"},
		{domain.DestinationJupiterMoon, "2027-03-15", "2028-03-15"},
		{domain.DestinationSaturnRing, "2028-03-15", "2029-03-15"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.id), func(t *testing.T) {
			assert.Equal(t, tc.min, domain.FormatDate(calc.MinReturnDate(tc.id, departure, departure)))
			assert.Equal(t, tc.max, calc.MaxReturnDate(tc.id, departure).String())
		})
	}
}

func TestNoDepartureChosen(t *testing.T) {
	calc := newCalculator(t)
	today := date(t, "2025-05-05")

	assert.Equal(t, today, calc.MinReturnDate(domain.DestinationMarsColony, time.Time{}, today))
	assert.True(t, calc.MaxReturnDate(domain.DestinationMarsColony, time.Time{}).IsUnbounded())
}

func TestUnknownDestination_IsUnconstrained(t *testing.T) {
	calc := newCalculator(t)
	today := date(t, "2025-05-05")
	departure := date(t, "2025-07-01")
	unknown := domain.DestinationID("pluto-outpost")

	assert.Equal(t, today, calc.MinDepartureDate(unknown, today))
	assert.True(t, calc.MaxDepartureDate(unknown).IsUnbounded())
	assert.Equal(t, today, calc.MinReturnDate(unknown, departure, today))
	assert.True(t, calc.MaxReturnDate(unknown, departure).IsUnbounded())
}

func TestWindows(t *testing.T) {
	calc := newCalculator(t)

	w := calc.Windows(domain.DestinationVenusCloud, date(t, "2027-02-01"), date(t, "2026-05-01"))
	assert.Equal(t, "2026-01-01", w.MinDeparture)
	assert.Equal(t, "2026-12-31", w.MaxDeparture.String())
	assert.Equal(t, "2026-08-01", w.MinReturn)
	assert.Equal(t, "2026-10-01", w.MaxReturn.String())
	assert.False(t, w.Continuous)
	assert.True(t, w.WindowClosed)

	w = calc.Windows(domain.DestinationLunarGateway, date(t, "2027-02-01"), time.Time{})
	assert.True(t, w.Continuous)
	assert.False(t, w.WindowClosed)
	assert.True(t, w.MaxDeparture.IsUnbounded())
	assert.True(t, w.MaxReturn.IsUnbounded())
}
