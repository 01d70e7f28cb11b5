package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"world-dashboard/cities"
	"world-dashboard/i18n"
	"world-dashboard/models"
)

func TestCompute(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	e := NewEngine()

	tests := []struct {
		name     string
		city     models.City
		wantTime string
		offset   string
	}{
		{"Shanghai", models.City{Name: "Shanghai", TimeZone: "Asia/Shanghai"}, "20:00:00", "UTC+08:00"},
		{"New York winter", models.City{Name: "New York", TimeZone: "America/New_York"}, "07:00:00", "UTC-05:00"},
		{"London winter", models.City{Name: "London", TimeZone: "Europe/London"}, "12:00:00", "UTC+00:00"},
		{"Sydney summer", models.City{Name: "Sydney", TimeZone: "Australia/Sydney"}, "23:00:00", "UTC+11:00"},
		{"Kolkata half hour", models.City{Name: "Mumbai", TimeZone: "Asia/Kolkata"}, "17:30:00", "UTC+05:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := e.Compute(tt.city, now)
			require.NoError(t, err)
			require.Equal(t, tt.wantTime, st.Time)
			require.Equal(t, tt.offset, st.Offset)
			require.Equal(t, tt.city.Name, st.City)
		})
	}
}

func TestComputeDateLabel(t *testing.T) {
	now := time.Date(2026, 2, 15, 20, 0, 0, 0, time.UTC)
	tokyo := models.City{Name: "Tokyo", TimeZone: "Asia/Tokyo"}

	st, err := NewEngine().Compute(tokyo, now)
	require.NoError(t, err)
	require.Equal(t, "Monday, February 16, 2026", st.Date)

	st, err = NewEngine(WithPrinter(i18n.New("zh"))).Compute(tokyo, now)
	require.NoError(t, err)
	require.Equal(t, "2026年2月16日星期一", st.Date)
}

func TestComputeInvalidTimezone(t *testing.T) {
	_, err := NewEngine().Compute(models.City{Name: "Nowhere", TimeZone: "Invalid/Zone"}, time.Now())
	require.Error(t, err)
}

func TestAnglesKnownValues(t *testing.T) {
	tests := []struct {
		name                 string
		at                   time.Time
		hour, minute, second float64
	}{
		{"midnight", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0, 0, 0},
		{"three o'clock", time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC), 90, 0, 0},
		{"half past six", time.Date(2026, 1, 1, 6, 30, 0, 0, time.UTC), 195, 180, 0},
		{"seconds advance minute hand", time.Date(2026, 1, 1, 9, 15, 30, 0, time.UTC), 277.5, 93, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, s := Angles(tt.at)
			require.InDelta(t, tt.hour, h, 1e-9)
			require.InDelta(t, tt.minute, m, 1e-9)
			require.InDelta(t, tt.second, s, 1e-9)
		})
	}
}

func TestAnglesInRangeForAllCities(t *testing.T) {
	e := NewEngine()
	start := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC) // London DST switch day
	for _, c := range cities.DefaultCities() {
		for step := 0; step < 48*60; step += 7 {
			now := start.Add(time.Duration(step) * time.Minute).Add(time.Duration(step%60) * time.Second)
			st, err := e.Compute(c, now)
			require.NoError(t, err)
			for _, a := range []float64{st.HourAngle, st.MinuteAngle, st.SecondAngle} {
				require.GreaterOrEqual(t, a, 0.0)
				require.Less(t, a, 360.0)
			}
		}
	}
}

func TestAnglesMonotonicWithinMinute(t *testing.T) {
	e := NewEngine()
	for _, c := range cities.DefaultCities() {
		base := time.Date(2026, 7, 1, 8, 41, 0, 0, time.UTC)
		prev, err := e.Compute(c, base)
		require.NoError(t, err)
		for s := 1; s < 60; s++ {
			cur, err := e.Compute(c, base.Add(time.Duration(s)*time.Second))
			require.NoError(t, err)
			require.Greater(t, cur.SecondAngle, prev.SecondAngle, c.Name)
			require.Greater(t, cur.MinuteAngle, prev.MinuteAngle, c.Name)
			require.GreaterOrEqual(t, cur.HourAngle, prev.HourAngle, c.Name)
			prev = cur
		}
	}
}

func TestAnglesWrapAtHourBoundary(t *testing.T) {
	before := time.Date(2026, 1, 1, 11, 59, 59, 0, time.UTC)
	after := before.Add(time.Second)

	h1, m1, s1 := Angles(before)
	h2, m2, s2 := Angles(after)
	require.Greater(t, h1, 359.0)
	require.Greater(t, m1, 359.0)
	require.Equal(t, 354.0, s1)
	require.Zero(t, h2)
	require.Zero(t, m2)
	require.Zero(t, s2)
}

func TestTokyoRoundTrip(t *testing.T) {
	e := NewEngine()
	utc := time.Date(2026, 6, 21, 18, 45, 12, 0, time.UTC)

	local, err := e.LocalTime("Asia/Tokyo", utc)
	require.NoError(t, err)
	require.Equal(t, 3, local.Hour())
	require.Equal(t, 22, local.Day())

	wall := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
	require.Equal(t, 9*time.Hour, wall.Sub(utc))
	require.True(t, local.Equal(utc))
}

func TestDSTChangesOffset(t *testing.T) {
	e := NewEngine()
	ny := models.City{Name: "New York", TimeZone: "America/New_York"}

	winter, err := e.Compute(ny, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	summer, err := e.Compute(ny, time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, "UTC-05:00", winter.Offset)
	require.Equal(t, "UTC-04:00", summer.Offset)
	require.Equal(t, "EST", winter.Abbrev)
	require.Equal(t, "EDT", summer.Abbrev)
}

func TestComputeAllSkipsBadZones(t *testing.T) {
	list := append(cities.DefaultCities(), models.City{Name: "Bad", TimeZone: "Nope/Nope"})
	states := NewEngine().ComputeAll(list, time.Now())
	require.Len(t, states, 6)
}

func TestLocationCached(t *testing.T) {
	e := NewEngine()
	a, err := e.Location("Europe/London")
	require.NoError(t, err)
	b, err := e.Location("Europe/London")
	require.NoError(t, err)
	require.Same(t, a, b)
}
