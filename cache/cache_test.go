package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"world-dashboard/logger"
	"world-dashboard/models"
)

type stubSun struct {
	calls int32
	err   error
}

func (s *stubSun) Name() string { return "stub" }

func (s *stubSun) FetchSunTimes(ctx context.Context, city models.City) (models.SunTimes, error) {
	n := atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return models.SunTimes{}, s.err
	}
	base := time.Date(2026, 6, 21, 4, 0, 0, 0, time.UTC)
	return models.SunTimes{Sunrise: base.Add(time.Duration(n) * time.Minute), Sunset: base.Add(16 * time.Hour)}, nil
}

var (
	london = models.City{Name: "London", TimeZone: "Europe/London", Latitude: 51.5, Longitude: -0.1}
	tokyo  = models.City{Name: "Tokyo", TimeZone: "Asia/Tokyo", Latitude: 35.7, Longitude: 139.7}
)

func TestCachedSunSourceHitsAndMisses(t *testing.T) {
	src := &stubSun{}
	c := NewCachedSunSource(src, time.Hour, logger.Discard())

	first, err := c.FetchSunTimes(context.Background(), london)
	require.NoError(t, err)
	second, err := c.FetchSunTimes(context.Background(), london)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = c.FetchSunTimes(context.Background(), tokyo)
	require.NoError(t, err)

	hits, misses := c.CacheStats()
	require.Equal(t, int64(1), hits)
	require.Equal(t, int64(2), misses)
	require.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
	require.Equal(t, "stub [Cached]", c.Name())
}

func TestCachedSunSourceKeyedByDate(t *testing.T) {
	src := &stubSun{}
	c := NewCachedSunSource(src, 48*time.Hour, logger.Discard())
	day := time.Date(2026, 6, 21, 23, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return day }

	_, err := c.FetchSunTimes(context.Background(), london)
	require.NoError(t, err)

	day = day.Add(2 * time.Hour)
	_, err = c.FetchSunTimes(context.Background(), london)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestCachedSunSourceDoesNotCacheErrors(t *testing.T) {
	src := &stubSun{err: errors.New("boom")}
	c := NewCachedSunSource(src, time.Hour, logger.Discard())

	_, err := c.FetchSunTimes(context.Background(), london)
	require.Error(t, err)
	_, err = c.FetchSunTimes(context.Background(), london)
	require.Error(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestCachedSunSourceDisabled(t *testing.T) {
	src := &stubSun{}
	c := NewCachedSunSource(src, 0, logger.Discard())

	for i := 0; i < 3; i++ {
		_, err := c.FetchSunTimes(context.Background(), london)
		require.NoError(t, err)
	}
	require.Equal(t, int32(3), atomic.LoadInt32(&src.calls))
	require.Zero(t, c.Size())
}
