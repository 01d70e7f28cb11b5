package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"world-dashboard/apperrors"
	"world-dashboard/cache"
	"world-dashboard/cities"
	"world-dashboard/clock"
	"world-dashboard/config"
	"world-dashboard/delta"
	"world-dashboard/i18n"
	"world-dashboard/logger"
	"world-dashboard/models"
	"world-dashboard/store"
	"world-dashboard/sun"
)

func newServerUnderTest(t *testing.T) (*Server, *store.DashboardStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir, err := cities.NewDirectory(cities.DefaultCities())
	require.NoError(t, err)
	st := store.NewDashboardStore()
	srv := NewServer(config.HTTPConfig{Address: ":0"}, st, dir, delta.NewCalculator(dir, clock.NewEngine()), i18n.New("en"), logger.Discard())
	return srv, st
}

type stubSunTimes struct {
	calls int
	err   error
}

func (s *stubSunTimes) Name() string { return "stub-sun" }

func (s *stubSunTimes) FetchSunTimes(ctx context.Context, city models.City) (models.SunTimes, error) {
	s.calls++
	if s.err != nil {
		return models.SunTimes{}, s.err
	}
	return models.SunTimes{
		Sunrise: time.Date(2026, 6, 20, 19, 25, 0, 0, time.UTC),
		Sunset:  time.Date(2026, 6, 21, 10, 0, 0, 0, time.UTC),
	}, nil
}

func withCachedSun(srv *Server, src *stubSunTimes) *cache.CachedSunSource {
	cached := cache.NewCachedSunSource(src, time.Hour, logger.Discard())
	srv.WithSun(sun.NewFetcher(cached, i18n.New("en"), logger.Discard()), cached)
	return cached
}

func performRequest(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	rec := performRequest(srv.Handler(), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestCities(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	rec := performRequest(srv.Handler(), "/api/cities")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Cities []models.City `json:"cities"`
		Count  int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 6, body.Count)
	require.Equal(t, "Beijing", body.Cities[0].Name)
}

func TestClockLookupIsCaseInsensitive(t *testing.T) {
	srv, st := newServerUnderTest(t)
	st.SetClocks([]models.ClockState{{City: "New York", Time: "07:00:00", Offset: "UTC-05:00"}})

	rec := performRequest(srv.Handler(), "/api/clocks/new%20york")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ClockState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "07:00:00", got.Time)

	rec = performRequest(srv.Handler(), "/api/clocks")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"count":1`)
}

func TestUnknownCityIs404(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	for _, path := range []string{"/api/clocks/Atlantis", "/api/sun/Atlantis", "/api/weather/Atlantis"} {
		rec := performRequest(srv.Handler(), path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.Equal(t, apperrors.CodeCityNotFound, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	}
}

func TestMissingDataIs404(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	rec := performRequest(srv.Handler(), "/api/sun/Tokyo")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, codeNoData, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestSunFetchedOnStoreMiss(t *testing.T) {
	src := &stubSunTimes{}
	srv, st := newServerUnderTest(t)
	cached := withCachedSun(srv, src)

	rec := performRequest(srv.Handler(), "/api/sun/tokyo")
	require.Equal(t, http.StatusOK, rec.Code)
	var w models.SunWindow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &w))
	require.Equal(t, "04:25", w.Sunrise)
	require.Equal(t, "19:00", w.Sunset)
	require.Equal(t, "14 hours 35 minutes", w.DayLength)

	stored, ok := st.Sun("Tokyo")
	require.True(t, ok)
	require.Equal(t, "04:25", stored.Sunrise)

	// a second server with an empty store is answered by the shared cache
	other, _ := newServerUnderTest(t)
	other.WithSun(sun.NewFetcher(cached, i18n.New("en"), logger.Discard()), cached)
	rec = performRequest(other.Handler(), "/api/sun/Tokyo")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, src.calls)

	rec = performRequest(other.Handler(), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		SunCache struct {
			Hits   int64 `json:"hits"`
			Misses int64 `json:"misses"`
		} `json:"sunCache"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.SunCache.Hits)
	require.Equal(t, int64(1), body.SunCache.Misses)
}

func TestSunUpstreamFailureIs502(t *testing.T) {
	src := &stubSunTimes{err: apperrors.Wrap(apperrors.CodeTransport, "sun service unreachable", nil)}
	srv, st := newServerUnderTest(t)
	withCachedSun(srv, src)

	rec := performRequest(srv.Handler(), "/api/sun/Tokyo")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, apperrors.CodeTransport, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	_, ok := st.Sun("Tokyo")
	require.False(t, ok)
}

func TestSunAndWeather(t *testing.T) {
	srv, st := newServerUnderTest(t)
	st.UpdateSun(models.SunWindow{City: "Tokyo", Sunrise: "04:25", Sunset: "19:00", DayLength: "14 hours 35 minutes"})
	st.PublishWeather("c1", map[string]models.CityWeather{
		"Tokyo": {City: "Tokyo", CycleID: "c1", Current: models.WeatherSnapshot{TemperatureC: 22}},
	}, time.Now())

	rec := performRequest(srv.Handler(), "/api/sun/tokyo")
	require.Equal(t, http.StatusOK, rec.Code)
	var w models.SunWindow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &w))
	require.Equal(t, "04:25", w.Sunrise)

	rec = performRequest(srv.Handler(), "/api/weather/Tokyo")
	require.Equal(t, http.StatusOK, rec.Code)
	var cw models.CityWeather
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cw))
	require.Equal(t, 22, cw.Current.TemperatureC)

	rec = performRequest(srv.Handler(), "/api/weather")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"cycleId":"c1"`)
}

func TestWeatherMissingCredentials(t *testing.T) {
	srv, st := newServerUnderTest(t)
	st.SetWeatherUnavailable(config.Default().CheckWeatherCredentials())

	for _, path := range []string{"/api/weather", "/api/weather/Tokyo"} {
		rec := performRequest(srv.Handler(), path)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		errBody := decodeErrorBody(t, rec.Body.Bytes())
		require.Equal(t, apperrors.CodeMissingCredentials, errBody["error"]["code"])
		require.Equal(t, "weather unavailable: missing credentials", errBody["error"]["message"])
	}
}

func TestDelta(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	rec := performRequest(srv.Handler(), "/api/delta?from=london&to=tokyo")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		From        string  `json:"from"`
		To          string  `json:"to"`
		Hours       float64 `json:"hours"`
		Direction   string  `json:"direction"`
		Description string  `json:"description"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "London", body.From)
	require.Equal(t, "Tokyo", body.To)
	require.Contains(t, []float64{8, 9}, body.Hours)
	require.Equal(t, "ahead", body.Direction)
	require.Contains(t, body.Description, "ahead of London")

	rec = performRequest(srv.Handler(), "/api/delta?from=Beijing&to=Shanghai")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"direction":"same"`)
}

func TestDeltaErrors(t *testing.T) {
	srv, _ := newServerUnderTest(t)

	rec := performRequest(srv.Handler(), "/api/delta?from=London")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(srv.Handler(), "/api/delta?from=London&to=Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apperrors.CodeCityNotFound, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}
