package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"world-dashboard/models"
)

type countingProvider struct {
	current, forecast int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) GetWeather(ctx context.Context, city models.City) (models.CurrentConditions, error) {
	p.current++
	return models.CurrentConditions{Temperature: 20}, nil
}

func (p *countingProvider) FetchForecast(ctx context.Context, city models.City) ([]models.ForecastEntry, error) {
	p.forecast++
	return []models.ForecastEntry{{Temperature: 18}}, nil
}

func TestRateLimitedProviderForwards(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 100, 2)

	cur, err := p.GetWeather(context.Background(), models.City{Name: "Tokyo"})
	require.NoError(t, err)
	require.Equal(t, 20.0, cur.Temperature)

	fc, err := p.FetchForecast(context.Background(), models.City{Name: "Tokyo"})
	require.NoError(t, err)
	require.Len(t, fc, 1)

	require.Equal(t, 1, inner.current)
	require.Equal(t, 1, inner.forecast)
	require.Equal(t, "counting [Rate Limited]", p.Name())
}

func TestRateLimitedProviderSharesLimiter(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 0.001, 1)

	_, err := p.GetWeather(context.Background(), models.City{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.FetchForecast(ctx, models.City{})
	require.Error(t, err)
	require.Zero(t, inner.forecast)
}
