// Package scheduler drives the clock, sun and weather refresh cycles and publishes
// their results into the dashboard store.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"world-dashboard/clock"
	"world-dashboard/models"
	"world-dashboard/store"
	"world-dashboard/sun"
	"world-dashboard/weather"
)

// DefaultCycleTimeout bounds one full weather or sun cycle.
const DefaultCycleTimeout = 30 * time.Second

// Options configures a Scheduler. Weather may be nil, in which case the weather
// cycle is not started.
type Options struct {
	Cities          []models.City
	Engine          *clock.Engine
	Sun             *sun.Fetcher
	Weather         *weather.Fetcher
	Store           *store.DashboardStore
	ClockInterval   time.Duration
	WeatherInterval time.Duration
	SunInterval     time.Duration
	CycleTimeout    time.Duration
	Logger          *slog.Logger
}

// Scheduler manages the three independent refresh cycles
type Scheduler struct {
	engine          *clock.Engine
	sun             *sun.Fetcher
	weather         *weather.Fetcher
	store           *store.DashboardStore
	clockInterval   time.Duration
	weatherInterval time.Duration
	sunInterval     time.Duration
	cycleTimeout    time.Duration
	logger          *slog.Logger
	now             func() time.Time
	newCycleID      func() string

	mu             sync.RWMutex
	cities         []models.City
	sunTrigger     chan struct{}
	weatherTrigger chan struct{}
}

// New creates a scheduler
func New(opts Options) *Scheduler {
	if opts.CycleTimeout <= 0 {
		opts.CycleTimeout = DefaultCycleTimeout
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.WeatherInterval <= 0 {
		opts.WeatherInterval = 10 * time.Minute
	}
	if opts.SunInterval <= 0 {
		opts.SunInterval = time.Hour
	}
	list := make([]models.City, len(opts.Cities))
	copy(list, opts.Cities)

	return &Scheduler{
		engine:          opts.Engine,
		sun:             opts.Sun,
		weather:         opts.Weather,
		store:           opts.Store,
		clockInterval:   opts.ClockInterval,
		weatherInterval: opts.WeatherInterval,
		sunInterval:     opts.SunInterval,
		cycleTimeout:    opts.CycleTimeout,
		logger:          opts.Logger.With("component", "scheduler"),
		now:             time.Now,
		newCycleID:      func() string { return uuid.NewString() },
		cities:          list,
		sunTrigger:      make(chan struct{}, 1),
		weatherTrigger:  make(chan struct{}, 1),
	}
}

// Cities returns a copy of the current city set
func (s *Scheduler) Cities() []models.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.City, len(s.cities))
	copy(out, s.cities)
	return out
}

// SetCities replaces the city set and requests an immediate sun and weather refresh.
func (s *Scheduler) SetCities(list []models.City) {
	s.mu.Lock()
	s.cities = make([]models.City, len(list))
	copy(s.cities, list)
	s.mu.Unlock()

	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	s.store.Retain(names)

	notify(s.sunTrigger)
	notify(s.weatherTrigger)
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
		// a refresh is already pending
	}
}

// Start begins all cycles. The returned function stops them, waits for every
// goroutine to exit and closes the store, so late results are discarded.
func (s *Scheduler) Start(ctx context.Context) func() {
	runCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup

	wg.Add(2)
	go s.runClock(runCtx, &wg)
	go s.runSun(runCtx, &wg)

	if s.weather != nil {
		wg.Add(1)
		go s.runWeather(runCtx, &wg)
	} else {
		s.logger.Warn("weather cycle disabled")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
			s.store.Close()
			s.logger.Info("scheduler stopped")
		})
	}
}

func (s *Scheduler) runClock(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(s.clockInterval)
	defer ticker.Stop()

	s.TickClocks(ctx)
	for {
		select {
		case <-ticker.C:
			s.TickClocks(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// runSun refreshes on start, on city changes and every sunInterval so windows
// follow the date. Repeat lookups within a day are served by the sun cache.
func (s *Scheduler) runSun(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(s.sunInterval)
	defer ticker.Stop()

	s.RefreshSun(ctx)
	for {
		select {
		case <-ticker.C:
			s.RefreshSun(ctx)
		case <-s.sunTrigger:
			s.RefreshSun(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runWeather(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(s.weatherInterval)
	defer ticker.Stop()

	// Update immediately on startup
	s.RefreshWeather(ctx)
	for {
		select {
		case <-ticker.C:
			s.RefreshWeather(ctx)
		case <-s.weatherTrigger:
			s.RefreshWeather(ctx)
			ticker.Reset(s.weatherInterval)
		case <-ctx.Done():
			return
		}
	}
}

// TickClocks recomputes every clock at the current instant
func (s *Scheduler) TickClocks(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	states := s.engine.ComputeAll(s.Cities(), s.now())
	s.store.SetClocks(states)
}

// RefreshSun fetches sun windows for all cities. Failed cities keep their previous window.
func (s *Scheduler) RefreshSun(ctx context.Context) sun.Result {
	cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	res := s.sun.Refresh(cycleCtx, s.Cities())
	if ctx.Err() != nil {
		return res
	}
	for _, w := range res.Windows {
		s.store.UpdateSun(w)
	}
	s.logger.Info("sun refresh complete", "updated", len(res.Windows), "failed", len(res.Failed))
	return res
}

// RefreshWeather runs one weather cycle and publishes the cities that succeeded.
func (s *Scheduler) RefreshWeather(ctx context.Context) weather.CycleResult {
	cycleID := s.newCycleID()
	cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	s.logger.Info("weather cycle started", "cycle", cycleID)
	res := s.weather.RefreshAll(cycleCtx, cycleID, s.Cities())
	if ctx.Err() != nil {
		s.logger.Info("weather cycle discarded", "cycle", cycleID)
		return res
	}
	s.store.PublishWeather(cycleID, res.Updated, s.now())
	return res
}
