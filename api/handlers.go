package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"world-dashboard/delta"
)

const codeNoData = "no_data"

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(c *gin.Context) {
	cycle, at := s.store.LastCycle()
	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"weather": gin.H{
			"lastCycle": cycle,
			"updatedAt": at,
		},
	}
	if err := s.store.WeatherUnavailable(); err != nil {
		body["weather"] = gin.H{"error": err.Error()}
	}
	if s.sunCache != nil {
		hits, misses := s.sunCache.CacheStats()
		body["sunCache"] = gin.H{
			"hits":   hits,
			"misses": misses,
			"size":   s.sunCache.Size(),
		}
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleCities(c *gin.Context) {
	list := s.dir.All()
	c.JSON(http.StatusOK, gin.H{
		"cities": list,
		"count":  len(list),
	})
}

func (s *Server) handleClocks(c *gin.Context) {
	clocks := s.store.Clocks()
	c.JSON(http.StatusOK, gin.H{
		"clocks": clocks,
		"count":  len(clocks),
	})
}

func (s *Server) handleClock(c *gin.Context) {
	city, err := s.dir.Lookup(c.Param("city"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	st, ok := s.store.Clock(city.Name)
	if !ok {
		writeError(c, http.StatusNotFound, codeNoData, "no clock data yet for "+city.Name)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleSun(c *gin.Context) {
	city, err := s.dir.Lookup(c.Param("city"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	w, ok := s.store.Sun(city.Name)
	if !ok && s.sun != nil {
		// not refreshed yet; ask the (cached) sun source directly
		w, err = s.sun.FetchCity(c.Request.Context(), city)
		if err != nil {
			writeAppError(c, err)
			return
		}
		s.store.UpdateSun(w)
		ok = true
	}
	if !ok {
		writeError(c, http.StatusNotFound, codeNoData, "no sun data yet for "+city.Name)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) handleAllWeather(c *gin.Context) {
	if err := s.store.WeatherUnavailable(); err != nil {
		writeAppError(c, err)
		return
	}
	all := s.store.AllWeather()
	cycle, at := s.store.LastCycle()
	c.JSON(http.StatusOK, gin.H{
		"weather":   all,
		"count":     len(all),
		"cycleId":   cycle,
		"updatedAt": at,
	})
}

func (s *Server) handleWeather(c *gin.Context) {
	city, err := s.dir.Lookup(c.Param("city"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	if err := s.store.WeatherUnavailable(); err != nil {
		writeAppError(c, err)
		return
	}
	cw, ok := s.store.Weather(city.Name)
	if !ok {
		writeError(c, http.StatusNotFound, codeNoData, "no weather data yet for "+city.Name)
		return
	}
	c.JSON(http.StatusOK, cw)
}

func (s *Server) handleDelta(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "invalid_request", "both from and to are required")
		return
	}

	d, err := s.delta.Between(from, to)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":        d.From.Name,
		"to":          d.To.Name,
		"hours":       d.Hours,
		"direction":   d.Direction,
		"description": delta.Describe(s.printer, d),
	})
}
