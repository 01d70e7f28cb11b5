// Package display handles terminal rendering of the dashboard with live updates.
package display

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"world-dashboard/delta"
	"world-dashboard/i18n"
	"world-dashboard/models"
	"world-dashboard/store"
)

const (
	clearScreen = "\033[2J"
	cursorHome  = "\033[H"
)

var (
	titleColor  = color.New(color.Bold, color.FgCyan)
	cityColor   = color.New(color.FgYellow)
	dimColor    = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgRed)
	aheadColor  = color.New(color.FgGreen)
	behindColor = color.New(color.FgBlue)
)

// Render writes the clock, sun and weather tables for the store's current state.
func Render(w io.Writer, st *store.DashboardStore, p *i18n.Printer, now time.Time) {
	fmt.Fprintf(w, "%s %s\n\n", titleColor.Sprint("World Dashboard"), dimColor.Sprint(now.UTC().Format("(UTC 2006-01-02 15:04:05)")))

	renderClocks(w, st, p)
	fmt.Fprintln(w)
	renderWeather(w, st, p)
}

func renderClocks(w io.Writer, st *store.DashboardStore, p *i18n.Printer) {
	table := newTable(w, []string{
		p.Label(i18n.HeaderCity),
		p.Label(i18n.HeaderTime),
		p.Label(i18n.HeaderDate),
		p.Label(i18n.HeaderOffset),
		p.Label(i18n.HeaderSunrise),
		p.Label(i18n.HeaderSunset),
		p.Label(i18n.HeaderDayLength),
	})

	for _, c := range st.Clocks() {
		row := []string{cityColor.Sprint(c.City), c.Time, c.Date, c.Offset + " " + c.Abbrev, "-", "-", "-"}
		if sw, ok := st.Sun(c.City); ok {
			row[4], row[5], row[6] = sw.Sunrise, sw.Sunset, sw.DayLength
		}
		table.Append(row)
	}
	table.Render()
}

func renderWeather(w io.Writer, st *store.DashboardStore, p *i18n.Printer) {
	if err := st.WeatherUnavailable(); err != nil {
		fmt.Fprintln(w, warnColor.Sprint(p.Label(i18n.WeatherMissing)))
		return
	}

	table := newTable(w, []string{
		p.Label(i18n.HeaderCity),
		p.Label(i18n.HeaderTemperature),
		p.Label(i18n.HeaderCondition),
		p.Label(i18n.HeaderHumidity),
		p.Label(i18n.HeaderWind),
		p.Label(i18n.HeaderPressure),
		p.Label(i18n.HeaderForecast),
	})

	for _, cw := range st.AllWeather() {
		cur := cw.Current
		table.Append([]string{
			cityColor.Sprint(cw.City),
			fmt.Sprintf("%d°C", cur.TemperatureC),
			cur.Condition,
			fmt.Sprintf("%d%%", cur.HumidityPct),
			fmt.Sprintf("%.1f m/s", cur.WindSpeedMps),
			fmt.Sprintf("%d hPa", cur.PressureHpa),
			formatForecast(cw.Forecast),
		})
	}
	table.Render()
}

func formatForecast(days []models.ForecastDay) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, fmt.Sprintf("%s %d°C %s", d.Date, d.TemperatureC, d.Condition))
	}
	return strings.Join(parts, " | ")
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// RenderDelta writes a one-line description of a time delta.
func RenderDelta(w io.Writer, p *i18n.Printer, d models.TimeDelta) {
	line := delta.Describe(p, d)
	switch d.Direction {
	case models.Ahead:
		line = aheadColor.Sprint(line)
	case models.Behind:
		line = behindColor.Sprint(line)
	}
	fmt.Fprintln(w, line)
}

// RenderCities lists the configured cities with their zones and coordinates.
func RenderCities(w io.Writer, list []models.City) {
	table := newTable(w, []string{"City", "Time zone", "Latitude", "Longitude"})
	for _, c := range list {
		table.Append([]string{
			c.Name,
			c.TimeZone,
			fmt.Sprintf("%.4f", c.Latitude),
			fmt.Sprintf("%.4f", c.Longitude),
		})
	}
	table.Render()
}

// Run redraws the dashboard every interval until the context is cancelled.
func Run(ctx context.Context, w io.Writer, st *store.DashboardStore, p *i18n.Printer, interval time.Duration) {
	draw := func(now time.Time) {
		fmt.Fprint(w, clearScreen+cursorHome)
		Render(w, st, p, now)
		fmt.Fprintln(w, dimColor.Sprint("Press Ctrl+C to exit"))
	}

	draw(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(w, clearScreen+cursorHome)
			fmt.Fprintln(w, "Goodbye!")
			return
		case t := <-ticker.C:
			draw(t)
		}
	}
}
