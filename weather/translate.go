package weather

import (
	"strings"

	"world-dashboard/i18n"
)

var conditionKeys = map[string]string{
	"Clear":        i18n.Clear,
	"Drizzle":      i18n.Drizzle,
	"Thunderstorm": i18n.Thunderstorm,
	"Snow":         i18n.Snow,
	"Mist":         i18n.Mist,
	"Smoke":        i18n.Smoke,
	"Haze":         i18n.Haze,
	"Dust":         i18n.Dust,
	"Fog":          i18n.Fog,
	"Sand":         i18n.Sand,
	"Ash":          i18n.Ash,
	"Squall":       i18n.Squall,
	"Tornado":      i18n.Tornado,
}

// ConditionKey maps a provider condition code to a catalog key. Clouds are graded by
// cloudiness percentage and rain by mm/h; unknown codes are returned unchanged.
func ConditionKey(condition string, cloudiness int, rainMmPerHour float64) string {
	switch condition {
	case "Clouds":
		switch {
		case cloudiness < 30:
			return i18n.LightClouds
		case cloudiness < 70:
			return i18n.PartlyCloudy
		default:
			return i18n.Overcast
		}
	case "Rain":
		switch {
		case rainMmPerHour < 0.5:
			return i18n.LightRain
		case rainMmPerHour < 4:
			return i18n.ModerateRain
		case rainMmPerHour < 8:
			return i18n.HeavyRain
		default:
			return i18n.StormRain
		}
	}
	if key, ok := conditionKeys[condition]; ok {
		return key
	}
	return condition
}

// Translate returns the localized label for a condition.
func Translate(p *i18n.Printer, condition string, cloudiness int, rainMmPerHour float64) string {
	return p.Label(ConditionKey(condition, cloudiness, rainMmPerHour))
}

// DayIcon rewrites a night icon code ("04n") to its day variant ("04d").
func DayIcon(code string) string {
	if strings.HasSuffix(code, "n") {
		return strings.TrimSuffix(code, "n") + "d"
	}
	return code
}

// IconURL builds the image URL for an icon code, always using the day variant.
func IconURL(base, code string) string {
	if code == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + DayIcon(code) + "@2x.png"
}
