// Package i18n holds the message catalog for condition labels and the phrases shown by
// the API and terminal views.
package i18n

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Condition label keys. Keys are the English text.
const (
	Clear        = "Clear"
	Drizzle      = "Drizzle"
	Thunderstorm = "Thunderstorm"
	Snow         = "Snow"
	Mist         = "Mist"
	Smoke        = "Smoke"
	Haze         = "Haze"
	Dust         = "Dust"
	Fog          = "Fog"
	Sand         = "Sand"
	Ash          = "Ash"
	Squall       = "Squall"
	Tornado      = "Tornado"

	LightClouds  = "Light clouds"
	PartlyCloudy = "Partly cloudy"
	Overcast     = "Overcast"

	LightRain    = "Light rain"
	ModerateRain = "Moderate rain"
	HeavyRain    = "Heavy rain"
	StormRain    = "Storm-level rain"
)

// Phrase keys.
const (
	DayLengthFormat = "%d hours %d minutes"
	AheadFormat     = "%[1]s is %[2]s hours ahead of %[3]s"
	BehindFormat    = "%[1]s is %[2]s hours behind %[3]s"
	SameFormat      = "%[1]s and %[2]s share the same time"

	// weekday, month name, day, year, month number
	LongDateFormat = "%[1]s, %[2]s %[3]s, %[4]s"

	HeaderCity        = "City"
	HeaderTime        = "Time"
	HeaderDate        = "Date"
	HeaderOffset      = "Offset"
	HeaderSunrise     = "Sunrise"
	HeaderSunset      = "Sunset"
	HeaderDayLength   = "Day length"
	HeaderTemperature = "Temp"
	HeaderCondition   = "Condition"
	HeaderHumidity    = "Humidity"
	HeaderWind        = "Wind"
	HeaderPressure    = "Pressure"
	HeaderForecast    = "5-day forecast"
	WeatherMissing    = "weather unavailable: missing credentials"
)

var zh = map[string]string{
	Clear:        "晴朗",
	Drizzle:      "毛毛雨",
	Thunderstorm: "雷雨",
	Snow:         "雪",
	Mist:         "薄雾",
	Smoke:        "烟雾",
	Haze:         "霾",
	Dust:         "尘土",
	Fog:          "雾",
	Sand:         "沙尘",
	Ash:          "火山灰",
	Squall:       "狂风",
	Tornado:      "龙卷风",

	LightClouds:  "少云",
	PartlyCloudy: "多云",
	Overcast:     "阴天",

	LightRain:    "小雨",
	ModerateRain: "中雨",
	HeavyRain:    "大雨",
	StormRain:    "暴雨",

	DayLengthFormat: "%d小时%d分钟",
	AheadFormat:     "%[1]s比%[3]s快%[2]s小时",
	BehindFormat:    "%[1]s比%[3]s慢%[2]s小时",
	SameFormat:      "%[1]s与%[2]s时间相同",
	LongDateFormat:  "%[4]s年%[5]s月%[3]s日%[1]s",

	time.Sunday.String():    "星期日",
	time.Monday.String():    "星期一",
	time.Tuesday.String():   "星期二",
	time.Wednesday.String(): "星期三",
	time.Thursday.String():  "星期四",
	time.Friday.String():    "星期五",
	time.Saturday.String():  "星期六",

	HeaderCity:        "城市",
	HeaderTime:        "时间",
	HeaderDate:        "日期",
	HeaderOffset:      "时差",
	HeaderSunrise:     "日出",
	HeaderSunset:      "日落",
	HeaderDayLength:   "白昼时长",
	HeaderTemperature: "温度",
	HeaderCondition:   "天气",
	HeaderHumidity:    "湿度",
	HeaderWind:        "风速",
	HeaderPressure:    "气压",
	HeaderForecast:    "未来5天预报",
	WeatherMissing:    "天气不可用：缺少凭据",
}

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
	cat       = buildCatalog()
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range zh {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
		if err := b.SetString(language.Chinese, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
	return b
}

// Printer formats catalog messages for one locale.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for the closest supported locale. Unknown or empty locales
// fall back to English.
func New(locale string) *Printer {
	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Locale returns the BCP 47 tag the printer resolved to.
func (p *Printer) Locale() string {
	return p.tag.String()
}

// Label translates a catalog key. Keys outside the catalog are returned unchanged.
func (p *Printer) Label(key string) string {
	if _, ok := zh[key]; !ok {
		return key
	}
	return p.p.Sprintf(key)
}

// Sprintf formats a catalog key with arguments.
func (p *Printer) Sprintf(key string, args ...interface{}) string {
	return p.p.Sprintf(key, args...)
}

// DayLength renders a duration as whole hours and minutes.
func (p *Printer) DayLength(d time.Duration) string {
	total := int(d / time.Minute)
	return p.p.Sprintf(DayLengthFormat, total/60, total%60)
}

// LongDate renders t as "Monday, January 2, 2006" or its localized form.
func (p *Printer) LongDate(t time.Time) string {
	return p.p.Sprintf(LongDateFormat,
		p.Label(t.Weekday().String()),
		t.Month().String(),
		strconv.Itoa(t.Day()),
		strconv.Itoa(t.Year()),
		strconv.Itoa(int(t.Month())),
	)
}
