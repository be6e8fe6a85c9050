package forecast

import (
	"sort"
	"time"

	"github.com/somersetradio/weather-bulletin/internal/common"
)

// Period represents a named part of the day used when summarizing a forecast.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodOvernight Period = "overnight"
)

// PeriodFor maps a timestamp to its day part. Overnight entries belong to the
// day they fall on, not the day before.
func PeriodFor(t time.Time) Period {
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18:
		return PeriodEvening
	default:
		return PeriodOvernight
	}
}

// Coordinates identifies the point the forecast is requested for.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates are on the globe.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// TimeStep is a single normalized entry from a provider's time series.
// Temperatures are Celsius, wind is mph, ProbOfRain is a percentage.
type TimeStep struct {
	Time         time.Time `json:"time"`
	MaxTemp      float64   `json:"maxTempC"`
	MinTemp      float64   `json:"minTempC"`
	WindSpeedMPH float64   `json:"windSpeedMph"`
	ProbOfRain   float64   `json:"probOfRainPct"`
	UVIndex      int       `json:"uvIndex"`
	WeatherCode  int       `json:"weatherCode"`
}

// Forecast is the normalized time series for one location, ordered by time.
// It is created once by a provider and read-only afterwards.
type Forecast struct {
	LocationName string     `json:"locationName"`
	Issued       time.Time  `json:"issued"`
	Steps        []TimeStep `json:"steps"`
}

// Empty reports whether the forecast carries no usable data.
func (f *Forecast) Empty() bool {
	return f == nil || len(f.Steps) == 0
}

// PartSummary condenses the entries of one day part.
type PartSummary struct {
	MaxTemp      int   `json:"maxTempC"`
	MinTemp      int   `json:"minTempC"`
	WindSpeedMPH int   `json:"windSpeedMph"`
	ProbOfRain   int   `json:"probOfRainPct"`
	UVIndex      int   `json:"uvIndex"`
	WeatherCodes []int `json:"weatherCodes"`
}

// DaySummary holds per-part summaries plus the day's overall high and low.
type DaySummary struct {
	Date  string                  `json:"date"` // YYYY-MM-DD
	High  int                     `json:"highC"`
	Low   int                     `json:"lowC"`
	Parts map[Period]*PartSummary `json:"parts"`
}

// Part returns the summary for a day part, or nil if the forecast had no
// entries for it.
func (d *DaySummary) Part(p Period) *PartSummary {
	if d == nil {
		return nil
	}
	return d.Parts[p]
}

// Summarize buckets the time series by calendar day and day part and condenses
// each bucket. Within a part the temperatures take the extremes, wind, rain
// probability and UV index take the maximum, and the weather codes are the
// sorted distinct codes seen. The result maps dates (YYYY-MM-DD) to summaries.
func (f *Forecast) Summarize() map[string]*DaySummary {
	days := make(map[string]*DaySummary)
	if f.Empty() {
		return days
	}

	for _, step := range f.Steps {
		date := step.Time.Format("2006-01-02")
		day, ok := days[date]
		if !ok {
			day = &DaySummary{
				Date:  date,
				High:  common.RoundC(step.MaxTemp),
				Low:   common.RoundC(step.MinTemp),
				Parts: make(map[Period]*PartSummary),
			}
			days[date] = day
		}

		if hi := common.RoundC(step.MaxTemp); hi > day.High {
			day.High = hi
		}
		if lo := common.RoundC(step.MinTemp); lo < day.Low {
			day.Low = lo
		}

		period := PeriodFor(step.Time)
		part, ok := day.Parts[period]
		if !ok {
			part = &PartSummary{
				MaxTemp: common.RoundC(step.MaxTemp),
				MinTemp: common.RoundC(step.MinTemp),
			}
			day.Parts[period] = part
		}

		if v := common.RoundC(step.MaxTemp); v > part.MaxTemp {
			part.MaxTemp = v
		}
		if v := common.RoundC(step.MinTemp); v < part.MinTemp {
			part.MinTemp = v
		}
		if v := common.RoundC(step.WindSpeedMPH); v > part.WindSpeedMPH {
			part.WindSpeedMPH = v
		}
		if v := common.RoundC(step.ProbOfRain); v > part.ProbOfRain {
			part.ProbOfRain = v
		}
		if step.UVIndex > part.UVIndex {
			part.UVIndex = step.UVIndex
		}
		part.WeatherCodes = appendCode(part.WeatherCodes, step.WeatherCode)
	}

	for _, day := range days {
		for _, part := range day.Parts {
			sort.Ints(part.WeatherCodes)
		}
	}

	return days
}

func appendCode(codes []int, code int) []int {
	for _, c := range codes {
		if c == code {
			return codes
		}
	}
	return append(codes, code)
}
