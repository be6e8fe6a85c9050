package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(t time.Time, maxTemp, minTemp, wind, rain float64, uv, code int) TimeStep {
	return TimeStep{
		Time:         t,
		MaxTemp:      maxTemp,
		MinTemp:      minTemp,
		WindSpeedMPH: wind,
		ProbOfRain:   rain,
		UVIndex:      uv,
		WeatherCode:  code,
	}
}

func TestPeriodFor(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, PeriodOvernight, PeriodFor(day.Add(2*time.Hour)))
	assert.Equal(t, PeriodMorning, PeriodFor(day.Add(6*time.Hour)))
	assert.Equal(t, PeriodMorning, PeriodFor(day.Add(11*time.Hour)))
	assert.Equal(t, PeriodAfternoon, PeriodFor(day.Add(12*time.Hour)))
	assert.Equal(t, PeriodAfternoon, PeriodFor(day.Add(17*time.Hour)))
	assert.Equal(t, PeriodEvening, PeriodFor(day.Add(18*time.Hour)))
	assert.Equal(t, PeriodEvening, PeriodFor(day.Add(23*time.Hour)))
}

func TestSummarizeBucketsByDayAndPart(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	f := &Forecast{
		LocationName: "Bath",
		Steps: []TimeStep{
			step(day.Add(9*time.Hour), 11.6, 7.2, 12, 10, 2, 1),
			step(day.Add(10*time.Hour), 12.4, 8.1, 15, 20, 3, 3),
			step(day.Add(14*time.Hour), 14.2, 10.0, 18, 35, 4, 7),
			step(day.Add(26*time.Hour), 6.1, 2.8, 9, 5, 0, 0), // next day 02:00
		},
	}

	days := f.Summarize()
	require.Len(t, days, 2)

	today := days["2026-03-14"]
	require.NotNil(t, today)

	// Day high/low across all entries for the date.
	assert.Equal(t, 14, today.High)
	assert.Equal(t, 7, today.Low)

	morning := today.Part(PeriodMorning)
	require.NotNil(t, morning)
	assert.Equal(t, 12, morning.MaxTemp)
	assert.Equal(t, 7, morning.MinTemp)
	assert.Equal(t, 15, morning.WindSpeedMPH)
	assert.Equal(t, 20, morning.ProbOfRain)
	assert.Equal(t, 3, morning.UVIndex)
	assert.Equal(t, []int{1, 3}, morning.WeatherCodes)

	afternoon := today.Part(PeriodAfternoon)
	require.NotNil(t, afternoon)
	assert.Equal(t, []int{7}, afternoon.WeatherCodes)

	// The 02:00 entry belongs to the next day's overnight part.
	next := days["2026-03-15"]
	require.NotNil(t, next)
	overnight := next.Part(PeriodOvernight)
	require.NotNil(t, overnight)
	assert.Equal(t, []int{0}, overnight.WeatherCodes)

	assert.Nil(t, today.Part(PeriodEvening))
}

func TestSummarizeDeduplicatesCodes(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	f := &Forecast{
		Steps: []TimeStep{
			step(day.Add(8*time.Hour), 10, 5, 10, 0, 1, 7),
			step(day.Add(9*time.Hour), 10, 5, 10, 0, 1, 7),
		},
	}

	morning := f.Summarize()["2026-03-14"].Part(PeriodMorning)
	require.NotNil(t, morning)
	assert.Equal(t, []int{7}, morning.WeatherCodes)
}

func TestSummarizeEmptyForecast(t *testing.T) {
	var f *Forecast
	assert.True(t, f.Empty())
	assert.Empty(t, f.Summarize())

	assert.True(t, (&Forecast{}).Empty())
}

func TestCoordinatesValid(t *testing.T) {
	assert.True(t, Coordinates{Lat: 51.36, Lon: -2.47}.Valid())
	assert.False(t, Coordinates{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Coordinates{Lat: 0, Lon: -181}.Valid())
}
