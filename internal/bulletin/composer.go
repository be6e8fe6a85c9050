// Package bulletin turns a forecast into the natural-language text a
// presenter would read on air. Composition is deterministic: the same
// forecast, clock and location always produce the same text.
package bulletin

import (
	"fmt"
	"time"

	"github.com/somersetradio/weather-bulletin/internal/forecast"
)

// CompositionError is returned when the forecast is missing the day parts the
// bulletin template needs.
type CompositionError struct {
	Missing string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("cannot compose bulletin: forecast has no data for %s", e.Missing)
}

// Compose writes the bulletin for the given forecast. The template depends on
// the time of day: mornings lead with today, evenings pivot to tomorrow. The
// location name falls back to the one reported by the provider.
func Compose(f *forecast.Forecast, now time.Time, location string) (string, error) {
	if f.Empty() {
		return "", &CompositionError{Missing: "any time step"}
	}
	if location == "" {
		location = f.LocationName
	}
	if location == "" {
		location = "the area"
	}

	days := f.Summarize()
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	switch hour := now.Hour(); {
	case hour >= 5 && hour < 11:
		return composeMorning(days, today, location)
	case hour >= 11 && hour < 17:
		return composeAfternoon(days, today, location)
	case hour >= 17:
		return composeEvening(days, today, tomorrow)
	default:
		return composeOvernight(days, tomorrow)
	}
}

func composeMorning(days map[string]*forecast.DaySummary, today, location string) (string, error) {
	day := days[today]
	morning := day.Part(forecast.PeriodMorning)
	afternoon := day.Part(forecast.PeriodAfternoon)
	if morning == nil || afternoon == nil {
		return "", &CompositionError{Missing: "today's morning and afternoon"}
	}

	morningWx := partPhrase(morning, forecast.PeriodMorning)
	afternoonWx := partPhrase(afternoon, forecast.PeriodAfternoon)

	text := fmt.Sprintf("%s this morning, ", morningWx)
	if morningWx == afternoonWx {
		text += fmt.Sprintf("staying much the same throughout the afternoon in %s, ", location)
	} else {
		text += fmt.Sprintf("%s across %s this afternoon ", afternoonWx, location)
	}
	text += fmt.Sprintf("with temperatures reaching %d degrees.", day.High)
	text += conditionsSentence(morning)
	return text, nil
}

func composeAfternoon(days map[string]*forecast.DaySummary, today, location string) (string, error) {
	day := days[today]
	afternoon := day.Part(forecast.PeriodAfternoon)
	evening := day.Part(forecast.PeriodEvening)
	if afternoon == nil || evening == nil {
		return "", &CompositionError{Missing: "today's afternoon and evening"}
	}

	afternoonWx := partPhrase(afternoon, forecast.PeriodAfternoon)
	eveningWx := partPhrase(evening, forecast.PeriodEvening)

	text := fmt.Sprintf("%s this afternoon", afternoonWx)
	if afternoonWx == eveningWx {
		text += ", continuing into the evening"
	} else {
		text += fmt.Sprintf(", %s later into the evening", eveningWx)
	}
	text += fmt.Sprintf(". Highs across %s of %d degrees.", location, day.High)
	text += conditionsSentence(afternoon)
	return text, nil
}

func composeEvening(days map[string]*forecast.DaySummary, today, tomorrow string) (string, error) {
	evening := days[today].Part(forecast.PeriodEvening)
	if evening == nil {
		return "", &CompositionError{Missing: "this evening"}
	}
	tomorrowDay := days[tomorrow]
	overnight := tomorrowDay.Part(forecast.PeriodOvernight)
	tomorrowMorning := tomorrowDay.Part(forecast.PeriodMorning)
	if overnight == nil || tomorrowMorning == nil {
		return "", &CompositionError{Missing: "tonight and tomorrow morning"}
	}

	text := fmt.Sprintf("%s this evening. ", partPhrase(evening, forecast.PeriodEvening))
	text += fmt.Sprintf("%s overnight with lows of %d degrees. ",
		partPhrase(overnight, forecast.PeriodOvernight), tomorrowDay.Low)
	text += fmt.Sprintf("Tomorrow we will expect %s with highs of %d.",
		partPhrase(tomorrowMorning, forecast.PeriodMorning), tomorrowDay.High)
	text += conditionsSentence(evening)
	return text, nil
}

func composeOvernight(days map[string]*forecast.DaySummary, tomorrow string) (string, error) {
	tomorrowDay := days[tomorrow]
	overnight := tomorrowDay.Part(forecast.PeriodOvernight)
	morning := tomorrowDay.Part(forecast.PeriodMorning)
	afternoon := tomorrowDay.Part(forecast.PeriodAfternoon)
	if overnight == nil || morning == nil || afternoon == nil {
		return "", &CompositionError{Missing: "tonight and tomorrow"}
	}

	morningWx := partPhrase(morning, forecast.PeriodMorning)
	afternoonWx := partPhrase(afternoon, forecast.PeriodAfternoon)

	text := fmt.Sprintf("%s overnight with lows of %d degrees. ",
		partPhrase(overnight, forecast.PeriodOvernight), tomorrowDay.Low)
	if morningWx == afternoonWx {
		text += fmt.Sprintf("Tomorrow we are expecting %s, ", morningWx)
		text += fmt.Sprintf("with temperatures reaching highs of %d degrees.", tomorrowDay.High)
	} else {
		text += fmt.Sprintf("Tomorrow morning will start with %s, ", morningWx)
		text += fmt.Sprintf("%s later on, highs of %d.", afternoonWx, tomorrowDay.High)
	}
	text += conditionsSentence(overnight)
	return text, nil
}

// partPhrase renders the weather codes of a part, falling back to a neutral
// phrase when every code was filtered out for the time of day.
func partPhrase(part *forecast.PartSummary, period forecast.Period) string {
	phrase := forecast.CodesPhrase(part.WeatherCodes, period)
	if phrase == "" {
		phrase = "Settled weather"
	}
	return phrase
}

// conditionsSentence adds the wind and rain-chance facts for the part the
// bulletin leads with.
func conditionsSentence(part *forecast.PartSummary) string {
	return fmt.Sprintf(" Winds around %d miles per hour, with a %d percent chance of rain.",
		part.WindSpeedMPH, part.ProbOfRain)
}
