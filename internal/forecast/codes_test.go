package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesPhraseSingleCode(t *testing.T) {
	assert.Equal(t, "Clear and sunny", CodesPhrase([]int{1}, PeriodMorning))
	assert.Equal(t, "Heavy rain", CodesPhrase([]int{15}, PeriodAfternoon))
	assert.Equal(t, "Clear", CodesPhrase([]int{0}, PeriodOvernight))
}

func TestCodesPhraseFiltersVariantsByPeriod(t *testing.T) {
	// Clear night (0) never applies during the day, clear sunny day (1)
	// never applies overnight.
	assert.Equal(t, "Clear and sunny", CodesPhrase([]int{0, 1}, PeriodMorning))
	assert.Equal(t, "Clear", CodesPhrase([]int{0, 1}, PeriodOvernight))

	// Day shower variant (10) kept during the day, night variant (9) kept
	// overnight.
	assert.Equal(t, "Light rain showers", CodesPhrase([]int{9, 10}, PeriodAfternoon))
	assert.Equal(t, "Light rain showers", CodesPhrase([]int{9, 10}, PeriodOvernight))
}

func TestCodesPhraseJoinsMultipleConditions(t *testing.T) {
	// Drizzle (11) and heavy rain (15) apply at any time of day.
	assert.Equal(t, "Drizzle, with heavy rain", CodesPhrase([]int{11, 15}, PeriodEvening))
	assert.Equal(t, "Misty, with foggy and drizzle", CodesPhrase([]int{5, 6, 11}, PeriodMorning))
}

func TestCodesPhraseDropsBlandSkiesWhenSunnyWithClouds(t *testing.T) {
	// Cloudy skies (7) and partially cloudy (2) collapse into sunny with a
	// few clouds (3) when all were reported.
	assert.Equal(t, "Sunny with a few clouds", CodesPhrase([]int{3, 7}, PeriodMorning))
	assert.Equal(t, "Sunny with a few clouds", CodesPhrase([]int{2, 3, 7}, PeriodMorning))

	// Without code 3 present they survive.
	assert.Equal(t, "Cloudy skies", CodesPhrase([]int{7}, PeriodMorning))
}

func TestCodesPhraseDoesNotMutateInput(t *testing.T) {
	codes := []int{2, 3, 7}

	first := CodesPhrase(codes, PeriodMorning)
	second := CodesPhrase(codes, PeriodMorning)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{2, 3, 7}, codes)
}

func TestCodesPhraseUnknownCode(t *testing.T) {
	assert.Equal(t, "Some weather", CodesPhrase([]int{99}, PeriodMorning))
}

func TestCodesPhraseAllFilteredIsEmpty(t *testing.T) {
	assert.Equal(t, "", CodesPhrase([]int{0}, PeriodMorning))
	assert.Equal(t, "", CodesPhrase(nil, PeriodMorning))
}
