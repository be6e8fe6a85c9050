package forecast

import "strings"

// Met Office significant weather codes mapped to the phrases read on air.
// Day and night shower variants share a phrase; the variant only matters for
// filtering below.
var codePhrases = map[int]string{
	0:  "Clear",
	1:  "Clear and sunny",
	2:  "Partially cloudy",
	3:  "Sunny with a few clouds",
	5:  "Misty",
	6:  "Foggy",
	7:  "Cloudy skies",
	8:  "Overcast",
	9:  "Light rain showers",
	10: "Light rain showers",
	11: "Drizzle",
	12: "Light rain",
	13: "Heavy rain showers",
	14: "Heavy rain showers",
	15: "Heavy rain",
	16: "Sleet showers",
	17: "Sleet showers",
	18: "Sleet",
	19: "Hail showers",
	20: "Hail showers",
	21: "Hail",
	22: "Light snow showers",
	23: "Light snow showers",
	24: "Light snow",
	25: "Heavy snow showers",
	26: "Heavy snow showers",
	27: "Heavy snow",
	28: "Thunder showers",
	29: "Thunder showers",
	30: "Thunder",
}

// Night-only and day-only code variants. Codes outside both sets apply at any
// time of day.
var (
	nightOnlyCodes = map[int]bool{0: true, 2: true, 9: true, 13: true, 16: true, 19: true, 22: true, 25: true, 28: true}
	dayOnlyCodes   = map[int]bool{1: true, 3: true, 10: true, 14: true, 17: true, 20: true, 23: true, 26: true, 29: true}
)

// CodesPhrase turns a set of weather codes into a spoken phrase for the given
// day part. Variants that do not apply to the part are filtered, near-duplicate
// sky conditions are collapsed, and the survivors joined the way a presenter
// would read them. An unknown code reads as "Some weather".
func CodesPhrase(codes []int, period Period) string {
	skip := dayOnlyCodes
	if period != PeriodOvernight {
		skip = nightOnlyCodes
	}

	kept := make([]int, 0, len(codes))
	for _, code := range codes {
		if skip[code] {
			continue
		}
		kept = append(kept, code)
	}
	kept = dedupeSkyCodes(kept)

	var b strings.Builder
	n := 0
	for _, code := range kept {
		n++
		if n == 2 {
			b.WriteString(", with ")
		} else if n >= 3 {
			b.WriteString(" and ")
		}
		phrase, ok := codePhrases[code]
		if !ok {
			phrase = "Some weather"
		}
		if n > 1 {
			phrase = strings.ToLower(phrase)
		}
		b.WriteString(phrase)
	}
	return b.String()
}

// dedupeSkyCodes drops the blander sky conditions when a more specific one is
// present, so a part does not read as both "Cloudy skies" and "Sunny with a
// few clouds". The input slice is left untouched.
func dedupeSkyCodes(codes []int) []int {
	hasSunnyClouds := false
	for _, c := range codes {
		if c == 3 {
			hasSunnyClouds = true
			break
		}
	}
	if !hasSunnyClouds {
		return codes
	}
	kept := make([]int, 0, len(codes))
	for _, c := range codes {
		if c == 7 || c == 2 {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
