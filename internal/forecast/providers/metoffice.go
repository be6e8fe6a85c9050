package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/somersetradio/weather-bulletin/internal/common"
	"github.com/somersetradio/weather-bulletin/internal/forecast"
)

const (
	// TimestepsHourly and TimestepsThreeHourly select the Met Office
	// site-specific endpoint granularity.
	TimestepsHourly      = "hourly"
	TimestepsThreeHourly = "three-hourly"

	metOfficeBaseURL = "https://data.hub.api.metoffice.gov.uk/sitespecific/v0/point"
)

// MetOfficeProvider implements forecast.Provider against the Met Office
// DataHub site-specific API.
type MetOfficeProvider struct {
	name      string
	apiKey    string
	baseURL   string
	timesteps string
	rc        *resilientClient
}

func NewMetOfficeProvider(client *http.Client, apiKey, timesteps string) *MetOfficeProvider {
	if timesteps != TimestepsHourly {
		timesteps = TimestepsThreeHourly
	}
	return &MetOfficeProvider{
		name:      "metoffice",
		apiKey:    apiKey,
		baseURL:   metOfficeBaseURL,
		timesteps: timesteps,
		rc: newResilientClient(client, "metoffice", BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		}),
	}
}

func (p *MetOfficeProvider) Name() string {
	return p.name
}

// WithBaseURL points the provider at a different endpoint. Used by tests.
func (p *MetOfficeProvider) WithBaseURL(u string) *MetOfficeProvider {
	p.baseURL = u
	return p
}

func (p *MetOfficeProvider) Fetch(ctx context.Context, coords forecast.Coordinates) (*forecast.Forecast, error) {
	if p.apiKey == "" {
		return nil, &forecast.FetchError{Provider: p.name, Reason: "api key is not configured"}
	}
	if !coords.Valid() {
		return nil, &forecast.FetchError{
			Provider: p.name,
			Reason:   fmt.Sprintf("coordinates out of range: %.4f,%.4f", coords.Lat, coords.Lon),
		}
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("excludeParameterMetadata", "true")
		values.Set("includeLocationName", "true")
		values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coords.Lon))

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, p.timesteps, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("apikey", p.apiKey)
		return req, nil
	}

	resp, err := p.rc.do(ctx, buildRequest)
	if err != nil {
		reason := "request failed"
		if errors.Is(err, errUnauthorized) {
			reason = "authentication failed"
		}
		return nil, &forecast.FetchError{Provider: p.name, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	var payload struct {
		Features []struct {
			Properties struct {
				Location struct {
					Name string `json:"name"`
				} `json:"location"`
				ModelRunDate time.Time `json:"modelRunDate"`
				TimeSeries   []struct {
					Time                   time.Time `json:"time"`
					MaxScreenAirTemp       float64   `json:"maxScreenAirTemp"`
					MinScreenAirTemp       float64   `json:"minScreenAirTemp"`
					WindSpeed10m           float64   `json:"windSpeed10m"` // m/s
					ProbOfRain             float64   `json:"probOfRain"`
					UVIndex                int       `json:"uvIndex"`
					SignificantWeatherCode int       `json:"significantWeatherCode"`
				} `json:"timeSeries"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &forecast.FetchError{Provider: p.name, Reason: "malformed response", Err: err}
	}
	if len(payload.Features) == 0 || len(payload.Features[0].Properties.TimeSeries) == 0 {
		return nil, &forecast.FetchError{Provider: p.name, Reason: "response contains no forecast data"}
	}

	props := payload.Features[0].Properties

	f := &forecast.Forecast{
		LocationName: props.Location.Name,
		Issued:       props.ModelRunDate,
		Steps:        make([]forecast.TimeStep, 0, len(props.TimeSeries)),
	}
	for _, entry := range props.TimeSeries {
		f.Steps = append(f.Steps, forecast.TimeStep{
			Time:         entry.Time,
			MaxTemp:      entry.MaxScreenAirTemp,
			MinTemp:      entry.MinScreenAirTemp,
			WindSpeedMPH: common.MPHFromMS(entry.WindSpeed10m),
			ProbOfRain:   entry.ProbOfRain,
			UVIndex:      entry.UVIndex,
			WeatherCode:  entry.SignificantWeatherCode,
		})
	}

	return f, nil
}
