package forecast

import (
	"context"
	"fmt"
)

// Provider abstracts a forecast data source (e.g. the Met Office DataHub).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinates) (*Forecast, error)
}

// FetchError is returned when a provider cannot deliver a forecast: network
// failure, rejected credentials, or a malformed response.
type FetchError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch from %s failed: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch from %s failed: %s", e.Provider, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }
