// Package geolocation resolves the position used for the current-location entry.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

var (
	// ErrUnavailable means a position could not be determined.
	ErrUnavailable = errors.New("position unavailable")
	// ErrUnsupported means the host has no way to determine a position at all.
	ErrUnsupported = errors.New("geolocation not supported")
)

// Locator is a one-shot position request.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinates, error)
}

// FromConfig builds the locator named by geolocation.provider. It returns nil
// for "none", which the dashboard treats as a missing capability.
func FromConfig(httpClient ...*http.Client) (Locator, error) {
	switch provider := config.GetGeolocationProvider(); provider {
	case "", "ip":
		return NewIPLocator(config.GetGeolocationURL(), httpClient...), nil
	case "static":
		lat, lon := config.GetStaticCoordinates()
		return StaticLocator{Coordinates: model.Coordinates{Lat: lat, Lon: lon}}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown geolocation provider %q", provider)
	}
}

// StaticLocator always answers with the same position.
type StaticLocator struct {
	Coordinates model.Coordinates
}

func (s StaticLocator) Locate(context.Context) (model.Coordinates, error) {
	return s.Coordinates, nil
}

// IPLocator asks an ip-api.com compatible endpoint where the caller is.
type IPLocator struct {
	url        string
	httpClient *http.Client
}

func NewIPLocator(url string, httpClient ...*http.Client) *IPLocator {
	client := &http.Client{Timeout: 10 * time.Second}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &IPLocator{url: url, httpClient: client}
}

type ipAPIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (l *IPLocator) Locate(ctx context.Context) (model.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinates{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var data ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if data.Status != "" && data.Status != "success" {
		return model.Coordinates{}, fmt.Errorf("%w: %s", ErrUnavailable, data.Message)
	}
	if data.Lat == nil || data.Lon == nil {
		return model.Coordinates{}, fmt.Errorf("%w: no coordinates in response", ErrUnavailable)
	}
	return model.Coordinates{Lat: *data.Lat, Lon: *data.Lon}, nil
}
