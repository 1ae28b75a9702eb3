package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

var (
	// ErrWeatherUnavailable is the single failure the dashboard surfaces for a forecast load.
	ErrWeatherUnavailable = errors.New("weather data unavailable")
	ErrAPIKeyMissing      = errors.New("API key missing")
)

// WeatherRepository loads current conditions and forecast for a location
type WeatherRepository interface {
	GetForecast(ctx context.Context, entry model.LocationEntry) (*model.WeatherSnapshot, error)
}

type weatherRepository struct {
	httpClient *http.Client
	baseURL    string
	days       int
	lang       string
	apiKey     func() string
	now        func() time.Time
}

// NewWeatherRepository creates a WeatherAPI.com backed repository
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetWeatherAPITimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
		baseURL:    config.GetWeatherAPIURL(),
		days:       config.GetForecastDays(),
		lang:       config.GetForecastLang(),
		apiKey:     config.GetWeatherAPIKey,
		now:        time.Now,
	}
}

// Query returns the WeatherAPI.com q parameter for an entry: "lat,lon" for the
// geolocated entry, the city name otherwise.
func Query(entry model.LocationEntry) string {
	if c, ok := entry.Coordinates(); ok && entry.IsCurrentLocation {
		return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
	}
	return entry.Name
}

func (r *weatherRepository) GetForecast(ctx context.Context, entry model.LocationEntry) (*model.WeatherSnapshot, error) {
	apiKey := r.apiKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, ErrAPIKeyMissing)
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("q", Query(entry))
	params.Set("days", strconv.Itoa(r.days))
	params.Set("lang", r.lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/forecast.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	var data model.WeatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeatherUnavailable, err)
	}
	return r.toSnapshot(&data)
}

func (r *weatherRepository) toSnapshot(data *model.WeatherAPIResponse) (*model.WeatherSnapshot, error) {
	if data.Current == nil || data.Forecast == nil {
		return nil, fmt.Errorf("%w: incomplete payload", ErrWeatherUnavailable)
	}

	snapshot := &model.WeatherSnapshot{
		LocationName:  data.Location.Name,
		TempC:         data.Current.TempC,
		FeelsLikeC:    data.Current.FeelsLikeC,
		Humidity:      data.Current.Humidity,
		WindKph:       data.Current.WindKph,
		PressureMb:    data.Current.PressureMb,
		ConditionText: data.Current.Condition.Text,
		ConditionIcon: data.Current.Condition.Icon,
		Forecast:      make([]model.ForecastDay, 0, len(data.Forecast.ForecastDay)),
		FetchedAt:     r.now(),
	}
	for _, d := range data.Forecast.ForecastDay {
		date, err := time.Parse(time.DateOnly, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: forecast date %q: %w", ErrWeatherUnavailable, d.Date, err)
		}
		snapshot.Forecast = append(snapshot.Forecast, model.ForecastDay{
			Date:          date,
			MinTempC:      d.Day.MinTempC,
			MaxTempC:      d.Day.MaxTempC,
			ConditionText: d.Day.Condition.Text,
			ConditionIcon: d.Day.Condition.Icon,
		})
	}
	return snapshot, nil
}
