package model

import "time"

// WeatherSnapshot is the normalized result of one forecast load.
type WeatherSnapshot struct {
	LocationName  string        `json:"locationName"`
	TempC         float64       `json:"tempC"`
	FeelsLikeC    float64       `json:"feelsLikeC"`
	Humidity      float64       `json:"humidity"`
	WindKph       float64       `json:"windKph"`
	PressureMb    float64       `json:"pressureMb"`
	ConditionText string        `json:"conditionText"`
	ConditionIcon string        `json:"conditionIcon"`
	Forecast      []ForecastDay `json:"forecast"`
	FetchedAt     time.Time     `json:"fetchedAt"`
}

// ForecastDay is one day of the short-range forecast. Date carries no time-of-day.
type ForecastDay struct {
	Date          time.Time `json:"date"`
	MinTempC      float64   `json:"minTempC"`
	MaxTempC      float64   `json:"maxTempC"`
	ConditionText string    `json:"conditionText"`
	ConditionIcon string    `json:"conditionIcon"`
}
