package model

// WeatherAPIResponse is the subset of the WeatherAPI.com forecast.json payload the dashboard reads.
// Current and Forecast are pointers so a payload missing either block can be told apart from zero values.
type WeatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current  *WeatherAPICurrent  `json:"current"`
	Forecast *WeatherAPIForecast `json:"forecast"`
}

type WeatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type WeatherAPICurrent struct {
	TempC      float64             `json:"temp_c"`
	FeelsLikeC float64             `json:"feelslike_c"`
	Humidity   float64             `json:"humidity"`
	WindKph    float64             `json:"wind_kph"`
	PressureMb float64             `json:"pressure_mb"`
	Condition  WeatherAPICondition `json:"condition"`
}

type WeatherAPIForecast struct {
	ForecastDay []WeatherAPIForecastDay `json:"forecastday"`
}

type WeatherAPIForecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MinTempC  float64             `json:"mintemp_c"`
		MaxTempC  float64             `json:"maxtemp_c"`
		Condition WeatherAPICondition `json:"condition"`
	} `json:"day"`
}
