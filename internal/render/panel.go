package render

import (
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const (
	MsgWeatherUnavailable = "Не удалось загрузить данные о погоде. Пожалуйста, попробуйте еще раз."
	ForecastTitle         = "Прогноз на несколько дней"
	TodayLabel            = "Сегодня"
)

// PanelMode selects which card the primary panel shows.
type PanelMode int

const (
	PanelIdle PanelMode = iota
	PanelLoading
	PanelWeather
	PanelError
)

func (m PanelMode) String() string {
	switch m {
	case PanelLoading:
		return "loading"
	case PanelWeather:
		return "weather"
	case PanelError:
		return "error"
	default:
		return "idle"
	}
}

func (m PanelMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// PanelState is everything the primary panel depends on.
// Snapshot is only read in PanelWeather mode.
type PanelState struct {
	Mode     PanelMode
	Entry    model.LocationEntry
	Snapshot *model.WeatherSnapshot
}

// Panel renders the weather container. now supplies the date in the card header;
// forecastDays caps the forecast strip.
func Panel(state PanelState, now time.Time, forecastDays int) *Node {
	container := El("div", "weather-container").Attr("id", "weather-container")

	switch state.Mode {
	case PanelLoading:
		container.Append(El("div", "weather-card loading", El("div", "loader")))
	case PanelError:
		container.Append(El("div", "weather-card error",
			TextEl("h2", "city-name", state.Entry.Label()),
			TextEl("p", "", MsgWeatherUnavailable),
		))
	case PanelWeather:
		if state.Snapshot != nil {
			container.Append(weatherCard(state.Entry, state.Snapshot, now, forecastDays))
		}
	}
	return container
}

func weatherCard(entry model.LocationEntry, s *model.WeatherSnapshot, now time.Time, forecastDays int) *Node {
	name := s.LocationName
	if entry.IsCurrentLocation {
		name = model.CurrentLocationLabel
	}

	return El("div", "weather-card",
		TextEl("h2", "city-name", name),
		TextEl("div", "current-date", FullDate(now)),
		El("div", "current-weather",
			icon("weather-icon", s.ConditionIcon, s.ConditionText),
			TextEl("div", "temperature", Celsius(s.TempC)),
		),
		TextEl("div", "weather-description", s.ConditionText),
		El("div", "weather-details",
			detail("Ощущается как:", Celsius(s.FeelsLikeC)),
			detail("Влажность:", Number(s.Humidity)+"%"),
			detail("Ветер:", Number(s.WindKph)+" км/ч"),
			detail("Давление:", Number(s.PressureMb)+" мбар"),
		),
		El("div", "forecast",
			TextEl("h3", "forecast-title", ForecastTitle),
			forecastStrip(s.Forecast, forecastDays),
		),
	)
}

func forecastStrip(days []model.ForecastDay, limit int) *Node {
	strip := El("div", "forecast-days")
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	for i, d := range days {
		label := TodayLabel
		if i > 0 {
			label = ShortDate(d.Date)
		}
		strip.Append(El("div", "forecast-day",
			TextEl("div", "forecast-date", label),
			icon("forecast-icon", d.ConditionIcon, d.ConditionText),
			TextEl("div", "forecast-temp", Degrees(d.MinTempC)+" / "+Degrees(d.MaxTempC)),
		))
	}
	return strip
}

func detail(label, value string) *Node {
	return El("div", "detail-item",
		TextEl("span", "detail-label", label),
		TextEl("span", "detail-value", value),
	)
}

// icon builds an img from a protocol-relative provider URL.
func icon(class, src, alt string) *Node {
	return El("img", class).Attr("src", "https:"+src).Attr("alt", alt)
}
