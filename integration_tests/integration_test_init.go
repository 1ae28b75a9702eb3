package integrationtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/middleware"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

var (
	miniRedisMock *miniredis.Miniredis
)

func createMockRedisServer() {
	miniRedisMock = miniredis.NewMiniRedis()
	err := miniRedisMock.StartAddr(":16379")
	if err != nil {
		panic(err)
	}
}

// mockWeatherAPI answers forecast.json like WeatherAPI.com. "Tokyo" fails with 500.
func mockWeatherAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast.json" || r.URL.Query().Get("key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query().Get("q")
		if q == "Tokyo" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"code":9999,"message":"Internal application error."}}`)
			return
		}
		name := q
		if strings.Contains(q, ",") {
			name = "Moscow"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
  "location": {"name": %q},
  "current": {"temp_c": 12.5, "feelslike_c": 10.2, "humidity": 71, "wind_kph": 14.4, "pressure_mb": 1012,
    "condition": {"text": "Ясно", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png"}},
  "forecast": {"forecastday": [
    {"date": "2024-01-15", "day": {"mintemp_c": -3.4, "maxtemp_c": 2.5, "condition": {"text": "Снег", "icon": "//cdn/338.png"}}},
    {"date": "2024-01-16", "day": {"mintemp_c": -5, "maxtemp_c": 0, "condition": {"text": "Ясно", "icon": "//cdn/113.png"}}},
    {"date": "2024-01-17", "day": {"mintemp_c": -1, "maxtemp_c": 1, "condition": {"text": "Ясно", "icon": "//cdn/113.png"}}}
  ]}
}`, name)
	}))
}

func setupIntegrationTestServer(d service.DashboardInterface) *httptest.Server {
	logger := zap.NewNop().Sugar()
	mux := http.NewServeMux()
	handler.NewDashboardHandler(d, logger).Register(mux)
	return httptest.NewServer(middleware.Chain(mux, middleware.RequestID, middleware.Logging(logger)))
}
