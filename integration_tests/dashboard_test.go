package integrationtest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/app"
	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
	"github.com/fakhrymubarak/weather-dashboard/internal/render"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

type DashboardTestSuite struct {
	suite.Suite
	miniRedis  *miniredis.Miniredis
	weatherAPI *httptest.Server
	app        *app.App
	httpServer *httptest.Server
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Message string          `json:"message"`
}

type viewPayload struct {
	Mode       string                  `json:"mode"`
	Panel      *render.Node            `json:"panel"`
	Cities     *render.Node            `json:"cities"`
	ModalState render.ModalView        `json:"modalState"`
	Message    render.NotificationView `json:"message"`
}

func (suite *DashboardTestSuite) SetupSuite() {
	createMockRedisServer()
	suite.miniRedis = miniRedisMock

	suite.weatherAPI = mockWeatherAPI()
	os.Setenv("WEATHERAPI_API_KEY", "test_api_key")

	config.ReloadConfigForTest()
	viper.Set("storage.driver", "redis")
	viper.Set("weatherapi.api_url", suite.weatherAPI.URL+"/v1")
	viper.Set("notification.dismiss_after", "300ms")
}

func (suite *DashboardTestSuite) SetupTest() {
	suite.miniRedis.FlushAll()
	suite.startApp()
}

func (suite *DashboardTestSuite) startApp() {
	redis.ResetClientForTest()
	a, err := app.New(context.Background(), app.Options{Logger: zap.NewNop().Sugar()})
	suite.Require().NoError(err)
	suite.app = a
	suite.httpServer = setupIntegrationTestServer(a.Dashboard)
}

func (suite *DashboardTestSuite) stopApp() {
	if suite.httpServer != nil {
		suite.httpServer.Close()
		suite.httpServer = nil
	}
	if suite.app != nil {
		_ = suite.app.Close()
		suite.app = nil
	}
}

func (suite *DashboardTestSuite) TearDownTest() {
	suite.stopApp()
}

func (suite *DashboardTestSuite) TearDownSuite() {
	if suite.weatherAPI != nil {
		suite.weatherAPI.Close()
	}
	if suite.miniRedis != nil {
		suite.miniRedis.Close()
	}
	os.Unsetenv("WEATHERAPI_API_KEY")
	viper.Set("storage.driver", "sqlite")
	viper.Set("weatherapi.api_url", "http://127.0.0.1:18089/v1")
	viper.Set("notification.dismiss_after", "5s")
}

func TestDashboardTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}

func (suite *DashboardTestSuite) call(method, path, body string) (*http.Response, envelope) {
	req, err := http.NewRequest(method, suite.httpServer.URL+path, strings.NewReader(body))
	suite.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (suite *DashboardTestSuite) view() viewPayload {
	suite.app.Dashboard.Wait()
	_, env := suite.call(http.MethodGet, "/api/view", "")
	var v viewPayload
	suite.Require().NoError(json.Unmarshal(env.Data, &v))
	return v
}

func (suite *DashboardTestSuite) storedCities() ([]model.LocationEntry, string) {
	raw, err := suite.miniRedis.Get("weatherCities")
	suite.Require().NoError(err)
	var entries []model.LocationEntry
	suite.Require().NoError(json.Unmarshal([]byte(raw), &entries))
	index, err := suite.miniRedis.Get("activeCityIndex")
	suite.Require().NoError(err)
	return entries, index
}

func (suite *DashboardTestSuite) TestFirstRunWithoutGeolocation() {
	v := suite.view()
	assert.Equal(suite.T(), "idle", v.Mode)
	assert.True(suite.T(), v.ModalState.Open)
	assert.True(suite.T(), v.Message.Visible)
	assert.Equal(suite.T(), service.MsgGeolocationUnsupported, v.Message.Message)
}

func (suite *DashboardTestSuite) TestAddCityAndLoadWeather() {
	t := suite.T()
	resp, env := suite.call(http.MethodPost, "/api/cities", `{"name":"paris"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "Success", env.Message)

	v := suite.view()
	require.Equal(t, "weather", v.Mode)
	assert.Equal(t, "Paris", v.Panel.Find("city-name").Text)
	assert.Equal(t, "13°C", v.Panel.Find("temperature").Text)
	assert.Len(t, v.Panel.FindAll("forecast-day"), 3)
	assert.Equal(t, "Сегодня", v.Panel.Find("forecast-date").Text)

	entries, index := suite.storedCities()
	assert.Equal(t, []model.LocationEntry{{Name: "Paris"}}, entries)
	assert.Equal(t, "0", index)

	resp, env = suite.call(http.MethodPost, "/api/cities", `{"name":"PARIS"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, service.MsgDuplicateCity, *env.Error)

	resp, env = suite.call(http.MethodPost, "/api/cities", `{"name":"Atlantis"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, service.MsgUnknownCity, *env.Error)
}

func (suite *DashboardTestSuite) TestRemoveBeforeActive() {
	t := suite.T()
	suite.call(http.MethodPost, "/api/cities", `{"name":"Paris"}`)
	suite.call(http.MethodPost, "/api/cities", `{"name":"London"}`)
	resp, _ := suite.call(http.MethodPost, "/api/cities/1/select", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := suite.call(http.MethodDelete, "/api/cities/0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Success", env.Message)

	entries, index := suite.storedCities()
	assert.Equal(t, []model.LocationEntry{{Name: "London"}}, entries)
	assert.Equal(t, "0", index)
	assert.Equal(t, "London", suite.view().Panel.Find("city-name").Text)
}

func (suite *DashboardTestSuite) TestFetchFailureShowsErrorCard() {
	t := suite.T()
	suite.call(http.MethodPost, "/api/notification/dismiss", "")
	suite.call(http.MethodPost, "/api/cities", `{"name":"Tokyo"}`)

	v := suite.view()
	require.Equal(t, "error", v.Mode)
	assert.Equal(t, "Tokyo", v.Panel.Find("city-name").Text)
	assert.Contains(t, v.Panel.TextContent(), render.MsgWeatherUnavailable)
	assert.True(t, v.Message.Visible)
	assert.Equal(t, render.MsgWeatherUnavailable, v.Message.Message)

	assert.Eventually(t, func() bool {
		return !suite.view().Message.Visible
	}, 3*time.Second, 50*time.Millisecond)
}

func (suite *DashboardTestSuite) TestModalFlow() {
	t := suite.T()
	suite.call(http.MethodPost, "/api/modal/open", "")
	_, env := suite.call(http.MethodPost, "/api/modal/input", `{"text":"мос"}`)

	var v viewPayload
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, []string{"Москва"}, v.ModalState.Suggestions)

	suite.call(http.MethodPost, "/api/modal/suggestion", `{"name":"Москва"}`)
	resp, _ := suite.call(http.MethodPost, "/api/modal/confirm", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	v = suite.view()
	assert.False(t, v.ModalState.Open)
	assert.Equal(t, "weather", v.Mode)

	suite.call(http.MethodPost, "/api/modal/open", "")
	suite.call(http.MethodPost, "/api/modal/input", `{"text":"москва"}`)
	resp, env = suite.call(http.MethodPost, "/api/modal/confirm", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, service.MsgDuplicateCity, *env.Error)
}

func (suite *DashboardTestSuite) TestGeolocationPush() {
	t := suite.T()
	resp, _ := suite.call(http.MethodPost, "/api/geolocation", `{"lat":55.75,"lon":37.62}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := suite.view()
	assert.Equal(t, "weather", v.Mode)
	assert.Equal(t, model.CurrentLocationLabel, v.Panel.Find("city-name").Text)

	entries, _ := suite.storedCities()
	require.Len(t, entries, 1)
	c, ok := entries[0].Coordinates()
	require.True(t, ok)
	assert.Equal(t, model.Coordinates{Lat: 55.75, Lon: 37.62}, c)

	resp, _ = suite.call(http.MethodDelete, "/api/cities/0", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	entries, _ = suite.storedCities()
	assert.Len(t, entries, 1)
}

func (suite *DashboardTestSuite) TestStateSurvivesRestart() {
	t := suite.T()
	suite.call(http.MethodPost, "/api/cities", `{"name":"Rome"}`)
	suite.call(http.MethodPost, "/api/cities", `{"name":"Berlin"}`)
	suite.call(http.MethodPost, "/api/cities/1/select", "")
	suite.app.Dashboard.Wait()

	suite.stopApp()
	suite.startApp()

	entries, active := suite.app.Dashboard.Cities()
	assert.Equal(t, []model.LocationEntry{{Name: "Rome"}, {Name: "Berlin"}}, entries)
	assert.Equal(t, 1, active)
	assert.Equal(t, "Berlin", suite.view().Panel.Find("city-name").Text)
}

func (suite *DashboardTestSuite) TestCorruptStoredListStartsEmpty() {
	suite.stopApp()
	suite.Require().NoError(suite.miniRedis.Set("weatherCities", "{oops"))
	suite.startApp()

	entries, _ := suite.app.Dashboard.Cities()
	assert.Empty(suite.T(), entries)
	assert.True(suite.T(), suite.view().ModalState.Open)
}

func (suite *DashboardTestSuite) TestViewHTML() {
	suite.call(http.MethodPost, "/api/cities", `{"name":"Paris"}`)
	suite.app.Dashboard.Wait()

	resp, err := http.Get(suite.httpServer.URL + "/api/view.html")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	suite.Require().NoError(err)

	assert.Contains(suite.T(), buf.String(), `<h2 class="city-name">Paris</h2>`)
	assert.Contains(suite.T(), buf.String(), `<div class="city-item active" data-action="select-city" data-index="0">`)
}
