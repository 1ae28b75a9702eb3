package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "0s")
	viper.SetDefault("server.idle_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("weatherapi.api_url", "https://api.weatherapi.com/v1")
	viper.SetDefault("weatherapi.timeout", "0s")
	viper.SetDefault("forecast.days", 3)
	viper.SetDefault("forecast.lang", "ru")
	viper.SetDefault("storage.driver", "redis")
	viper.SetDefault("storage.key_prefix", "")
	viper.SetDefault("storage.sqlite_path", "weather.db")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("notification.dismiss_after", "5s")
	viper.SetDefault("geolocation.provider", "ip")
	viper.SetDefault("geolocation.url", "http://ip-api.com/json")
	viper.SetDefault("refresh.interval", "0s")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetWeatherAPIURL() string {
	initConfig()
	return strings.TrimRight(viper.GetString("weatherapi.api_url"), "/")
}

// GetWeatherAPIKey reads WEATHERAPI_API_KEY from the environment (or .env),
// falling back to weatherapi.api_key in the config file.
func GetWeatherAPIKey() string {
	_ = godotenv.Load()
	if key := os.Getenv("WEATHERAPI_API_KEY"); key != "" {
		return key
	}
	initConfig()
	return viper.GetString("weatherapi.api_key")
}

// GetWeatherAPITimeout returns the outbound request timeout. Zero means none.
func GetWeatherAPITimeout() time.Duration {
	initConfig()
	return getDuration("weatherapi.timeout", 0)
}

func GetForecastDays() int {
	initConfig()
	days := viper.GetInt("forecast.days")
	if days <= 0 {
		return 3
	}
	return days
}

func GetForecastLang() string {
	initConfig()
	lang := viper.GetString("forecast.lang")
	if lang == "" {
		return "ru"
	}
	return lang
}

func GetStorageDriver() string {
	initConfig()
	return strings.ToLower(viper.GetString("storage.driver"))
}

func GetStorageKeyPrefix() string {
	initConfig()
	return viper.GetString("storage.key_prefix")
}

func GetSQLitePath() string {
	initConfig()
	return viper.GetString("storage.sqlite_path")
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	return serverPort
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetServerTimeoutDuration parses server.<key> and falls back to def when unset or invalid.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	initConfig()
	return getDuration("server."+key, def)
}

// GetNotificationTimeout returns how long a notification stays visible.
// Defaults to 5s if not set or invalid.
func GetNotificationTimeout() time.Duration {
	initConfig()
	dur := getDuration("notification.dismiss_after", 5*time.Second)
	if dur <= 0 {
		return 5 * time.Second
	}
	return dur
}

func GetGeolocationProvider() string {
	initConfig()
	return strings.ToLower(viper.GetString("geolocation.provider"))
}

func GetGeolocationURL() string {
	initConfig()
	return viper.GetString("geolocation.url")
}

// GetStaticCoordinates returns the coordinates used by the "static" geolocation provider.
func GetStaticCoordinates() (lat, lon float64) {
	initConfig()
	return viper.GetFloat64("geolocation.latitude"), viper.GetFloat64("geolocation.longitude")
}

// GetRefreshInterval returns the auto-refresh period. Zero disables auto refresh.
func GetRefreshInterval() time.Duration {
	initConfig()
	return getDuration("refresh.interval", 0)
}

func getDuration(key string, def time.Duration) time.Duration {
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return def
	}
	return dur
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
