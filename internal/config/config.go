package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds every setting the application reads, loaded from app.env or
// the process environment.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	GoogleCloudProjectID string `mapstructure:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleMapsAPIKey     string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`

	WeatherAPIKey     string `mapstructure:"WEATHERAPI_KEY"`
	TomTomAPIKey      string `mapstructure:"TOMTOM_API_KEY"`
	OpenWeatherAPIKey string `mapstructure:"OPENWEATHER_API_KEY"`
	TransitlandAPIKey string `mapstructure:"TRANSITLAND_API_KEY"`

	AWSRegion string `mapstructure:"AWS_REGION"`
	EmailFrom string `mapstructure:"EMAIL_FROM"`
}

// LoadConfig reads configuration from app.env in the given path, with
// environment variables taking precedence. A missing config file is fine;
// everything can come from the environment.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("AWS_REGION", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.GoogleMapsAPIKey == "" {
		log.Println("warning: GOOGLE_MAPS_API_KEY not set, route planning will return mock data")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("warning: GEMINI_API_KEY not set, the assistant will use canned responses")
	}

	return cfg, nil
}
