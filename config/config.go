package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds everything the process reads from the environment. Missing
// provider keys are allowed; the planner degrades the matching adapter.
type Config struct {
	Port string

	OpenWeatherKey  string
	RapidAPIKey     string
	GooglePlacesKey string
	HuggingFaceKey  string
	ItineraryModel  string

	ProviderTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		OpenWeatherKey:  os.Getenv("OPENWEATHER_API_KEY"),
		RapidAPIKey:     os.Getenv("RAPIDAPI_KEY"),
		GooglePlacesKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		HuggingFaceKey:  os.Getenv("HUGGINGFACE_API_KEY"),
		ItineraryModel:  os.Getenv("HUGGINGFACE_MODEL"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT_SECONDS", 12*time.Second),
	}

	for _, k := range []struct{ name, value string }{
		{"OPENWEATHER_API_KEY", cfg.OpenWeatherKey},
		{"RAPIDAPI_KEY", cfg.RapidAPIKey},
		{"GOOGLE_PLACES_API_KEY", cfg.GooglePlacesKey},
		{"HUGGINGFACE_API_KEY", cfg.HuggingFaceKey},
	} {
		if k.value == "" {
			log.Printf("⚠️  %s not set, that provider will serve fallback data", k.name)
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		log.Printf("⚠️  Ignoring invalid %s=%q", key, v)
		return fallback
	}
	return time.Duration(secs) * time.Second
}
