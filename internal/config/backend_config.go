package config

import (
	"time"
)

type BackendConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetAPIBaseURL returns the base URL of the reward platform backend
// (e.g. "https://api.example.com")
func (Backend) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:8000")
}

func (Backend) GetAPITimeout() time.Duration {
	return getDurationEnv("API_TIMEOUT", 15*time.Second)
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
