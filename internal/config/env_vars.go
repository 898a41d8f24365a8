package config

import "os"

const (
	appNameVar      = "APP_NAME"
	recaptchaKeyVar = "RECAPTCHA_KEY"
	redisAddrVar    = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Authflow Client")
}

// GetRecaptchaKey returns the site key handed to the invisible CAPTCHA widget.
func (EnvVars) GetRecaptchaKey() string {
	return GetEnv(recaptchaKeyVar, "")
}

// GetRedisAddr returns the Redis address for flow-state persistence.
// Empty means the in-memory (tab-scoped) store is used.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
