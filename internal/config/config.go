package config

type Config interface {
	EnvConfig
	BackendConfig
	SecurityConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetRecaptchaKey() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
	Backend
	Security
}

func New() Config {
	return mainConfig{}
}
