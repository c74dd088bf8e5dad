package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	CorsConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetDataSource() DataSource
	GetSessionFile() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAuthURL() string
	GetCatalogURL() string
	GetCouriersURL() string
	GetImagesURL() string
	GetReferencesURL() string
	GetAPITimeout() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Cors
	Security
}

func New() Config {
	return mainConfig{}
}
