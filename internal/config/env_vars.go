package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	portEnvVar        = "PORT"
	appNameVar        = "APP_NAME"
	envVar            = "ENV"
	logLevelVar       = "LOG_LEVEL"
	dataSourceVar     = "DATA_SOURCE"
	sessionFileEnvVar = "SESSION_FILE"
)

// DataSource selects which repository implementations back the domain services.
type DataSource string

const (
	DataSourceMemory DataSource = "memory"
	DataSourceRemote DataSource = "remote"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are not an error; variables already set are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("[config LoadDotEnv] %s: %w", f, err)
		}
	}
	return nil
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Courier Admin")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

// GetDataSource returns the configured data source, falling back to memory for unknown values.
func (EnvVars) GetDataSource() DataSource {
	switch DataSource(strings.ToLower(GetEnv(dataSourceVar, string(DataSourceMemory)))) {
	case DataSourceRemote:
		return DataSourceRemote
	default:
		return DataSourceMemory
	}
}

// GetSessionFile is where the signed-in credential is persisted between restarts.
func (EnvVars) GetSessionFile() string {
	return GetEnv(sessionFileEnvVar, "./data/session.json")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
