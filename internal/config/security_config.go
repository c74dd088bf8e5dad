package config

import "time"

type SecurityConfig interface {
	GetTokenSigningSecret() string
	GetTokenExpiry() time.Duration
	GetManagerUsername() string
	GetManagerPassword() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetTokenSigningSecret is only used to sign tokens issued by the in-memory authenticator.
func (Security) GetTokenSigningSecret() string {
	return GetEnv("TOKEN_SIGNING_SECRET", "courier-admin-dev-secret")
}

func (Security) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(GetEnv("TOKEN_EXPIRY", "12h"))
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

func (Security) GetManagerUsername() string {
	return GetEnv("MANAGER_USERNAME", "manager")
}

func (Security) GetManagerPassword() string {
	return GetEnv("MANAGER_PASSWORD", "manager123")
}
