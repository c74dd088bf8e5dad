package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar       = "API_BASE_URL"
	apiAuthURLVar       = "API_AUTH_URL"
	apiCatalogURLVar    = "API_CATALOG_URL"
	apiCouriersURLVar   = "API_COURIERS_URL"
	apiImagesURLVar     = "API_IMAGES_URL"
	apiReferencesURLVar = "API_REFERENCES_URL"
	apiTimeoutVar       = "API_TIMEOUT"

	defaultAPIBaseURL = "http://localhost:2331/api"
)

type API struct{}

var _ APIConfig = API{}

func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, defaultAPIBaseURL), "/")
}

// Each resource family may live on its own host; unset families share the base URL.

func (a API) GetAuthURL() string {
	return a.familyURL(apiAuthURLVar)
}

func (a API) GetCatalogURL() string {
	return a.familyURL(apiCatalogURLVar)
}

func (a API) GetCouriersURL() string {
	return a.familyURL(apiCouriersURLVar)
}

func (a API) GetImagesURL() string {
	return a.familyURL(apiImagesURLVar)
}

func (a API) GetReferencesURL() string {
	return a.familyURL(apiReferencesURLVar)
}

func (API) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(apiTimeoutVar, "15s"))
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func (a API) familyURL(envVar string) string {
	return strings.TrimRight(GetEnv(envVar, a.GetAPIBaseURL()), "/")
}
