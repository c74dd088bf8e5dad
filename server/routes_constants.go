package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Console Routes
	RouteConsole       = "/console/"
	RouteConsolePage   = "/console/{page}"
	RouteConsoleAction = "/console/{page}/{action}"

	// Images uploaded in memory mode
	RouteImage = "/images/{id}"

	// API Routes
	RouteAPISession = "/api/session"
	RouteAPIWhoAmI  = "/api/session/me"
	RouteHealth     = "/health"
)

// Console form actions, posted to RouteConsoleAction.
const (
	actionSave   = "save"
	actionDelete = "delete"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

func consolePath(page string) string {
	return RouteConsole + page
}
