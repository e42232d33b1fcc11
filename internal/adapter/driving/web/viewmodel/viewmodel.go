// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// LoginViewModel holds presentation-ready data for the login form.
type LoginViewModel struct {
	Username  string // echoed back after a failed attempt; never the password
	Error     string
	CSRFToken string

	// Shown only while the fallback credential is enabled.
	ShowFallbackHint bool
	FallbackUsername string
	FallbackPassword string
}

// NavLinkViewModel is one entry of the sidebar navigation.
type NavLinkViewModel struct {
	Label  string
	Path   string
	Active bool
}

// StatCardViewModel holds presentation-ready data for one entity count card.
type StatCardViewModel struct {
	Label string
	Value string
	Path  string
}

// StatusItemViewModel holds presentation-ready data for a status panel line.
type StatusItemViewModel struct {
	Label string
	State string
	Tone  string // ok, warn, error; drives the indicator color
}

// ActivityItemViewModel holds presentation-ready data for a recent activity entry.
type ActivityItemViewModel struct {
	When string
	HTML string // sanitized
}

// DashboardViewModel holds all data needed to render the dashboard page.
type DashboardViewModel struct {
	Username  string
	RoleLabel string
	CSRFToken string
	Nav       []NavLinkViewModel
	Stats     []StatCardViewModel
	Status    []StatusItemViewModel
	Activity  []ActivityItemViewModel
}
