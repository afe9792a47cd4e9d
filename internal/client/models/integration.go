package models

import "time"

type IntegrationPlatform string

const (
	PlatformSlack        IntegrationPlatform = "slack"
	PlatformGoogleSheets IntegrationPlatform = "google_sheets"
	PlatformJira         IntegrationPlatform = "jira"
)

// ParsePlatform accepts the stored name or the route spelling
// ("google-sheets").
func ParsePlatform(s string) (IntegrationPlatform, bool) {
	switch s {
	case "slack":
		return PlatformSlack, true
	case "google_sheets", "google-sheets":
		return PlatformGoogleSheets, true
	case "jira":
		return PlatformJira, true
	}
	return "", false
}

// Integration links a third-party workspace to the user's agents.
type Integration struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Platform  IntegrationPlatform `json:"platform"`
	Config    map[string]any      `json:"config,omitempty"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
}

// IntegrationStatus is one entry of GET /integrations/status, keyed by
// platform.
type IntegrationStatus struct {
	Status      string         `json:"status"`
	LastChecked *time.Time     `json:"last_checked,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}
