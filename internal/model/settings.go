package model

import "time"

// UserSettings is a per-user configuration blob. It is initialized with
// DefaultSettings on first read rather than at registration time, matching
// the get-or-initialize contract of the settings endpoint.
type UserSettings struct {
	UserID    string         `json:"-"`
	Data      map[string]any `json:"settings_data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DefaultSettings returns the template applied when a user has no stored
// settings yet. Callers receive a fresh map on every call.
func DefaultSettings() map[string]any {
	return map[string]any{
		"notifications": map[string]any{
			"emailNotifications": true,
			"pushNotifications":  true,
			"smsNotifications":   false,
			"marketingEmails":    false,
		},
		"privacy": map[string]any{
			"profileVisibility": "public",
			"dataSharing":       false,
			"analytics":         true,
		},
		"appearance": map[string]any{
			"theme":      "system",
			"language":   "en",
			"timezone":   "UTC",
			"dateFormat": "MM/DD/YYYY",
		},
		"security": map[string]any{
			"twoFactorAuth":  false,
			"sessionTimeout": 30,
			"passwordExpiry": 90,
		},
	}
}

type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	JoinDate   string `json:"join_date"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}
