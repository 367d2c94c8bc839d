package models

// DefaultSackWeightKg is the assumed weight of one feed sack when the user
// has not configured their own.
const DefaultSackWeightKg = 50

// AppSettings is the per-installation settings singleton.
type AppSettings struct {
	// PinHash is the bcrypt hash of the lock-screen PIN, empty until set up.
	PinHash string `json:"pinHash,omitempty"`

	// IsSetup reports whether the first-run setup has completed.
	IsSetup bool `json:"isSetup"`

	DarkMode bool `json:"darkMode"`

	// SackWeightKg converts feed quantity (sacks) into kilograms for
	// consumption and FCR figures.
	SackWeightKg float64 `json:"sackWeightKg"`
}

// DefaultSettings returns the documented defaults applied when no settings
// have been stored, or merged under a partially stored record.
func DefaultSettings() AppSettings {
	return AppSettings{
		PinHash:      "",
		IsSetup:      false,
		DarkMode:     false,
		SackWeightKg: DefaultSackWeightKg,
	}
}

// UserSession holds the cloud account the installation is linked to. It is
// only present when the user has signed in for cloud backup.
type UserSession struct {
	UserID      string `json:"userId"`
	Email       string `json:"email,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	SavedAt     string `json:"savedAt,omitempty"`
}
