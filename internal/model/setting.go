package model

import "time"

// SiteSetting is one key/value pair of site configuration.
type SiteSetting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SettingScrollingMessage is the key of the storefront banner message.
const SettingScrollingMessage = "scrolling_message"

// DefaultScrollingMessage is returned when no banner has ever been stored.
const DefaultScrollingMessage = "Welcome to GEC - Global Engineering Center. We provide quality engineering services."
