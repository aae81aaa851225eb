package domain

import (
	"strings"
	"time"
)

// Platform identifies the target platform of a scheduled item.
type Platform string

const (
	PlatformAll       Platform = "All"
	PlatformTwitter   Platform = "Twitter"
	PlatformInstagram Platform = "Instagram"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// ValidPlatforms is the canonical set of accepted platform strings.
var ValidPlatforms = map[string]bool{
	"All": true, "Twitter": true, "Instagram": true, "LinkedIn": true,
}

// ParsePlatform resolves a platform string case-insensitively.
// An empty string resolves to PlatformAll, the default.
func ParsePlatform(s string) (Platform, bool) {
	if strings.TrimSpace(s) == "" {
		return PlatformAll, true
	}
	for name := range ValidPlatforms {
		if strings.EqualFold(name, s) {
			return Platform(name), true
		}
	}
	return "", false
}

// ScheduledItem is one variation assigned to a calendar day. The ID is issued
// by the backing row store; items held in a schedule cache are range-scoped
// copies of store rows.
type ScheduledItem struct {
	ID        string
	UserID    string
	Day       Day
	Content   string
	Platform  Platform
	CreatedAt time.Time
}
