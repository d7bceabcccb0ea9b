package entities

import (
	"regexp"
	"strings"
	"time"
)

type AtsPlatform string

const (
	PlatformGreenhouse AtsPlatform = "greenhouse"
	PlatformLever      AtsPlatform = "lever"
	PlatformAshby      AtsPlatform = "ashby"
	PlatformWorkday    AtsPlatform = "workday"
)

type Company struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Slug          string `gorm:"uniqueIndex"`
	LogoURL       string
	WebsiteURL    string
	AtsPlatform   AtsPlatform
	AtsIdentifier string
	Active        bool `gorm:"default:true"`
	AutoCreated   bool
	Verified      bool
	LastSyncAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into the canonical company slug:
// lowercased, runs of non-alphanumeric characters collapsed to a hyphen.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
