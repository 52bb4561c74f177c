package model

import (
	"regexp"
	"strings"
)

// SiteConfig holds site-wide settings from site.json.
type SiteConfig struct {
	CancelAllUpcoming bool     `json:"cancel_all_upcoming"`
	CancelUntil       string   `json:"cancel_until,omitempty"`
	CancelDates       []string `json:"cancel_dates,omitempty"`
	Resources         []Link   `json:"resources,omitempty"`
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
// It returns "topic" when nothing is left.
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "topic"
	}
	return slug
}
