// Package validation holds the field-level validators shared by the plan
// and task stores: slug kebab-case rules and title/description length
// bounds (spec §3).
package validation

import (
	"fmt"
	"strings"
)

const (
	minSlugLen        = 1
	maxSlugLen        = 100
	minTitleLen       = 1
	maxTitleLen       = 500
	maxDescriptionLen = 5000
)

// ValidateSlug enforces lowercase kebab-case, 1-100 characters: lowercase
// letters, digits, and hyphens, no leading/trailing/doubled hyphen.
func ValidateSlug(slug string) error {
	if len(slug) < minSlugLen || len(slug) > maxSlugLen {
		return fmt.Errorf("slug must be between %d and %d characters", minSlugLen, maxSlugLen)
	}
	if slug[0] == '-' || slug[len(slug)-1] == '-' {
		return fmt.Errorf("slug %q must not start or end with a hyphen", slug)
	}
	if strings.Contains(slug, "--") {
		return fmt.Errorf("slug %q must not contain consecutive hyphens", slug)
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return fmt.Errorf("slug %q must be lowercase kebab-case", slug)
		}
	}
	return nil
}

// ValidateTitle enforces the 1-500 character bound shared by plan and task
// titles.
func ValidateTitle(title string) error {
	if len(title) < minTitleLen {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title must be %d characters or less", maxTitleLen)
	}
	return nil
}

// ValidateDescription enforces the 0-5000 character bound; empty is valid.
func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("description must be %d characters or less", maxDescriptionLen)
	}
	return nil
}
