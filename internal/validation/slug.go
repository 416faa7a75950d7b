// Package validation holds field-level validation rules shared by the
// publishing service.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Group slugs are URL-safe tokens: ASCII letters, digits, hyphens and
// underscores only.
var groupSlugRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

var reservedGroupSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"feed":    {},
	"groups":  {},
	"posts":   {},
	"users":   {},
	"metrics": {},
	"health":  {},
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 1-50 characters and contain only letters, digits, hyphens and underscores")
	}

	if _, exists := reservedGroupSlugs[strings.ToLower(slug)]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}

// RequireText checks that a user-supplied text field is non-empty after
// trimming whitespace.
func RequireText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}
