package middleware

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizeText drops all markup from s and returns plain text.
// bluemonday escapes what it keeps, so entities are decoded again.
func SanitizeText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
