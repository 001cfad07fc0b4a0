package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// newTextSanitizer builds the policy applied to all free-text input. Feedback
// is rendered as plain text, so every tag is stripped; entities are unescaped
// afterwards so ordinary punctuation survives the round trip.
func newTextSanitizer() *bluemonday.Policy {
	return bluemonday.StrictPolicy()
}

func sanitizeText(policy *bluemonday.Policy, value string) string {
	return html.UnescapeString(policy.Sanitize(strings.TrimSpace(value)))
}

func sanitizeTags(policy *bluemonday.Policy, tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if sanitized := sanitizeText(policy, tag); sanitized != "" {
			cleaned = append(cleaned, sanitized)
		}
	}
	return cleaned
}
