package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxDecodeRounds bounds how many layers of entity encoding are peeled.
const maxDecodeRounds = 8

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText strips every tag from s and keeps the plain text. Entity
// encoded markup is decoded and sanitized again until the text stops
// changing, so no tag survives behind an encoding layer.
func SanitizeText(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	p := textSanitizer()
	for i := 0; i < maxDecodeRounds; i++ {
		plain := html.UnescapeString(p.Sanitize(s))
		if plain == s {
			return strings.TrimSpace(plain)
		}
		s = plain
	}
	return strings.TrimSpace(p.Sanitize(s))
}

// Sanitize strips markup from the human-readable strings of a candidate
// produced outside the author's control, such as generator output. Validation
// patterns and anything of the wrong shape are left for Validate to judge.
// The candidate is modified in place and returned.
func Sanitize(candidate map[string]any) map[string]any {
	sanitizeKeys(candidate, "title", "description")
	fields, ok := candidate["fields"].([]any)
	if !ok {
		return candidate
	}
	for _, raw := range fields {
		f, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		sanitizeKeys(f, "label", "placeholder", "description")
		if opts, ok := f["options"].([]any); ok {
			for i, o := range opts {
				if s, ok := o.(string); ok {
					opts[i] = SanitizeText(s)
				}
			}
		}
	}
	return candidate
}

func sanitizeKeys(m map[string]any, keys ...string) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			m[k] = SanitizeText(s)
		}
	}
}
