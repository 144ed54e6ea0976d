// Package sanitize strips substrings considered unsafe for later rendering
// from contact-form input. It is a best-effort denylist, not a parser:
// output is not guaranteed safe for every downstream context (encoded
// payloads pass through), so renderers must still escape.
package sanitize

import (
	"regexp"
	"strings"
)

// Field length caps. Free-text messages get a higher cap than structured
// fields and, deliberately, less stripping (see Message).
const (
	MaxFieldLength   = 1000
	MaxMessageLength = 2000
)

var (
	jsProtocolRe   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+=`)
	dataProtocolRe = regexp.MustCompile(`(?i)data:`)
)

// Field sanitizes a structured form field: trims whitespace, removes angle
// brackets, removes javascript:/data: URI scheme prefixes and inline
// event-handler-attribute patterns anywhere in the string, and truncates to
// MaxFieldLength. Empty input yields an empty string. Idempotent once the
// result is below the cap and free of denylisted patterns.
func Field(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = jsProtocolRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	s = dataProtocolRe.ReplaceAllString(s, "")
	return truncate(s, MaxFieldLength)
}

// Message sanitizes the free-text message body: trim and truncate only.
// No tag or protocol stripping is applied here, mirroring the intake
// contract's asymmetry between structured fields and free text.
func Message(raw string) string {
	if raw == "" {
		return ""
	}
	return truncate(strings.TrimSpace(raw), MaxMessageLength)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
