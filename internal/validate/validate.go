// Package validate holds format checks for booking-enquiry fields.
package validate

import (
	"regexp"
	"time"
)

// maxEmailLength is the RFC 5321 bound on a forward path.
const maxEmailLength = 254

var (
	// Deliberately permissive: one @, at least one dot in the domain, no spaces.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9\s()+.-]{7,20}$`)
)

// Email reports whether s looks like a deliverable email address.
func Email(s string) bool {
	return len(s) <= maxEmailLength && emailRe.MatchString(s)
}

// Phone reports whether s is an acceptable phone number. The field is
// optional, so empty input passes.
func Phone(s string) bool {
	if s == "" {
		return true
	}
	return phoneRe.MatchString(s)
}

// dateLayouts are the formats the booking form submits: a full timestamp or
// a bare date (interpreted as midnight UTC).
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// EventDate parses s and reports whether it is a calendar date strictly
// later than now. Past and same-instant dates are rejected: there are no
// retroactive bookings.
func EventDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.After(time.Now()) {
			return t, true
		}
		return t, false
	}
	return time.Time{}, false
}
