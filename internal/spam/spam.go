// Package spam holds the heuristic used to screen booking enquiries. The
// rule set is coarse with a high false-negative tolerance: it exists to cut
// the obvious noise, not to be authoritative.
package spam

import (
	"regexp"
	"strings"
)

// Rule is a single spam-detection heuristic. Rules are pluggable so the
// known-incomplete default set can be swapped or extended.
type Rule interface {
	Name() string
	Matches(text string) bool
}

// Detector flags text that matches any of its rules.
type Detector struct {
	rules []Rule
}

// NewDetector returns a detector using the given rules, or DefaultRules
// when none are provided.
func NewDetector(rules ...Rule) *Detector {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Detector{rules: rules}
}

// Check concatenates the free-text enquiry fields, case-folds them, and
// returns the name of the first matching rule.
func (d *Detector) Check(name, email, message, venue string) (rule string, flagged bool) {
	text := strings.ToLower(name + " " + email + " " + message + " " + venue)
	for _, r := range d.rules {
		if r.Matches(text) {
			return r.Name(), true
		}
	}
	return "", false
}

// DefaultRules returns the stock rule set: URLs, a small spam-keyword
// denylist, and long runs of a repeated character.
func DefaultRules() []Rule {
	return []Rule{
		&regexpRule{name: "url", re: regexp.MustCompile(`https?://`)},
		&regexpRule{name: "keyword", re: regexp.MustCompile(`\b(viagra|casino|lottery|winner)\b`)},
		&repeatedRunRule{name: "repeated-characters", min: 11},
	}
}

type regexpRule struct {
	name string
	re   *regexp.Regexp
}

func (r *regexpRule) Name() string { return r.name }
func (r *regexpRule) Matches(text string) bool { return r.re.MatchString(text) }

// repeatedRunRule matches any single character repeated min or more times
// consecutively. This is a rune loop because RE2 has no backreferences.
type repeatedRunRule struct {
	name string
	min  int
}

func (r *repeatedRunRule) Name() string { return r.name }

func (r *repeatedRunRule) Matches(text string) bool {
	var prev rune
	run := 0
	for _, c := range text {
		if c == prev {
			run++
		} else {
			prev = c
			run = 1
		}
		if run >= r.min {
			return true
		}
	}
	return false
}
