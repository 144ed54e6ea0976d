// Package security provides the anti-forgery token helpers used by the
// booking form. Two shapes exist: a plain random hex token and a
// timestamp-qualified token that can be aged out.
//
// Note: the contact endpoint currently checks only that a token is present.
// The Validate functions below are not wired into the request pipeline;
// whether that omission is intentional defense-in-depth-not-yet or a gap is
// tracked in DESIGN.md.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// tokenBytes yields a 64-character hex token.
	tokenBytes = 32
	// timedTokenBytes yields the 32-character hex suffix of a timed token.
	timedTokenBytes = 16
	// DefaultTimedTokenMaxAge is how long a timed token stays acceptable.
	DefaultTimedTokenMaxAge = time.Hour
)

// GenerateToken returns a random token of 64 lowercase hex characters.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidateToken reports whether token has the shape GenerateToken produces.
func ValidateToken(token string) bool {
	return len(token) == tokenBytes*2 && isLowerHex(token)
}

// GenerateTimedToken returns a token of the form "<epoch-ms>.<32-hex>".
func GenerateTimedToken() (string, error) {
	b := make([]byte, timedTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate timed token: %w", err)
	}
	return fmt.Sprintf("%d.%s", time.Now().UnixMilli(), hex.EncodeToString(b)), nil
}

// ValidateTimedToken reports whether token is well-formed and no older than
// maxAge. Pass DefaultTimedTokenMaxAge unless the caller has a reason not to.
func ValidateTimedToken(token string, maxAge time.Duration) bool {
	timestampStr, randomHex, ok := strings.Cut(token, ".")
	if !ok || timestampStr == "" || randomHex == "" {
		return false
	}
	ms, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Since(time.UnixMilli(ms)) > maxAge {
		return false
	}
	return len(randomHex) == timedTokenBytes*2 && isLowerHex(randomHex)
}

func isLowerHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
