package domain

import (
	"context"
	"errors"
)

// Validation errors returned by EnquiryService.Submit. The controller maps
// each one to a response status and message.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrInvalidPhone  = errors.New("invalid phone format")
	ErrInvalidDate   = errors.New("invalid or past date")
	ErrSpam          = errors.New("flagged as potential spam")
)

// BookingEnquiry is a contact-form submission. It is ephemeral: sanitized in
// place, validated, handed to the email dispatcher, then discarded. Nothing
// is persisted.
type BookingEnquiry struct {
	Name      string
	Email     string
	Phone     string // optional
	EventDate string // as received; validated to be a parseable future date
	Venue     string // optional
	Message   string
}

// EnquiryService runs the intake pipeline over a raw submission.
type EnquiryService interface {
	// Submit sanitizes and validates the enquiry, returning one of the
	// sentinel errors above on the first failing check. On success the
	// accepted enquiry is logged and the notification email is dispatched;
	// email delivery failure does not surface here.
	Submit(ctx context.Context, enquiry *BookingEnquiry, clientID string) error
}

// RateLimiter decides whether a client may submit another enquiry.
// Implementations are process-local or shared (Redis) fixed-window counters.
type RateLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}
