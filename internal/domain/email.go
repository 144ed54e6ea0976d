package domain

import "context"

// EmailMessage is a rendered notification ready for delivery. It is created
// from a validated enquiry and consumed by exactly one mail backend.
type EmailMessage struct {
	To          string
	ReplyTo     string
	ReplyToName string
	Subject     string
	HTML        string
	Text        string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingEnquiryEmailData holds data for the booking enquiry notification.
// All fields are already sanitized; EventDate and SubmittedAt are
// human-formatted strings.
type BookingEnquiryEmailData struct {
	Name        string
	Email       string
	Phone       string // optional, omitted from the rendered mail when empty
	EventDate   string
	Venue       string // optional
	Message     string
	SubmittedAt string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingEnquiry(ctx context.Context, data *BookingEnquiryEmailData) error
}
