package services

import (
	"context"
	"fmt"
	"log"

	"reeverband/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	toEmail  string
}

// NewEmailService returns an EmailService that renders booking notifications
// and delivers them to toEmail through the given Mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, toEmail string) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, toEmail: toEmail}
}

// SendBookingEnquiry renders the "booking_enquiry" template and sends it.
// When the backend fails, the rendered notification is written to the log as
// a best-effort record and the original failure is returned; callers decide
// whether that affects the HTTP outcome (the contact handler ignores it).
func (s *emailService) SendBookingEnquiry(ctx context.Context, data *domain.BookingEnquiryEmailData) error {
	if data == nil {
		return fmt.Errorf("booking enquiry data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("booking_enquiry", data)
	if err != nil {
		return fmt.Errorf("failed to render booking_enquiry template: %w", err)
	}
	msg := &domain.EmailMessage{
		To:          s.toEmail,
		ReplyTo:     data.Email,
		ReplyToName: data.Name,
		Subject:     subject,
		HTML:        htmlBody,
		Text:        textBody,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("[EMAIL] Sending booking enquiry notification failed: %v", err)
		logFallbackRecord(msg)
		return fmt.Errorf("failed to send booking enquiry email: %w", err)
	}
	log.Printf("[EMAIL] Booking enquiry notification sent to %s", s.toEmail)
	return nil
}

// logFallbackRecord dumps the rendered notification so an enquiry is never
// lost entirely when its delivery fails.
func logFallbackRecord(msg *domain.EmailMessage) {
	log.Printf("[EMAIL] === FALLBACK NOTIFICATION RECORD ===")
	log.Printf("[EMAIL] To: %s", msg.To)
	log.Printf("[EMAIL] Reply-To: %s", msg.ReplyTo)
	log.Printf("[EMAIL] Subject: %s", msg.Subject)
	log.Printf("[EMAIL] %s", msg.Text)
	log.Printf("[EMAIL] ====================================")
}
