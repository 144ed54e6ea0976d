package services

import (
	"context"
	"log/slog"
	"time"

	"reeverband/internal/domain"
	"reeverband/internal/sanitize"
	"reeverband/internal/spam"
	"reeverband/internal/validate"
)

// emailDispatchTimeout bounds the outbound notification call so a slow mail
// backend cannot stall indefinitely.
const emailDispatchTimeout = 10 * time.Second

// Human-facing formats for the notification email.
const (
	eventDateFormat   = "Monday, 2 January 2006"
	submittedAtFormat = "02/01/2006, 15:04:05"
)

type enquiryService struct {
	logger   *slog.Logger
	email    domain.EmailService
	detector *spam.Detector
	now      func() time.Time
	// dispatchDone, when non-nil, is signalled after the async email
	// dispatch finishes. Tests use it; production leaves it nil.
	dispatchDone chan struct{}
}

// NewEnquiryService returns the intake pipeline over booking enquiries:
// sanitize, check required fields, validate formats, screen for spam, then
// log the accepted record and dispatch the notification email.
func NewEnquiryService(logger *slog.Logger, email domain.EmailService, detector *spam.Detector) domain.EnquiryService {
	return &enquiryService{
		logger:   logger,
		email:    email,
		detector: detector,
		now:      time.Now,
	}
}

// Submit implements domain.EnquiryService. Checks run in a fixed order and
// the first failure short-circuits the rest; the enquiry is mutated in place
// by sanitization before any validation happens.
func (s *enquiryService) Submit(ctx context.Context, e *domain.BookingEnquiry, clientID string) error {
	e.Name = sanitize.Field(e.Name)
	e.Email = sanitize.Field(e.Email)
	e.Phone = sanitize.Field(e.Phone)
	e.EventDate = sanitize.Field(e.EventDate)
	e.Venue = sanitize.Field(e.Venue)
	e.Message = sanitize.Message(e.Message)

	if e.Name == "" || e.Email == "" || e.EventDate == "" || e.Message == "" {
		return domain.ErrMissingFields
	}
	if !validate.Email(e.Email) {
		return domain.ErrInvalidEmail
	}
	if !validate.Phone(e.Phone) {
		return domain.ErrInvalidPhone
	}
	eventDate, ok := validate.EventDate(e.EventDate)
	if !ok {
		return domain.ErrInvalidDate
	}
	if rule, flagged := s.detector.Check(e.Name, e.Email, e.Message, e.Venue); flagged {
		s.logger.InfoContext(ctx, "enquiry flagged as spam", "rule", rule, "client_id", clientID)
		return domain.ErrSpam
	}

	submittedAt := s.now()
	s.logger.InfoContext(ctx, "booking enquiry accepted",
		"client_id", clientID,
		"timestamp", submittedAt.UTC().Format(time.RFC3339),
		"name", e.Name,
		"email", e.Email,
		"event_date", e.EventDate,
		"venue", orNotProvided(e.Venue),
		"phone", orNotProvided(e.Phone),
	)

	data := &domain.BookingEnquiryEmailData{
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		EventDate:   eventDate.Format(eventDateFormat),
		Venue:       e.Venue,
		Message:     e.Message,
		SubmittedAt: submittedAt.Format(submittedAtFormat),
	}
	s.dispatch(ctx, data)
	return nil
}

// dispatch sends the notification without blocking the response. The form
// was already accepted, so the request context is detached: cancellation of
// the inbound request must not abort the send, but the dispatch still gets
// its own deadline.
func (s *enquiryService) dispatch(ctx context.Context, data *domain.BookingEnquiryEmailData) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailDispatchTimeout)
	go func() {
		defer cancel()
		if s.dispatchDone != nil {
			defer close(s.dispatchDone)
		}
		if err := s.email.SendBookingEnquiry(sendCtx, data); err != nil {
			s.logger.Error("booking enquiry notification failed", "err", err)
		}
	}()
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
