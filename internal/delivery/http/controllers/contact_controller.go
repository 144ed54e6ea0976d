package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"reeverband/internal/adapters/security"
	"reeverband/internal/delivery/http/helpers"
	"reeverband/internal/delivery/http/middleware"
	"reeverband/internal/domain"
)

const thankYouMessage = "Thank you! We have received your enquiry and will be in touch soon."

type ContactController struct {
	Logger  *slog.Logger
	Service domain.EnquiryService
	Limiter domain.RateLimiter
}

func NewContactController(logger *slog.Logger, svc domain.EnquiryService, limiter domain.RateLimiter) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
		Limiter: limiter,
	}
}

// CreateEnquiryRequest is the request body for POST /api/contact.
type CreateEnquiryRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	Message   string `json:"message"`
	CSRFToken string `json:"csrfToken"`
}

// CreateEnquiry godoc
// @Summary Submit a booking enquiry
// @Description Runs the intake pipeline over a contact-form submission: rate limit, content type, JSON parse, security token presence, sanitization, field validation, spam screening. The first failing check determines the response; nothing is persisted.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body controllers.CreateEnquiryRequest true "Booking enquiry"
// @Success 200 {object} helpers.MessageResponse "Enquiry accepted"
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request (content type, JSON, validation or spam)"
// @Failure 403 {object} helpers.ErrorResponse "error.code: forbidden (security token missing)"
// @Failure 429 {object} helpers.ErrorResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/contact [post]
func (c *ContactController) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	// Whatever goes wrong below, the caller gets an opaque 500; detail
	// stays in the server log.
	defer func() {
		if rec := recover(); rec != nil {
			c.Logger.ErrorContext(r.Context(), "panic in contact handler", "panic", rec, "path", r.URL.Path)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Internal server error")
		}
	}()

	clientID, ok := middleware.ClientIDFromContext(r.Context())
	if !ok {
		clientID = middleware.DeriveClientID(r)
	}

	allowed, err := c.Limiter.Allow(r.Context(), clientID)
	if err != nil {
		// Fail open: a limiter-store outage must not take the form down.
		c.Logger.ErrorContext(r.Context(), "rate limiter unavailable, allowing request", "client_id", clientID, "err", err)
	} else if !allowed {
		helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid content type")
		return
	}

	var req CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid JSON")
		return
	}

	// Presence check only. security.ValidateTimedToken exists but is not
	// enforced here; see DESIGN.md before wiring it in.
	if req.CSRFToken == "" {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Security token missing")
		return
	}

	enquiry := &domain.BookingEnquiry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		EventDate: req.Date,
		Venue:     req.Venue,
		Message:   req.Message,
	}
	if err := c.Service.Submit(r.Context(), enquiry, clientID); err != nil {
		c.writeSubmitError(w, r, err)
		return
	}

	helpers.WriteJSONMessage(w, http.StatusOK, thankYouMessage)
}

func (c *ContactController) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrInvalidEmail):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid email format")
	case errors.Is(err, domain.ErrInvalidPhone):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid phone format")
	case errors.Is(err, domain.ErrInvalidDate):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid or past date")
	case errors.Is(err, domain.ErrSpam):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Message flagged as potential spam")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Internal server error")
	}
}

// MethodNotAllowed handles every non-POST method on the contact endpoint.
func (c *ContactController) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	helpers.WriteJSONError(w, http.StatusMethodNotAllowed, helpers.ErrCodeMethodNotAllowed, "Method not allowed")
}

// IssueToken godoc
// @Summary Issue an anti-forgery token
// @Description Returns a fresh timestamp-qualified token for the booking form to echo back on submission.
// @Tags contact
// @Produce json
// @Success 200 {object} helpers.TokenResponse
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/csrf-token [get]
func (c *ContactController) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, err := security.GenerateTimedToken()
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "token generation failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Internal server error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.TokenResponse{Token: token})
}
