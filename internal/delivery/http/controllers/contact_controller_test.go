package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reeverband/internal/adapters/ratelimit"
	"reeverband/internal/adapters/security"
	"reeverband/internal/delivery/http/helpers"
	"reeverband/internal/domain"
)

// mockEnquiryService implements domain.EnquiryService for tests.
type mockEnquiryService struct {
	err        error
	submitted  []*domain.BookingEnquiry
	lastClient string
}

func (m *mockEnquiryService) Submit(ctx context.Context, e *domain.BookingEnquiry, clientID string) error {
	m.lastClient = clientID
	if m.err != nil {
		return m.err
	}
	m.submitted = append(m.submitted, e)
	return nil
}

// allowAllLimiter implements domain.RateLimiter.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, clientID string) (bool, error) { return true, nil }

// failingLimiter simulates a limiter-store outage.
type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	return false, context.DeadlineExceeded
}

func testController(svc domain.EnquiryService, limiter domain.RateLimiter) *ContactController {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewContactController(logger, svc, limiter)
}

func validBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"name":      "A",
		"email":     "a@b.com",
		"date":      time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"message":   "Hi",
		"csrfToken": "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func postContact(ctrl *ContactController, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	w := httptest.NewRecorder()
	ctrl.CreateEnquiry(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) helpers.ErrorResponse {
	t.Helper()
	var resp helpers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}
	return resp
}

func TestCreateEnquiry_Success(t *testing.T) {
	svc := &mockEnquiryService{}
	ctrl := testController(svc, allowAllLimiter{})

	w := postContact(ctrl, validBody(t), "application/json")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp helpers.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !strings.Contains(resp.Message, "Thank you") {
		t.Errorf("expected a thank-you message, got %q", resp.Message)
	}
	if len(svc.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(svc.submitted))
	}
	if svc.submitted[0].Name != "A" || svc.submitted[0].EventDate == "" {
		t.Errorf("submission fields not mapped: %+v", svc.submitted[0])
	}
	if svc.lastClient != "1.2.3.4" {
		t.Errorf("expected derived client id, got %q", svc.lastClient)
	}
}

func TestCreateEnquiry_InvalidContentType(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, allowAllLimiter{})

	w := postContact(ctrl, validBody(t), "text/plain")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Invalid content type" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestCreateEnquiry_MalformedJSON(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, allowAllLimiter{})

	w := postContact(ctrl, "{not json", "application/json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Invalid JSON" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestCreateEnquiry_MissingToken(t *testing.T) {
	svc := &mockEnquiryService{}
	ctrl := testController(svc, allowAllLimiter{})

	body, _ := json.Marshal(map[string]string{
		"name":    "A",
		"email":   "a@b.com",
		"date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"message": "Hi",
	})
	w := postContact(ctrl, string(body), "application/json")

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Security token missing" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
	if len(svc.submitted) != 0 {
		t.Error("submission should not reach the service without a token")
	}
}

// TestCreateEnquiry_TokenPresenceOnly pins the current behavior: any
// non-empty token passes, even one ValidateTimedToken would reject. The
// validators exist but are deliberately not wired into the pipeline.
func TestCreateEnquiry_TokenPresenceOnly(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, allowAllLimiter{})

	bogus := "definitely-not-a-valid-token"
	if security.ValidateTimedToken(bogus, security.DefaultTimedTokenMaxAge) {
		t.Fatal("precondition: bogus token should not validate")
	}

	body, _ := json.Marshal(map[string]string{
		"name":      "A",
		"email":     "a@b.com",
		"date":      time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"message":   "Hi",
		"csrfToken": bogus,
	})
	w := postContact(ctrl, string(body), "application/json")

	if w.Code != http.StatusOK {
		t.Fatalf("presence-only check should accept any non-empty token, got %d", w.Code)
	}
}

func TestCreateEnquiry_ValidationErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "Missing required fields"},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
		{"invalid phone", domain.ErrInvalidPhone, http.StatusBadRequest, "Invalid phone format"},
		{"invalid date", domain.ErrInvalidDate, http.StatusBadRequest, "Invalid or past date"},
		{"spam", domain.ErrSpam, http.StatusBadRequest, "Message flagged as potential spam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := testController(&mockEnquiryService{err: tt.err}, allowAllLimiter{})
			w := postContact(ctrl, validBody(t), "application/json")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := decodeError(t, w); resp.Error != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, resp.Error)
			}
		})
	}
}

func TestCreateEnquiry_UnexpectedErrorIsOpaque(t *testing.T) {
	ctrl := testController(&mockEnquiryService{err: io.ErrUnexpectedEOF}, allowAllLimiter{})

	w := postContact(ctrl, validBody(t), "application/json")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error != "Internal server error" {
		t.Errorf("internal detail must not leak, got %q", resp.Error)
	}
}

func TestCreateEnquiry_RateLimited(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(5, 15*time.Minute)
	ctrl := testController(&mockEnquiryService{}, limiter)

	for i := 1; i <= 5; i++ {
		if w := postContact(ctrl, validBody(t), "application/json"); w.Code != http.StatusOK {
			t.Fatalf("submission %d should pass, got %d", i, w.Code)
		}
	}
	w := postContact(ctrl, validBody(t), "application/json")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("6th rapid submission should be rate limited, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != helpers.ErrCodeTooManyRequests {
		t.Errorf("unexpected error code: %q", resp.Code)
	}
}

func TestCreateEnquiry_LimiterOutageFailsOpen(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, failingLimiter{})

	w := postContact(ctrl, validBody(t), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("limiter outage should fail open, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, allowAllLimiter{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	w := httptest.NewRecorder()
	ctrl.MethodNotAllowed(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow: POST, got %q", allow)
	}
}

func TestIssueToken(t *testing.T) {
	ctrl := testController(&mockEnquiryService{}, allowAllLimiter{})

	req := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	w := httptest.NewRecorder()
	ctrl.IssueToken(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !security.ValidateTimedToken(resp.Token, security.DefaultTimedTokenMaxAge) {
		t.Errorf("issued token should be a valid timed token, got %q", resp.Token)
	}
}
