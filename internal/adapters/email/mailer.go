package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"reeverband/internal/domain"
)

// ErrSMTPNotImplemented is returned by every send on the smtp backend. The
// configuration surface for SMTP exists but the relay path was never built.
var ErrSMTPNotImplemented = errors.New("smtp mailer not implemented: configure sendgrid, ses or console instead")

const sendgridAPIURL = "https://api.sendgrid.com/v3/mail/send"

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SMTPConfig holds configuration for an SMTP relay.
type SMTPConfig struct {
	Host   string
	Port   int
	Secure bool
	User   string
	Pass   string
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	// Provider selects the backend: "sendgrid", "ses", "smtp" or "console".
	// Unknown values fall back to console.
	Provider    string
	APIKey      string
	FromAddress string
	FromName    string
	SES         SESConfig
	SMTP        SMTPConfig
}

// NewMailer creates a mailer from config. The backend is fixed at
// construction; callers never branch on the provider string again.
func NewMailer(config MailerConfig) (domain.Mailer, error) {
	switch config.Provider {
	case "sendgrid":
		return &sendgridMailer{
			apiKey:      config.APIKey,
			apiURL:      sendgridAPIURL,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			httpClient:  &http.Client{Timeout: 10 * time.Second},
		}, nil
	case "ses":
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SES.AccessKeyID,
					config.SES.SecretAccessKey,
					"",
				),
			),
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "smtp", "nodemailer":
		// "nodemailer" is the legacy name for the SMTP path and gets the
		// same stub.
		return &smtpMailer{config: config.SMTP}, nil
	case "console":
		return &consoleMailer{}, nil
	default:
		log.Printf("[MAILER] Unknown email provider %q, using console", config.Provider)
		return &consoleMailer{}, nil
	}
}

// sendgridMailer delivers through the SendGrid v3 REST API with bearer-token
// auth.
type sendgridMailer struct {
	apiKey      string
	apiURL      string
	fromAddress string
	fromName    string
	httpClient  *http.Client
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridPersonalization struct {
	To      []sendgridAddress `json:"to"`
	Subject string            `json:"subject"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridPayload struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	ReplyTo          *sendgridAddress          `json:"reply_to,omitempty"`
	Content          []sendgridContent         `json:"content"`
}

func (s *sendgridMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if s.apiKey == "" {
		return errors.New("sendgrid api key not configured")
	}

	payload := sendgridPayload{
		Personalizations: []sendgridPersonalization{
			{To: []sendgridAddress{{Email: msg.To}}, Subject: msg.Subject},
		},
		From: sendgridAddress{Email: s.fromAddress, Name: s.fromName},
		Content: []sendgridContent{
			{Type: "text/plain", Value: msg.Text},
			{Type: "text/html", Value: msg.HTML},
		},
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &sendgridAddress{Email: msg.ReplyTo, Name: msg.ReplyToName}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendgrid payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sendgrid error: status %d: %s", resp.StatusCode, detail)
	}
	log.Printf("[MAILER] Email sent via SendGrid to %s", msg.To)
	return nil
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (s *sesMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(msg.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(msg.Text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	log.Printf("[MAILER] Email sent via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

// smtpMailer is a deliberate stub: the relay was configured but never
// implemented, and every send fails loudly rather than pretending.
type smtpMailer struct {
	config SMTPConfig
}

func (s *smtpMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	return ErrSMTPNotImplemented
}

// consoleMailer logs the message instead of delivering it. Always succeeds;
// used in development and as the no-configuration default.
type consoleMailer struct{}

func (c *consoleMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	log.Printf("[MAILER] === EMAIL NOTIFICATION ===")
	log.Printf("[MAILER] To: %s", msg.To)
	log.Printf("[MAILER] Reply-To: %s", msg.ReplyTo)
	log.Printf("[MAILER] Subject: %s", msg.Subject)
	log.Printf("[MAILER] %s", msg.Text)
	log.Printf("[MAILER] ==========================")
	return nil
}
