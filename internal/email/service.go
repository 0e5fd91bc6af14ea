package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/Philip-Ajayi/SHC/internal/metrics"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Service handles transactional and broadcast email through the Resend relay.
type Service struct {
	config  config.EmailConfig
	baseURL string
	sender  sender
	logger  zerolog.Logger
}

// sender abstracts the single-send call of the mail relay.
type sender interface {
	Send(ctx context.Context, params *resend.SendEmailRequest) (string, error)
}

// NewService creates a new email service instance. baseURL is used to derive
// per-recipient unsubscribe links in broadcast mail.
func NewService(cfg config.EmailConfig, baseURL string, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	return &Service{
		config:  cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  &resendSender{client: resend.NewClient(cfg.APIKey), logger: logger},
		logger:  logger.With().Str("component", "email").Logger(),
	}, nil
}

// SendConfirmation sends the registration confirmation email.
func (s *Service) SendConfirmation(ctx context.Context, to, firstName string, year int) error {
	if err := validateEmailAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Info().Str("to", to).Msg("email service disabled, skipping confirmation email")
		return nil
	}

	subject, html := confirmationMessage(firstName, year)
	if err := s.send(ctx, &resend.SendEmailRequest{
		From:    s.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}, "confirmation"); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

// ContactMessage is a contact-form submission forwarded to the configured
// recipient address.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Reason  string
}

// SendContact forwards a contact-form submission using the subject and body
// template selected by the message's reason tag.
func (s *Service) SendContact(ctx context.Context, msg ContactMessage) error {
	if s.config.ContactRecipient == "" {
		return fmt.Errorf("contact recipient not configured")
	}

	if !s.config.Enabled {
		s.logger.Info().Str("reason", msg.Reason).Msg("email service disabled, skipping contact email")
		return nil
	}

	subject, html := contactMessage(msg)
	req := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      []string{s.config.ContactRecipient},
		Subject: subject,
		Html:    html,
	}
	if validateEmailAddress(msg.Email) == nil {
		req.ReplyTo = msg.Email
	}
	if err := s.send(ctx, req, "contact"); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func (s *Service) send(ctx context.Context, req *resend.SendEmailRequest, kind string) error {
	id, err := s.sender.Send(ctx, req)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, "sent").Inc()
	s.logger.Info().
		Str("email_id", id).
		Str("kind", kind).
		Strs("to", req.To).
		Msg("email sent")
	return nil
}

// validateEmailAddress validates an email address for format and header
// injection attempts.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}
