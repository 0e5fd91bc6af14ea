package email

import (
	"context"
	"fmt"

	"github.com/Philip-Ajayi/SHC/internal/metrics"
	"github.com/resend/resend-go/v2"
	"golang.org/x/sync/errgroup"
)

// BroadcastRecipient identifies one non-unsubscribed attendee.
type BroadcastRecipient struct {
	ID    string
	Email string
}

// SendBroadcast sends the given HTML content to every recipient, personalized
// with a per-record unsubscribe link and a List-Unsubscribe header.
//
// The content is embedded unescaped: broadcast content must be authored by a
// trusted operator; it is not sanitized at this layer.
//
// Sends fan out concurrently and the call joins on all of them. Any
// individual failure fails the aggregate even though mail already handed to
// the relay is not recalled. Returns the number of recipients on success.
func (s *Service) SendBroadcast(ctx context.Context, recipients []BroadcastRecipient, subject, content string) (int, error) {
	if !s.config.Enabled {
		s.logger.Info().Int("recipients", len(recipients)).Msg("email service disabled, skipping broadcast")
		return len(recipients), nil
	}

	var g errgroup.Group
	for _, recipient := range recipients {
		g.Go(func() error {
			if err := validateEmailAddress(recipient.Email); err != nil {
				return fmt.Errorf("recipient %s: %w", recipient.ID, err)
			}

			unsubscribeURL := fmt.Sprintf("%s/unsubscribe/%s", s.baseURL, recipient.ID)
			if err := s.send(ctx, &resend.SendEmailRequest{
				From:    s.config.From,
				To:      []string{recipient.Email},
				Subject: subject,
				Html:    broadcastBody(content, unsubscribeURL),
				Headers: map[string]string{
					"List-Unsubscribe": fmt.Sprintf("<%s>", unsubscribeURL),
				},
			}, "broadcast"); err != nil {
				return fmt.Errorf("recipient %s: %w", recipient.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("broadcast: %w", err)
	}

	metrics.BroadcastRecipients.Observe(float64(len(recipients)))
	s.logger.Info().Int("recipients", len(recipients)).Str("subject", subject).Msg("broadcast sent")
	return len(recipients), nil
}

func broadcastBody(content, unsubscribeURL string) string {
	return fmt.Sprintf(`%s
<hr>
<p style="font-size: 0.8rem; color: #666;">
  You are receiving this because you registered for SHC.
  <a href="%s">Unsubscribe</a>
</p>`, content, unsubscribeURL)
}
