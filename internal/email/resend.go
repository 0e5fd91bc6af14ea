package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// resendSender sends an email using the Resend API.
// It handles rate limit errors gracefully without retrying.
type resendSender struct {
	client *resend.Client
	logger zerolog.Logger
}

func (r *resendSender) Send(ctx context.Context, params *resend.SendEmailRequest) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("resend client not initialized")
	}

	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			r.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("remaining", rateLimitErr.Remaining).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return "", fmt.Errorf("email rate limit exceeded (limit: %s, resets in: %s seconds): %w",
				rateLimitErr.Limit, rateLimitErr.Reset, err)
		}
		return "", fmt.Errorf("resend API error: %w", err)
	}

	return sent.Id, nil
}
