package notify

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers email through the Resend API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a sender authenticated with apiKey
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send implements Sender
func (s *ResendSender) Send(ctx context.Context, email Email) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
