package notification

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

type ResendRepository struct {
	client      *resend.Client
	senderEmail string
	senderName  string
}

func NewResendRepository(apiKey, senderEmail, senderName string) *ResendRepository {
	return &ResendRepository{
		client:      resend.NewClient(apiKey),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (r *ResendRepository) SendEmail(toName, toEmail, subject, message string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.senderName, r.senderEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    message,
	}

	if _, err := r.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	return nil
}
