package utils

import (
	"context"
	"fmt"

	"github.com/Ajmalajjuca/Bite-check/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(cfg aws.Config, from string) *SESMailer {
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func (m *SESMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf("Your Bite-check verification code is: %s\n\nEnter it in the app to finish signing in.", code)
	return m.send(ctx, to, subject, body)
}

// LogMailer prints codes instead of emailing them. Used when SES_EMAIL is unset.
type LogMailer struct {
	Log *logger.Logger
}

func (m *LogMailer) SendVerificationCode(_ context.Context, to, code string) error {
	m.Log.Warn("SES not configured; verification code for %s is %s", to, code)
	return nil
}
