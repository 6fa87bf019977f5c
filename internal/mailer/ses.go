package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

// SESMailer sends email through AWS SES from a verified sender identity.
type SESMailer struct {
	client *ses.Client
	sender string
}

// NewSESMailer builds an SES mailer for the given region and sender.
func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{
		client: ses.NewFromConfig(awsCfg),
		sender: sender,
	}, nil
}

// Send delivers one HTML email.
func (m *SESMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logrus.WithField("to", to).Info("Email sent")
	return nil
}

// NoopMailer logs instead of sending, used when no sender identity is
// configured.
type NoopMailer struct{}

// Send logs the would-be delivery and succeeds.
func (NoopMailer) Send(_ context.Context, to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("Email delivery disabled, skipping")
	return nil
}
