package service

import (
	"context"
	"fmt"

	"teamflow-backend/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService delivers invitation emails via Amazon SES. Delivery is
// best-effort: the invitation record is the source of truth and callers never
// fail an operation because a send failed.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	log       *logger.Logger
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that logs instead of sending, which keeps local
// development free of AWS credentials.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	log := logger.New()

	if fromEmail == "" {
		log.Info("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, log: log}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Infof("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		log:       log,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendInvitationEmail sends an invitation email with an acceptance link
func (s *EmailService) SendInvitationEmail(ctx context.Context, toEmail, inviterName, orgName, role, invitationLink string) error {
	if !s.enabled {
		s.log.Infof("Skipping email send (service disabled): invitation to %s, link %s", toEmail, invitationLink)
		return nil
	}

	subject := fmt.Sprintf("You're invited to join %s on TeamFlow", orgName)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>You're invited!</h1>
		</div>
		<div class="content">
			<p>Hi,</p>
			<p>%s has invited you to join <strong>%s</strong> on TeamFlow as a %s.</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Accept Invitation</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p>If you weren't expecting this invitation, you can safely ignore this email.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from TeamFlow. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, inviterName, orgName, role, invitationLink, invitationLink)

	textBody := fmt.Sprintf(`Hi,

%s has invited you to join %s on TeamFlow as a %s.

Accept the invitation:
%s

If you weren't expecting this invitation, you can safely ignore this email.

---
This is an automated email from TeamFlow. Please do not reply.
`, inviterName, orgName, role, invitationLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	s.log.Infof("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
