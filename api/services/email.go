package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

const welcomeSubject = "Welcome to SpendTrack"

// sendWelcomeEmail sends a plain-text welcome message to a newly registered
// user. Send failures are logged and never fail the registration.
func sendWelcomeEmail(ctx context.Context, svc *Service, to, name string) {

	logger := zerolog.Ctx(ctx)

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your SpendTrack account has been created. You can now log in, record\n"+
			"your spendings and join a group to share them.\n\n"+
			"The SpendTrack team\n", name)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(svc.Config.Email.FromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(welcomeSubject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := svc.Email.SendEmail(ctx, input); err != nil {
		logger.Warn().Err(err).Str("to", to).Msg("Failed to send welcome email")
		return
	}

	logger.Info().Str("to", to).Msg("Welcome email sent")
}
