package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/aistomin/andys-backend/internal/config"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES delivers through Amazon SES v2.
type SES struct {
	client sesAPI
	from   string
	log    *slog.Logger
}

// NewSES loads AWS configuration for cfg.SESRegion. Static credentials are
// used when both keys are set; otherwise the default provider chain applies.
func NewSES(ctx context.Context, cfg config.MailConfig, log *slog.Logger) (*SES, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.SESRegion)}
	if cfg.SESAccessKey != "" && cfg.SESSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKey, cfg.SESSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: load aws config: %w", err)
	}
	return newSES(sesv2.NewFromConfig(awsCfg), cfg.FromAddress, log), nil
}

func newSES(client sesAPI, from string, log *slog.Logger) *SES {
	return &SES{client: client, from: from, log: log.With("mailer", "ses")}
}

// Deliver sends env as a plain-text message. When env.From is set it is used
// as the reply-to address; SES only sends from verified identities.
func (s *SES) Deliver(ctx context.Context, env Envelope) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{env.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(env.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(env.Body), Charset: aws.String(charset)},
				},
			},
		},
	}
	if env.From != "" {
		input.ReplyToAddresses = []string{env.From}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", env.To, err)
	}

	s.log.InfoContext(ctx, "email sent",
		slog.String("to", env.To),
		slog.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}
