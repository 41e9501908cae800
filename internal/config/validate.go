package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be within [4, 31] (got %d)", c.Auth.BcryptCost))
	}

	if err := c.Broker.validate(); err != nil {
		errs = append(errs, fmt.Errorf("broker: %w", err))
	}
	if err := c.Mail.validate(); err != nil {
		errs = append(errs, fmt.Errorf("mail: %w", err))
	}

	if _, err := mail.ParseAddress(c.Contact.SupportEmail); err != nil {
		errs = append(errs, fmt.Errorf("contact.support_email %q is not a valid address", c.Contact.SupportEmail))
	}
	if c.Contact.DuplicateWindow <= 0 {
		errs = append(errs, fmt.Errorf("contact.duplicate_window must be > 0 (got %s)", c.Contact.DuplicateWindow))
	}

	return errors.Join(errs...)
}

func (b BrokerConfig) validate() error {
	switch strings.ToLower(b.Driver) {
	case BrokerGoChannel:
	case BrokerNATS:
		if b.URL == "" {
			return fmt.Errorf("url is required for the %s driver", BrokerNATS)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", b.Driver, BrokerGoChannel, BrokerNATS)
	}
	if strings.TrimSpace(b.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	// JetStream names the stream after the topic.
	if strings.ContainsAny(b.Topic, ". *>") {
		return fmt.Errorf("topic %q must not contain '.', '*', '>' or spaces", b.Topic)
	}
	if b.SubscribersCount < 1 {
		return fmt.Errorf("subscribers_count must be >= 1 (got %d)", b.SubscribersCount)
	}
	return nil
}

func (m MailConfig) validate() error {
	switch strings.ToLower(m.Driver) {
	case MailSentinel:
		if m.FailureSuffix == "" {
			return fmt.Errorf("failure_suffix is required for the %s driver", MailSentinel)
		}
	case MailSES:
		if m.SESRegion == "" {
			return fmt.Errorf("ses_region is required for the %s driver", MailSES)
		}
		if m.FromAddress == "" {
			return fmt.Errorf("from_address is required for the %s driver", MailSES)
		}
		if (m.SESAccessKey == "") != (m.SESSecretKey == "") {
			return fmt.Errorf("ses_access_key and ses_secret_key must be set together")
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", m.Driver, MailSentinel, MailSES)
	}
	return nil
}
