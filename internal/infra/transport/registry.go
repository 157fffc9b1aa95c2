// Package transport maps configured transport names to concrete
// implementations. Resolution happens once at startup, so an unknown name is
// a configuration-time failure rather than a runtime one.
package transport

import (
	"fmt"

	"notigate/internal/common"
	"notigate/internal/config"
	"notigate/internal/domain/notification"
	"notigate/internal/infra/email"
	"notigate/internal/infra/sms"
)

// NewEmailTransport resolves the configured email transport name.
func NewEmailTransport(cfg *config.Config) (notification.EmailTransport, error) {
	switch cfg.Email.Transport {
	case "smtp":
		return email.NewSMTPTransport(
			cfg.Email.SMTP.Host,
			cfg.Email.SMTP.Port,
			cfg.Email.SMTP.Username,
			cfg.Email.SMTP.Password,
			cfg.Email.SMTP.StartTLS,
			cfg.Email.FromAddress,
		), nil
	case "resend":
		return email.NewResendTransport(cfg.Email.Resend.APIKey, cfg.Email.FromAddress), nil
	default:
		return nil, common.NewConfigurationError(
			fmt.Sprintf("unknown email transport %q (supported: smtp, resend)", cfg.Email.Transport))
	}
}

// NewSMSTransport resolves the configured SMS transport name.
func NewSMSTransport(cfg *config.Config) (notification.SMSTransport, error) {
	switch cfg.SMS.Transport {
	case "twilio":
		return sms.NewTwilioTransport(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.FromNumber,
		), nil
	default:
		return nil, common.NewConfigurationError(
			fmt.Sprintf("unknown sms transport %q (supported: twilio)", cfg.SMS.Transport))
	}
}
