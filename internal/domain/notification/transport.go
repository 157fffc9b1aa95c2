package notification

import "context"

// SendEmailOptions is the input to an email transport. From, when set,
// overrides the transport's configured default sender address.
type SendEmailOptions struct {
	To          string
	Subject     string
	Body        string
	From        string
	Attachments []Attachment
}

// SendSMSOptions is the input to an SMS transport. From, when set, overrides
// the transport's configured default number.
type SendSMSOptions struct {
	To   string
	Body string
	From string
}

// SendResult reports the provider's view of a dispatched message. MessageID
// is empty when the provider returned no textual identifier.
type SendResult struct {
	MessageID        string
	ProviderResponse string
}

// EmailTransport delivers one rendered email through an external relay.
// Implementations live in infra/email/. Only attachments with sending method
// "attach" may be forwarded to the relay; link-style attachments are assumed
// already referenced by URL in the body.
type EmailTransport interface {
	// Name returns the configuration name this transport is registered under.
	Name() string

	// Send delivers a single email and returns the provider's message
	// identifier and raw status text.
	Send(ctx context.Context, opts SendEmailOptions) (*SendResult, error)
}

// SMSTransport delivers one rendered SMS through an external gateway.
// Implementations live in infra/sms/.
type SMSTransport interface {
	Name() string
	Send(ctx context.Context, opts SendSMSOptions) (*SendResult, error)
}
